package aggregates

import (
	"context"

	"github.com/google/uuid"

	"github.com/yungbote/marketplace-backend/internal/domain/cart"
)

// CartAggregate owns cart line invariants: positive quantities and at most
// one line per (cart, product).
//
// Write method failures return *aggregates.Error with codes:
// CodeValidation, CodeNotFound, CodeForbidden, CodeProductUnavailable, CodeInternal.
type CartAggregate interface {
	// AddItem creates the cart lazily and inserts or increments the product's line.
	AddItem(ctx context.Context, in AddCartItemInput) (CartItemResult, error)

	// UpdateItem replaces a line's quantity.
	UpdateItem(ctx context.Context, in UpdateCartItemInput) (CartItemResult, error)

	// RemoveItem deletes a line. Removing an absent line succeeds.
	RemoveItem(ctx context.Context, in RemoveCartItemInput) error
}

type AddCartItemInput struct {
	BuyerID   uuid.UUID
	ProductID uuid.UUID
	Quantity  int
}

type UpdateCartItemInput struct {
	BuyerID    uuid.UUID
	CartItemID uuid.UUID
	Quantity   int
}

type RemoveCartItemInput struct {
	BuyerID    uuid.UUID
	CartItemID uuid.UUID
}

type CartItemResult struct {
	Item *cart.CartItem
}
