package aggregates

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/marketplace-backend/internal/domain/orders"
)

// CheckoutAggregate converts a buyer's cart into one order per store.
//
// Failures return *aggregates.Error with codes:
// CodeValidation, CodeEmptyCart, CodeProductUnavailable, CodeInsufficientStock,
// CodeStockConflict, CodeInternal.
//
// On CodeStockConflict the result still carries the orders whose store
// partitions committed; the failed partitions' lines remain in the cart.
type CheckoutAggregate interface {
	Checkout(ctx context.Context, in CheckoutInput) (CheckoutResult, error)
}

type CheckoutInput struct {
	BuyerID         uuid.UUID
	ShippingAddress string
	PhoneNumber     string
	Notes           *string
}

type CheckoutResult struct {
	Orders       []*orders.Order
	FailedStores []uuid.UUID
	CompletedAt  time.Time
}
