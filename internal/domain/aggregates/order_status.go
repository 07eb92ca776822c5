package aggregates

import (
	"context"

	"github.com/google/uuid"

	"github.com/yungbote/marketplace-backend/internal/domain/orders"
)

// OrderStatusAggregate owns the order status machine.
//
// Write method failures return *aggregates.Error with codes:
// CodeValidation, CodeNotFound, CodeInvalidTransition, CodeForbidden, CodeConflict, CodeInternal.
type OrderStatusAggregate interface {
	Transition(ctx context.Context, in TransitionOrderStatusInput) (TransitionOrderStatusResult, error)
}

type TransitionOrderStatusInput struct {
	OrderID   uuid.UUID
	ActorID   uuid.UUID
	ActorRole string
	ToStatus  string
}

type TransitionOrderStatusResult struct {
	Order      *orders.Order
	FromStatus string
}
