package aggregates

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/marketplace-backend/internal/data/repos"
	domainagg "github.com/yungbote/marketplace-backend/internal/domain/aggregates"
	"github.com/yungbote/marketplace-backend/internal/domain/authz"
	"github.com/yungbote/marketplace-backend/internal/domain/orders"
	"github.com/yungbote/marketplace-backend/internal/platform/dbctx"
)

type OrderStatusAggregateDeps struct {
	Base BaseDeps

	Orders repos.OrderRepo
	Stores repos.StoreRepo
}

type orderStatusAggregate struct {
	deps OrderStatusAggregateDeps
}

func NewOrderStatusAggregate(deps OrderStatusAggregateDeps) domainagg.OrderStatusAggregate {
	deps.Base = deps.Base.withDefaults()
	return &orderStatusAggregate{deps: deps}
}

func (a *orderStatusAggregate) Transition(ctx context.Context, in domainagg.TransitionOrderStatusInput) (domainagg.TransitionOrderStatusResult, error) {
	const op = "Commerce.Order.Transition"
	var out domainagg.TransitionOrderStatusResult
	if in.OrderID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing order_id", nil)
	}
	to := orders.NormalizeStatus(in.ToStatus)
	if !orders.IsKnownStatus(to) {
		return out, domainagg.NewError(domainagg.CodeValidation, op, fmt.Sprintf("unknown order status %q", in.ToStatus), nil)
	}
	if a.deps.Orders == nil || a.deps.Stores == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "order status aggregate repos not configured", nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		order, err := a.deps.Orders.GetByID(dbc, in.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("order not found: %s", in.OrderID), nil)
		}
		from := orders.NormalizeStatus(order.Status)
		if !orders.CanTransition(from, to) {
			return domainagg.NewError(domainagg.CodeInvalidTransition, op,
				fmt.Sprintf("cannot move order from %s to %s", from, to), nil)
		}

		store, err := a.deps.Stores.GetByID(dbc, order.StoreID)
		if err != nil {
			return err
		}
		res := authz.Resource{OwnerID: order.BuyerID, Status: from}
		if store != nil {
			res.SellerID = store.SellerID
		}
		action := authz.ActionAdvanceOrder
		if to == orders.StatusCancelled {
			action = authz.ActionCancelOrder
		}
		if err := authz.Authorize(authz.Caller{UserID: in.ActorID, Role: in.ActorRole}, action, res); err != nil {
			return err
		}

		now := time.Now().UTC()
		ok, err := a.deps.Base.CASGuard.UpdateByStatus(dbc, "store_order", order.ID, []string{order.Status}, map[string]any{
			"status":     to,
			"updated_at": now,
		})
		if err != nil {
			return err
		}
		if err := RequireCASSuccess(ok, "order status changed concurrently"); err != nil {
			return err
		}
		order.Status = to
		order.UpdatedAt = now
		out.Order = order
		out.FromStatus = from
		return nil
	})
	return out, err
}
