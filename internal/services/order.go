package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/marketplace-backend/internal/data/repos"
	types "github.com/yungbote/marketplace-backend/internal/domain"
	domainagg "github.com/yungbote/marketplace-backend/internal/domain/aggregates"
	"github.com/yungbote/marketplace-backend/internal/domain/authz"
	"github.com/yungbote/marketplace-backend/internal/domain/orders"
	"github.com/yungbote/marketplace-backend/internal/observability"
	"github.com/yungbote/marketplace-backend/internal/platform/dbctx"
	"github.com/yungbote/marketplace-backend/internal/platform/idempotency"
	"github.com/yungbote/marketplace-backend/internal/platform/logger"
	"github.com/yungbote/marketplace-backend/internal/realtime"
)

type CheckoutRequest struct {
	ShippingAddress string
	PhoneNumber     string
	Notes           *string
	// IdempotencyKey is optional; a completed key replays its orders.
	IdempotencyKey string
}

type CheckoutOutcome struct {
	Orders       []*types.Order `json:"orders"`
	FailedStores []uuid.UUID    `json:"failed_stores,omitempty"`
	Replayed     bool           `json:"replayed,omitempty"`
}

type OrderService interface {
	// Checkout turns the caller's cart into one order per store. On a stock
	// conflict the outcome still lists the orders that committed.
	Checkout(ctx context.Context, in CheckoutRequest) (CheckoutOutcome, error)
	ListOrdersByBuyer(ctx context.Context, opts repos.OrderListOptions) ([]*types.Order, error)
	ListOrdersByStore(ctx context.Context, storeID uuid.UUID, opts repos.OrderListOptions) ([]*types.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*types.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*types.Order, error)
}

type OrderServiceDeps struct {
	Orders      repos.OrderRepo
	Stores      repos.StoreRepo
	Checkout    domainagg.CheckoutAggregate
	OrderStatus domainagg.OrderStatusAggregate
	Idempotency idempotency.Store
	Events      realtime.Bus
	Metrics     *observability.Metrics
}

type orderService struct {
	log  *logger.Logger
	deps OrderServiceDeps
}

func NewOrderService(log *logger.Logger, deps OrderServiceDeps) OrderService {
	return &orderService{log: log.With("service", "OrderService"), deps: deps}
}

type checkoutReplay struct {
	OrderIDs []uuid.UUID `json:"order_ids"`
}

func (ors *orderService) Checkout(ctx context.Context, in CheckoutRequest) (CheckoutOutcome, error) {
	const op = "Order.Checkout"
	var out CheckoutOutcome
	caller, err := callerFromContext(ctx)
	if err != nil {
		return out, err
	}
	if err := authz.Authorize(caller, authz.ActionCheckout, authz.Resource{OwnerID: caller.UserID}); err != nil {
		return out, err
	}

	key := strings.TrimSpace(in.IdempotencyKey)
	if key != "" && ors.deps.Idempotency != nil {
		key = idempotency.Key("checkout", caller.UserID.String(), key)
		rec, err := ors.deps.Idempotency.Begin(ctx, key)
		if errors.Is(err, idempotency.ErrInFlight) {
			return out, domainagg.NewError(domainagg.CodeConflict, op, "a checkout with this idempotency key is in progress", err)
		}
		if err != nil {
			return out, domainagg.Wrap(domainagg.CodeRetryable, op, err)
		}
		if rec != nil {
			return ors.replay(ctx, op, rec)
		}
	} else {
		key = ""
	}

	res, err := ors.deps.Checkout.Checkout(ctx, domainagg.CheckoutInput{
		BuyerID:         caller.UserID,
		ShippingAddress: in.ShippingAddress,
		PhoneNumber:     in.PhoneNumber,
		Notes:           in.Notes,
	})
	out.Orders = res.Orders
	out.FailedStores = res.FailedStores
	if out.Orders == nil {
		out.Orders = []*types.Order{}
	}

	outcome := "success"
	if err != nil {
		outcome = string(domainagg.CodeOf(err))
	}
	ors.deps.Metrics.ObserveCheckout(outcome, len(res.Orders))
	for _, o := range res.Orders {
		ors.publish(ctx, realtime.EventOrderCreated, o, "")
	}

	if key != "" {
		if err != nil {
			if rErr := ors.deps.Idempotency.Release(ctx, key); rErr != nil {
				ors.log.Warn("Failed to release idempotency key", "error", rErr)
			}
		} else {
			ids := make([]uuid.UUID, 0, len(res.Orders))
			for _, o := range res.Orders {
				ids = append(ids, o.ID)
			}
			raw, mErr := json.Marshal(checkoutReplay{OrderIDs: ids})
			if mErr != nil {
				ors.log.Warn("Failed to encode idempotent result", "error", mErr)
				if rErr := ors.deps.Idempotency.Release(ctx, key); rErr != nil {
					ors.log.Warn("Failed to release idempotency key", "error", rErr)
				}
			} else if cErr := ors.deps.Idempotency.Complete(ctx, key, raw); cErr != nil {
				ors.log.Warn("Failed to complete idempotency key", "error", cErr)
			}
		}
	}
	if err != nil {
		return out, err
	}
	ors.log.Info("Checkout completed", "buyer_id", caller.UserID, "orders", len(out.Orders))
	return out, nil
}

func (ors *orderService) replay(ctx context.Context, op string, rec *idempotency.Record) (CheckoutOutcome, error) {
	out := CheckoutOutcome{Replayed: true}
	var stored checkoutReplay
	if err := json.Unmarshal(rec.Result, &stored); err != nil {
		return out, internalError(op, fmt.Errorf("decode idempotent result: %w", err))
	}
	found, err := ors.deps.Orders.GetByIDs(dbctx.Context{Ctx: ctx}, stored.OrderIDs)
	if err != nil {
		return out, internalError(op, err)
	}
	out.Orders = found
	if out.Orders == nil {
		out.Orders = []*types.Order{}
	}
	ors.deps.Metrics.ObserveCheckout("replayed", 0)
	return out, nil
}

func (ors *orderService) publish(ctx context.Context, kind string, o *types.Order, from string) {
	if ors.deps.Events == nil || o == nil {
		return
	}
	ev := realtime.Event{
		Type:       kind,
		OrderID:    o.ID,
		BuyerID:    o.BuyerID,
		StoreID:    o.StoreID,
		Status:     o.Status,
		FromStatus: from,
		At:         time.Now().UTC(),
	}
	if err := ors.deps.Events.Publish(ctx, ev); err != nil {
		ors.log.Warn("Failed to publish order event", "type", kind, "order_id", o.ID, "error", err)
	}
}

func normalizeListOptions(op string, opts repos.OrderListOptions) (repos.OrderListOptions, error) {
	if opts.Status != "" {
		opts.Status = orders.NormalizeStatus(opts.Status)
		if !orders.IsKnownStatus(opts.Status) {
			return opts, validationError(op, fmt.Sprintf("unknown order status %q", opts.Status))
		}
	}
	opts.Limit, opts.Offset = clampPage(opts.Limit, opts.Offset)
	return opts, nil
}

func (ors *orderService) ListOrdersByBuyer(ctx context.Context, opts repos.OrderListOptions) ([]*types.Order, error) {
	const op = "Order.ListByBuyer"
	caller, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	opts, err = normalizeListOptions(op, opts)
	if err != nil {
		return nil, err
	}
	out, err := ors.deps.Orders.ListByBuyer(dbctx.Context{Ctx: ctx}, caller.UserID, opts)
	if err != nil {
		return nil, internalError(op, err)
	}
	return out, nil
}

func (ors *orderService) ListOrdersByStore(ctx context.Context, storeID uuid.UUID, opts repos.OrderListOptions) ([]*types.Order, error) {
	const op = "Order.ListByStore"
	caller, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	opts, err = normalizeListOptions(op, opts)
	if err != nil {
		return nil, err
	}
	dbc := dbctx.Context{Ctx: ctx}
	store, err := ors.deps.Stores.GetByID(dbc, storeID)
	if err != nil {
		return nil, internalError(op, err)
	}
	if store == nil {
		return nil, notFoundError(op, "store", storeID)
	}
	if err := authz.Authorize(caller, authz.ActionReadOrder, authz.Resource{SellerID: store.SellerID}); err != nil {
		return nil, err
	}
	out, err := ors.deps.Orders.ListByStore(dbc, storeID, opts)
	if err != nil {
		return nil, internalError(op, err)
	}
	return out, nil
}

func (ors *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*types.Order, error) {
	const op = "Order.Get"
	caller, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	dbc := dbctx.Context{Ctx: ctx}
	o, err := ors.deps.Orders.GetByID(dbc, id)
	if err != nil {
		return nil, internalError(op, err)
	}
	if o == nil {
		return nil, notFoundError(op, "order", id)
	}
	res := authz.Resource{OwnerID: o.BuyerID, Status: o.Status}
	if store, err := ors.deps.Stores.GetByID(dbc, o.StoreID); err != nil {
		return nil, internalError(op, err)
	} else if store != nil {
		res.SellerID = store.SellerID
	}
	if err := authz.Authorize(caller, authz.ActionReadOrder, res); err != nil {
		return nil, err
	}
	return o, nil
}

func (ors *orderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*types.Order, error) {
	caller, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	res, err := ors.deps.OrderStatus.Transition(ctx, domainagg.TransitionOrderStatusInput{
		OrderID:   id,
		ActorID:   caller.UserID,
		ActorRole: caller.Role,
		ToStatus:  status,
	})
	if err != nil {
		return nil, err
	}
	ors.deps.Metrics.IncOrderTransition(res.FromStatus, res.Order.Status)
	ors.publish(ctx, realtime.EventOrderStatusChanged, res.Order, res.FromStatus)
	ors.log.Info("Order status changed",
		"order_id", res.Order.ID,
		"from", res.FromStatus,
		"to", res.Order.Status,
		"by", caller.UserID,
	)
	return res.Order, nil
}
