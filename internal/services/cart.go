package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yungbote/marketplace-backend/internal/data/repos"
	types "github.com/yungbote/marketplace-backend/internal/domain"
	domainagg "github.com/yungbote/marketplace-backend/internal/domain/aggregates"
	"github.com/yungbote/marketplace-backend/internal/domain/authz"
	"github.com/yungbote/marketplace-backend/internal/platform/dbctx"
	"github.com/yungbote/marketplace-backend/internal/platform/logger"
)

type CartLineView struct {
	types.CartLine
	Subtotal decimal.Decimal `json:"subtotal"`
}

type CartView struct {
	CartID *uuid.UUID      `json:"cart_id,omitempty"`
	Items  []CartLineView  `json:"items"`
	Total  decimal.Decimal `json:"total"`
}

type CartService interface {
	ListItems(ctx context.Context) (*CartView, error)
	AddToCart(ctx context.Context, productID uuid.UUID, quantity int) (*types.CartItem, error)
	UpdateCartItem(ctx context.Context, cartItemID uuid.UUID, quantity int) (*types.CartItem, error)
	RemoveCartItem(ctx context.Context, cartItemID uuid.UUID) error
}

type cartService struct {
	log          *logger.Logger
	cartRepo     repos.CartRepo
	cartItemRepo repos.CartItemRepo
	cart         domainagg.CartAggregate
}

func NewCartService(log *logger.Logger, cartRepo repos.CartRepo, cartItemRepo repos.CartItemRepo, cart domainagg.CartAggregate) CartService {
	return &cartService{
		log:          log.With("service", "CartService"),
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		cart:         cart,
	}
}

func (cs *cartService) buyer(ctx context.Context) (authz.Caller, error) {
	caller, err := callerFromContext(ctx)
	if err != nil {
		return caller, err
	}
	if err := authz.Authorize(caller, authz.ActionMutateCart, authz.Resource{OwnerID: caller.UserID}); err != nil {
		return caller, err
	}
	return caller, nil
}

// ListItems returns the caller's lines with live product data. An absent
// cart reads as empty.
func (cs *cartService) ListItems(ctx context.Context) (*CartView, error) {
	const op = "Cart.ListItems"
	caller, err := cs.buyer(ctx)
	if err != nil {
		return nil, err
	}
	dbc := dbctx.Context{Ctx: ctx}
	out := &CartView{Items: []CartLineView{}, Total: decimal.Zero}
	c, err := cs.cartRepo.GetByBuyer(dbc, caller.UserID)
	if err != nil {
		return nil, internalError(op, err)
	}
	if c == nil {
		return out, nil
	}
	id := c.ID
	out.CartID = &id
	lines, err := cs.cartItemRepo.ListLines(dbc, c.ID)
	if err != nil {
		return nil, internalError(op, err)
	}
	for _, l := range lines {
		sub := l.Subtotal()
		out.Items = append(out.Items, CartLineView{CartLine: l, Subtotal: sub})
		out.Total = out.Total.Add(sub)
	}
	return out, nil
}

func (cs *cartService) AddToCart(ctx context.Context, productID uuid.UUID, quantity int) (*types.CartItem, error) {
	caller, err := cs.buyer(ctx)
	if err != nil {
		return nil, err
	}
	res, err := cs.cart.AddItem(ctx, domainagg.AddCartItemInput{
		BuyerID:   caller.UserID,
		ProductID: productID,
		Quantity:  quantity,
	})
	if err != nil {
		return nil, err
	}
	return res.Item, nil
}

func (cs *cartService) UpdateCartItem(ctx context.Context, cartItemID uuid.UUID, quantity int) (*types.CartItem, error) {
	caller, err := cs.buyer(ctx)
	if err != nil {
		return nil, err
	}
	res, err := cs.cart.UpdateItem(ctx, domainagg.UpdateCartItemInput{
		BuyerID:    caller.UserID,
		CartItemID: cartItemID,
		Quantity:   quantity,
	})
	if err != nil {
		return nil, err
	}
	return res.Item, nil
}

func (cs *cartService) RemoveCartItem(ctx context.Context, cartItemID uuid.UUID) error {
	caller, err := cs.buyer(ctx)
	if err != nil {
		return err
	}
	return cs.cart.RemoveItem(ctx, domainagg.RemoveCartItemInput{BuyerID: caller.UserID, CartItemID: cartItemID})
}
