package aggregates

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/marketplace-backend/internal/data/repos"
	domainagg "github.com/yungbote/marketplace-backend/internal/domain/aggregates"
	"github.com/yungbote/marketplace-backend/internal/platform/dbctx"
)

type CartAggregateDeps struct {
	Base BaseDeps

	Carts     repos.CartRepo
	CartItems repos.CartItemRepo
	Products  repos.ProductRepo
	Stores    repos.StoreRepo
}

type cartAggregate struct {
	deps CartAggregateDeps
}

func NewCartAggregate(deps CartAggregateDeps) domainagg.CartAggregate {
	deps.Base = deps.Base.withDefaults()
	return &cartAggregate{deps: deps}
}

func (a *cartAggregate) configured() bool {
	return a.deps.Carts != nil && a.deps.CartItems != nil && a.deps.Products != nil && a.deps.Stores != nil
}

func (a *cartAggregate) AddItem(ctx context.Context, in domainagg.AddCartItemInput) (domainagg.CartItemResult, error) {
	const op = "Commerce.Cart.AddItem"
	var out domainagg.CartItemResult
	if in.BuyerID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing buyer_id", nil)
	}
	if in.ProductID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing product_id", nil)
	}
	if in.Quantity <= 0 {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "quantity must be greater than zero", nil)
	}
	if !a.configured() {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "cart aggregate repos not configured", nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		product, err := a.deps.Products.GetByID(dbc, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("product not found: %s", in.ProductID), nil)
		}
		store, err := a.deps.Stores.GetByID(dbc, product.StoreID)
		if err != nil {
			return err
		}
		if !product.IsActive || store == nil || !store.IsActive {
			return domainagg.NewProductError(domainagg.CodeProductUnavailable, op, product.ID, "product is not available")
		}

		c, err := a.deps.Carts.EnsureForBuyer(dbc, in.BuyerID)
		if err != nil {
			return err
		}
		if c == nil {
			return InvariantError("cart missing after ensure")
		}
		item, err := a.deps.CartItems.Upsert(dbc, c.ID, product.ID, in.Quantity)
		if err != nil {
			return err
		}
		out.Item = item
		return nil
	})
	return out, err
}

func (a *cartAggregate) UpdateItem(ctx context.Context, in domainagg.UpdateCartItemInput) (domainagg.CartItemResult, error) {
	const op = "Commerce.Cart.UpdateItem"
	var out domainagg.CartItemResult
	if in.BuyerID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing buyer_id", nil)
	}
	if in.CartItemID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing cart_item_id", nil)
	}
	if in.Quantity <= 0 {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "quantity must be greater than zero", nil)
	}
	if !a.configured() {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "cart aggregate repos not configured", nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		item, err := a.deps.CartItems.GetByID(dbc, in.CartItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("cart item not found: %s", in.CartItemID), nil)
		}
		if err := a.requireOwnCart(dbc, op, in.BuyerID, item.CartID); err != nil {
			return err
		}
		if err := a.deps.CartItems.UpdateQuantity(dbc, item.ID, in.Quantity); err != nil {
			return err
		}
		item.Quantity = in.Quantity
		out.Item = item
		return nil
	})
	return out, err
}

func (a *cartAggregate) RemoveItem(ctx context.Context, in domainagg.RemoveCartItemInput) error {
	const op = "Commerce.Cart.RemoveItem"
	if in.BuyerID == uuid.Nil {
		return domainagg.NewError(domainagg.CodeValidation, op, "missing buyer_id", nil)
	}
	if in.CartItemID == uuid.Nil {
		return domainagg.NewError(domainagg.CodeValidation, op, "missing cart_item_id", nil)
	}
	if !a.configured() {
		return domainagg.NewError(domainagg.CodeInternal, op, "cart aggregate repos not configured", nil)
	}

	return executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		item, err := a.deps.CartItems.GetByID(dbc, in.CartItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return nil
		}
		if err := a.requireOwnCart(dbc, op, in.BuyerID, item.CartID); err != nil {
			return err
		}
		_, err = a.deps.CartItems.Delete(dbc, item.ID)
		return err
	})
}

func (a *cartAggregate) requireOwnCart(dbc dbctx.Context, op string, buyerID, cartID uuid.UUID) error {
	c, err := a.deps.Carts.GetByBuyer(dbc, buyerID)
	if err != nil {
		return err
	}
	if c == nil || c.ID != cartID {
		return domainagg.NewError(domainagg.CodeForbidden, op, "cart item belongs to another buyer", nil)
	}
	return nil
}
