package aggregates

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/marketplace-backend/internal/data/repos"
	types "github.com/yungbote/marketplace-backend/internal/domain"
	domainagg "github.com/yungbote/marketplace-backend/internal/domain/aggregates"
	"github.com/yungbote/marketplace-backend/internal/domain/orders"
	"github.com/yungbote/marketplace-backend/internal/platform/dbctx"
)

type CheckoutAggregateDeps struct {
	Base BaseDeps

	Carts     repos.CartRepo
	CartItems repos.CartItemRepo
	Products  repos.ProductRepo
	Stores    repos.StoreRepo
	Orders    repos.OrderRepo

	// Parallelism bounds concurrent store partitions; <= 1 runs them in order.
	Parallelism int
}

type checkoutAggregate struct {
	deps CheckoutAggregateDeps

	// afterValidate runs between the validation pass and the first partition commit.
	afterValidate func(ctx context.Context)
}

func NewCheckoutAggregate(deps CheckoutAggregateDeps) domainagg.CheckoutAggregate {
	deps.Base = deps.Base.withDefaults()
	return &checkoutAggregate{deps: deps}
}

// storePartition is the set of cart lines settled by one order.
type storePartition struct {
	StoreID uuid.UUID
	Lines   []types.CartLine
}

func (a *checkoutAggregate) Checkout(ctx context.Context, in domainagg.CheckoutInput) (domainagg.CheckoutResult, error) {
	const op = "Commerce.Checkout"
	start := time.Now()
	out, err := a.checkout(ctx, op, in)
	a.deps.Base.Hooks.ObserveOperation(op, aggregateErrorStatus(err), time.Since(start))
	return out, err
}

func (a *checkoutAggregate) checkout(ctx context.Context, op string, in domainagg.CheckoutInput) (domainagg.CheckoutResult, error) {
	var out domainagg.CheckoutResult
	if in.BuyerID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing buyer_id", nil)
	}
	in.ShippingAddress = strings.TrimSpace(in.ShippingAddress)
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	if in.ShippingAddress == "" {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "shipping_address is required", nil)
	}
	if in.PhoneNumber == "" {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "phone_number is required", nil)
	}
	if in.Notes != nil && strings.TrimSpace(*in.Notes) == "" {
		in.Notes = nil
	}
	if a.deps.Carts == nil || a.deps.CartItems == nil || a.deps.Products == nil || a.deps.Stores == nil || a.deps.Orders == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "checkout aggregate repos not configured", nil)
	}

	dbc := dbctx.Context{Ctx: ctx}
	c, err := a.deps.Carts.GetByBuyer(dbc, in.BuyerID)
	if err != nil {
		return out, MapError(op, err)
	}
	if c == nil {
		return out, domainagg.NewError(domainagg.CodeEmptyCart, op, "cart is empty", nil)
	}
	lines, err := a.deps.CartItems.ListLines(dbc, c.ID)
	if err != nil {
		return out, MapError(op, err)
	}
	if len(lines) == 0 {
		return out, domainagg.NewError(domainagg.CodeEmptyCart, op, "cart is empty", nil)
	}
	if err := validateLines(op, lines); err != nil {
		return out, err
	}

	if a.afterValidate != nil {
		a.afterValidate(ctx)
	}

	parts := partitionByStore(lines)
	placed := make([]*orders.Order, len(parts))
	failures := make([]error, len(parts))

	commit := func(i int) {
		placed[i], failures[i] = a.commitPartition(ctx, in, parts[i])
	}
	if a.deps.Parallelism <= 1 || len(parts) == 1 {
		for i := range parts {
			commit(i)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(a.deps.Parallelism)
		for i := range parts {
			g.Go(func() error {
				commit(i)
				return nil
			})
		}
		_ = g.Wait()
	}

	var firstErr error
	for i, p := range parts {
		if failures[i] != nil {
			out.FailedStores = append(out.FailedStores, p.StoreID)
			if firstErr == nil || (domainagg.IsCode(firstErr, domainagg.CodeStockConflict) && !domainagg.IsCode(failures[i], domainagg.CodeStockConflict)) {
				firstErr = failures[i]
			}
			continue
		}
		out.Orders = append(out.Orders, placed[i])
	}
	out.CompletedAt = time.Now().UTC()
	if firstErr != nil && a.deps.Base.Log != nil {
		a.deps.Base.Log.Warn("checkout partially failed",
			"buyer_id", in.BuyerID,
			"orders_committed", len(out.Orders),
			"failed_stores", len(out.FailedStores),
			"error", firstErr,
		)
	}
	return out, firstErr
}

// validateLines rejects the whole cart on the first unavailable or
// under-stocked line. Lines arrive ordered by product id.
func validateLines(op string, lines []types.CartLine) error {
	for _, l := range lines {
		if !l.Purchasable() {
			return domainagg.NewProductError(domainagg.CodeProductUnavailable, op, l.ProductID,
				fmt.Sprintf("product %s is not available", l.ProductID))
		}
		if l.StockQuantity < l.Quantity {
			return domainagg.NewProductError(domainagg.CodeInsufficientStock, op, l.ProductID,
				fmt.Sprintf("product %s has %d in stock, %d requested", l.ProductID, l.StockQuantity, l.Quantity))
		}
	}
	return nil
}

// partitionByStore groups lines by store, stores ordered by id and lines
// within a store ordered by product id.
func partitionByStore(lines []types.CartLine) []storePartition {
	byStore := map[uuid.UUID][]types.CartLine{}
	for _, l := range lines {
		byStore[l.StoreID] = append(byStore[l.StoreID], l)
	}
	parts := make([]storePartition, 0, len(byStore))
	for storeID, ls := range byStore {
		sort.Slice(ls, func(i, j int) bool {
			return ls[i].ProductID.String() < ls[j].ProductID.String()
		})
		parts = append(parts, storePartition{StoreID: storeID, Lines: ls})
	}
	sort.Slice(parts, func(i, j int) bool {
		return parts[i].StoreID.String() < parts[j].StoreID.String()
	})
	return parts
}

func (a *checkoutAggregate) commitPartition(ctx context.Context, in domainagg.CheckoutInput, p storePartition) (*orders.Order, error) {
	const op = "Commerce.Checkout.CommitStore"
	var placed *orders.Order
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		productIDs := make([]uuid.UUID, 0, len(p.Lines))
		for _, l := range p.Lines {
			ok, err := a.deps.Products.DecrementStock(dbc, l.ProductID, l.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return a.decrementFailure(dbc, op, l)
			}
			productIDs = append(productIDs, l.ProductID)
		}

		current, err := a.deps.Products.GetByIDs(dbc, productIDs)
		if err != nil {
			return err
		}
		prices := make(map[uuid.UUID]decimal.Decimal, len(current))
		for _, prod := range current {
			prices[prod.ID] = prod.Price
		}

		total := decimal.Zero
		items := make([]*orders.OrderItem, 0, len(p.Lines))
		for _, l := range p.Lines {
			price, ok := prices[l.ProductID]
			if !ok {
				return InvariantError(fmt.Sprintf("product %s vanished after stock decrement", l.ProductID))
			}
			item := &orders.OrderItem{
				ProductID:   l.ProductID,
				Quantity:    l.Quantity,
				PriceAtTime: price,
			}
			total = total.Add(item.Subtotal())
			items = append(items, item)
		}

		order, err := a.deps.Orders.Create(dbc, &orders.Order{
			BuyerID:         in.BuyerID,
			StoreID:         p.StoreID,
			TotalAmount:     total,
			Status:          orders.StatusPending,
			ShippingAddress: in.ShippingAddress,
			PhoneNumber:     in.PhoneNumber,
			Notes:           in.Notes,
		})
		if err != nil {
			return err
		}
		for _, it := range items {
			it.OrderID = order.ID
		}
		if _, err := a.deps.Orders.CreateItems(dbc, items); err != nil {
			return err
		}
		order.Items = items

		for _, l := range p.Lines {
			settled, err := a.deps.CartItems.DeleteSettled(dbc, l.CartItemID, l.Quantity)
			if err != nil {
				return err
			}
			if !settled {
				return ConflictError(fmt.Sprintf("cart line for product %s changed during checkout", l.ProductID))
			}
		}
		placed = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return placed, nil
}

// decrementFailure tells a product or store that went inactive after
// validation apart from stock taken by a concurrent checkout.
func (a *checkoutAggregate) decrementFailure(dbc dbctx.Context, op string, l types.CartLine) error {
	product, err := a.deps.Products.GetByID(dbc, l.ProductID)
	if err != nil {
		return err
	}
	if product != nil && product.IsActive {
		store, err := a.deps.Stores.GetByID(dbc, product.StoreID)
		if err != nil {
			return err
		}
		if store != nil && store.IsActive {
			return domainagg.NewProductError(domainagg.CodeStockConflict, op, l.ProductID,
				fmt.Sprintf("stock for product %s changed during checkout", l.ProductID))
		}
	}
	return domainagg.NewProductError(domainagg.CodeProductUnavailable, op, l.ProductID,
		fmt.Sprintf("product %s became unavailable during checkout", l.ProductID))
}
