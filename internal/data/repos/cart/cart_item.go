package cart

import (
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/marketplace-backend/internal/domain"
	"github.com/yungbote/marketplace-backend/internal/platform/dbctx"
	"github.com/yungbote/marketplace-backend/internal/platform/logger"
)

type CartItemRepo interface {
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.CartItem, error)
	GetByCartAndProduct(dbc dbctx.Context, cartID, productID uuid.UUID) (*types.CartItem, error)
	// Upsert inserts the line or adds qty to the existing (cart, product) line
	// in a single statement, returning the stored row.
	Upsert(dbc dbctx.Context, cartID, productID uuid.UUID, qty int) (*types.CartItem, error)
	UpdateQuantity(dbc dbctx.Context, id uuid.UUID, qty int) error
	Delete(dbc dbctx.Context, id uuid.UUID) (bool, error)
	// DeleteSettled removes a line only if it still holds qty, so a quantity
	// change made after the line was read is not silently dropped.
	DeleteSettled(dbc dbctx.Context, id uuid.UUID, qty int) (bool, error)
	// ListLines returns the cart's items joined with live product and store
	// state, ordered by product id.
	ListLines(dbc dbctx.Context, cartID uuid.UUID) ([]types.CartLine, error)
}

type cartItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCartItemRepo(db *gorm.DB, baseLog *logger.Logger) CartItemRepo {
	return &cartItemRepo{db: db, log: baseLog.With("repo", "CartItemRepo")}
}

func (r *cartItemRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.CartItem, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var ci types.CartItem
	if err := transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&ci).Error; err != nil {
		return nil, err
	}
	if ci.ID == uuid.Nil {
		return nil, nil
	}
	return &ci, nil
}

func (r *cartItemRepo) GetByCartAndProduct(dbc dbctx.Context, cartID, productID uuid.UUID) (*types.CartItem, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var ci types.CartItem
	if err := transaction.WithContext(dbc.Ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Limit(1).
		Find(&ci).Error; err != nil {
		return nil, err
	}
	if ci.ID == uuid.Nil {
		return nil, nil
	}
	return &ci, nil
}

func (r *cartItemRepo) Upsert(dbc dbctx.Context, cartID, productID uuid.UUID, qty int) (*types.CartItem, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	row := &types.CartItem{ID: uuid.New(), CartID: cartID, ProductID: productID, Quantity: qty}
	if err := transaction.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity": gorm.Expr("cart_item.quantity + excluded.quantity"),
			}),
		}).
		Create(row).Error; err != nil {
		return nil, err
	}
	return r.GetByCartAndProduct(dbctx.Context{Ctx: dbc.Ctx, Tx: transaction}, cartID, productID)
}

func (r *cartItemRepo) UpdateQuantity(dbc dbctx.Context, id uuid.UUID, qty int) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx).
		Model(&types.CartItem{}).
		Where("id = ?", id).
		Update("quantity", qty).Error
}

func (r *cartItemRepo) Delete(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Delete(&types.CartItem{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *cartItemRepo) DeleteSettled(dbc dbctx.Context, id uuid.UUID, qty int) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return false, nil
	}
	res := transaction.WithContext(dbc.Ctx).
		Where("id = ? AND quantity = ?", id, qty).
		Delete(&types.CartItem{})
	return res.RowsAffected == 1, res.Error
}

func (r *cartItemRepo) ListLines(dbc dbctx.Context, cartID uuid.UUID) ([]types.CartLine, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	db := transaction.WithContext(dbc.Ctx)

	var items []*types.CartItem
	if err := db.Where("cart_id = ?", cartID).Find(&items).Error; err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []types.CartLine{}, nil
	}

	productIDs := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		productIDs = append(productIDs, it.ProductID)
	}
	var products []*types.Product
	if err := db.Where("id IN ?", productIDs).Find(&products).Error; err != nil {
		return nil, err
	}
	byProduct := make(map[uuid.UUID]*types.Product, len(products))
	storeIDs := make([]uuid.UUID, 0, len(products))
	seenStore := map[uuid.UUID]bool{}
	for _, p := range products {
		byProduct[p.ID] = p
		if !seenStore[p.StoreID] {
			seenStore[p.StoreID] = true
			storeIDs = append(storeIDs, p.StoreID)
		}
	}
	byStore := map[uuid.UUID]*types.Store{}
	if len(storeIDs) > 0 {
		var stores []*types.Store
		if err := db.Where("id IN ?", storeIDs).Find(&stores).Error; err != nil {
			return nil, err
		}
		for _, s := range stores {
			byStore[s.ID] = s
		}
	}

	out := make([]types.CartLine, 0, len(items))
	for _, it := range items {
		line := types.CartLine{
			CartItemID: it.ID,
			CartID:     it.CartID,
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			AddedAt:    it.AddedAt,
		}
		if p := byProduct[it.ProductID]; p != nil {
			line.ProductFound = true
			line.ProductName = p.Name
			line.Price = p.Price
			line.StockQuantity = p.StockQuantity
			line.ProductActive = p.IsActive
			line.StoreID = p.StoreID
			if s := byStore[p.StoreID]; s != nil {
				line.StoreActive = s.IsActive
			}
		}
		out = append(out, line)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ProductID.String() < out[j].ProductID.String()
	})
	return out, nil
}
