package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	types "github.com/yungbote/marketplace-backend/internal/domain"
	"github.com/yungbote/marketplace-backend/internal/platform/dbctx"
	"github.com/yungbote/marketplace-backend/internal/platform/logger"
)

// ProductFilter drives the public catalog search. Zero values are ignored.
type ProductFilter struct {
	Query      string
	CategoryID uuid.UUID
	StoreID    uuid.UUID
	City       string
	Regency    string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	ActiveOnly bool
	Limit      int
	Offset     int
}

type ProductRepo interface {
	Create(dbc dbctx.Context, products []*types.Product) ([]*types.Product, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Product, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Product, error)
	ListByStore(dbc dbctx.Context, storeID uuid.UUID, activeOnly bool) ([]*types.Product, error)
	Search(dbc dbctx.Context, f ProductFilter) ([]*types.Product, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]any) error
	// DecrementStock subtracts qty only when the product and its store are
	// active and at least qty units are left. It returns false when no row
	// qualified.
	DecrementStock(dbc dbctx.Context, id uuid.UUID, qty int) (bool, error)
}

type productRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	return &productRepo{db: db, log: baseLog.With("repo", "ProductRepo")}
}

func (r *productRepo) Create(dbc dbctx.Context, products []*types.Product) ([]*types.Product, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(products) == 0 {
		return []*types.Product{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Product, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var p types.Product
	if err := transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&p).Error; err != nil {
		return nil, err
	}
	if p.ID == uuid.Nil {
		return nil, nil
	}
	return &p, nil
}

func (r *productRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Product, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Product
	if len(ids) == 0 {
		return out, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *productRepo) ListByStore(dbc dbctx.Context, storeID uuid.UUID, activeOnly bool) ([]*types.Product, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	q := transaction.WithContext(dbc.Ctx).Where("store_id = ?", storeID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var out []*types.Product
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *productRepo) Search(dbc dbctx.Context, f ProductFilter) ([]*types.Product, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	q := transaction.WithContext(dbc.Ctx).Model(&types.Product{})
	if f.ActiveOnly {
		q = q.Where("product.is_active = ?", true).
			Where("product.store_id IN (?)", transaction.Model(&types.Store{}).Select("id").Where("is_active = ?", true))
	}
	if s := strings.TrimSpace(f.Query); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("(LOWER(product.name) LIKE ? OR LOWER(product.description) LIKE ?)", like, like)
	}
	if f.CategoryID != uuid.Nil {
		q = q.Where("product.category_id = ?", f.CategoryID)
	}
	if f.StoreID != uuid.Nil {
		q = q.Where("product.store_id = ?", f.StoreID)
	}
	if c := strings.TrimSpace(f.City); c != "" {
		q = q.Where("product.store_id IN (?)", transaction.Model(&types.Store{}).Select("id").Where("LOWER(city) = ?", strings.ToLower(c)))
	}
	if rg := strings.TrimSpace(f.Regency); rg != "" {
		q = q.Where("product.store_id IN (?)", transaction.Model(&types.Store{}).Select("id").Where("LOWER(regency) = ?", strings.ToLower(rg)))
	}
	if f.MinPrice != nil {
		q = q.Where("product.price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("product.price <= ?", *f.MaxPrice)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}
	var out []*types.Product
	if err := q.Order("product.created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *productRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]any) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now().UTC()
	return transaction.WithContext(dbc.Ctx).
		Model(&types.Product{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *productRepo) DecrementStock(dbc dbctx.Context, id uuid.UUID, qty int) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil || qty <= 0 {
		return false, nil
	}
	res := transaction.WithContext(dbc.Ctx).
		Model(&types.Product{}).
		Where("id = ? AND is_active = ? AND stock_quantity >= ?", id, true, qty).
		Where("store_id IN (?)", transaction.Model(&types.Store{}).Select("id").Where("is_active = ?", true)).
		Updates(map[string]any{
			"stock_quantity": gorm.Expr("stock_quantity - ?", qty),
			"updated_at":     time.Now().UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
