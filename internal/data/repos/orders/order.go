package orders

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/marketplace-backend/internal/domain"
	"github.com/yungbote/marketplace-backend/internal/platform/dbctx"
	"github.com/yungbote/marketplace-backend/internal/platform/logger"
)

type ListOptions struct {
	Status string
	Limit  int
	Offset int
}

type OrderRepo interface {
	// Create inserts the order row only; items are written with CreateItems.
	Create(dbc dbctx.Context, o *types.Order) (*types.Order, error)
	CreateItems(dbc dbctx.Context, items []*types.OrderItem) ([]*types.OrderItem, error)
	// GetByID returns the order with its items, or nil when absent.
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Order, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Order, error)
	ListByBuyer(dbc dbctx.Context, buyerID uuid.UUID, opts ListOptions) ([]*types.Order, error)
	ListByStore(dbc dbctx.Context, storeID uuid.UUID, opts ListOptions) ([]*types.Order, error)
}

type orderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrderRepo(db *gorm.DB, baseLog *logger.Logger) OrderRepo {
	return &orderRepo{db: db, log: baseLog.With("repo", "OrderRepo")}
}

func (r *orderRepo) Create(dbc dbctx.Context, o *types.Order) (*types.Order, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(dbc.Ctx).Omit("Items").Create(o).Error; err != nil {
		return nil, err
	}
	return o, nil
}

func (r *orderRepo) CreateItems(dbc dbctx.Context, items []*types.OrderItem) ([]*types.OrderItem, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(items) == 0 {
		return []*types.OrderItem{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *orderRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Order, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var o types.Order
	if err := transaction.WithContext(dbc.Ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("product_id ASC") }).
		Where("id = ?", id).
		Limit(1).
		Find(&o).Error; err != nil {
		return nil, err
	}
	if o.ID == uuid.Nil {
		return nil, nil
	}
	return &o, nil
}

func (r *orderRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Order, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Order
	if len(ids) == 0 {
		return out, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("product_id ASC") }).
		Where("id IN ?", ids).
		Order("store_id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) ListByBuyer(dbc dbctx.Context, buyerID uuid.UUID, opts ListOptions) ([]*types.Order, error) {
	return r.list(dbc, "buyer_id = ?", buyerID, opts)
}

func (r *orderRepo) ListByStore(dbc dbctx.Context, storeID uuid.UUID, opts ListOptions) ([]*types.Order, error) {
	return r.list(dbc, "store_id = ?", storeID, opts)
}

func (r *orderRepo) list(dbc dbctx.Context, cond string, id uuid.UUID, opts ListOptions) ([]*types.Order, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	q := transaction.WithContext(dbc.Ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("product_id ASC") }).
		Where(cond, id)
	if opts.Status != "" {
		q = q.Where("status = ?", opts.Status)
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	var out []*types.Order
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
