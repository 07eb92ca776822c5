package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/marketplace-backend/internal/domain"
	"github.com/yungbote/marketplace-backend/internal/platform/dbctx"
	"github.com/yungbote/marketplace-backend/internal/platform/logger"
)

type StoreFilter struct {
	City       string
	Regency    string
	ActiveOnly bool
	Limit      int
	Offset     int
}

type StoreRepo interface {
	Create(dbc dbctx.Context, stores []*types.Store) ([]*types.Store, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Store, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Store, error)
	ListBySeller(dbc dbctx.Context, sellerID uuid.UUID) ([]*types.Store, error)
	List(dbc dbctx.Context, f StoreFilter) ([]*types.Store, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]any) error
}

type storeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStoreRepo(db *gorm.DB, baseLog *logger.Logger) StoreRepo {
	return &storeRepo{db: db, log: baseLog.With("repo", "StoreRepo")}
}

func (r *storeRepo) Create(dbc dbctx.Context, stores []*types.Store) ([]*types.Store, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(stores) == 0 {
		return []*types.Store{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

func (r *storeRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Store, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var s types.Store
	if err := transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&s).Error; err != nil {
		return nil, err
	}
	if s.ID == uuid.Nil {
		return nil, nil
	}
	return &s, nil
}

func (r *storeRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Store, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Store
	if len(ids) == 0 {
		return out, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("id IN ?", ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *storeRepo) ListBySeller(dbc dbctx.Context, sellerID uuid.UUID) ([]*types.Store, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Store
	if err := transaction.WithContext(dbc.Ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *storeRepo) List(dbc dbctx.Context, f StoreFilter) ([]*types.Store, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	q := transaction.WithContext(dbc.Ctx).Model(&types.Store{})
	if f.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}
	if c := strings.TrimSpace(f.City); c != "" {
		q = q.Where("LOWER(city) = ?", strings.ToLower(c))
	}
	if rg := strings.TrimSpace(f.Regency); rg != "" {
		q = q.Where("LOWER(regency) = ?", strings.ToLower(rg))
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}
	var out []*types.Store
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *storeRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]any) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now().UTC()
	return transaction.WithContext(dbc.Ctx).
		Model(&types.Store{}).
		Where("id = ?", id).
		Updates(updates).Error
}
