package cart

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/marketplace-backend/internal/domain"
	"github.com/yungbote/marketplace-backend/internal/platform/dbctx"
	"github.com/yungbote/marketplace-backend/internal/platform/logger"
)

type CartRepo interface {
	GetByBuyer(dbc dbctx.Context, buyerID uuid.UUID) (*types.Cart, error)
	// EnsureForBuyer returns the buyer's cart, creating it on first use.
	EnsureForBuyer(dbc dbctx.Context, buyerID uuid.UUID) (*types.Cart, error)
}

type cartRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCartRepo(db *gorm.DB, baseLog *logger.Logger) CartRepo {
	return &cartRepo{db: db, log: baseLog.With("repo", "CartRepo")}
}

func (r *cartRepo) GetByBuyer(dbc dbctx.Context, buyerID uuid.UUID) (*types.Cart, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if buyerID == uuid.Nil {
		return nil, nil
	}
	var c types.Cart
	if err := transaction.WithContext(dbc.Ctx).
		Where("buyer_id = ?", buyerID).
		Limit(1).
		Find(&c).Error; err != nil {
		return nil, err
	}
	if c.ID == uuid.Nil {
		return nil, nil
	}
	return &c, nil
}

func (r *cartRepo) EnsureForBuyer(dbc dbctx.Context, buyerID uuid.UUID) (*types.Cart, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	now := time.Now().UTC()
	row := &types.Cart{ID: uuid.New(), BuyerID: buyerID, CreatedAt: now, UpdatedAt: now}
	if err := transaction.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "buyer_id"}},
			DoNothing: true,
		}).
		Create(row).Error; err != nil {
		return nil, err
	}
	return r.GetByBuyer(dbctx.Context{Ctx: dbc.Ctx, Tx: transaction}, buyerID)
}
