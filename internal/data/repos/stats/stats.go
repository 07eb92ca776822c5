package stats

import (
	"database/sql"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	types "github.com/yungbote/marketplace-backend/internal/domain"
	"github.com/yungbote/marketplace-backend/internal/platform/dbctx"
	"github.com/yungbote/marketplace-backend/internal/platform/logger"
)

// StatsRepo runs the independent aggregate queries behind the admin
// dashboard. Each method is a single read.
type StatsRepo interface {
	CountUsers(dbc dbctx.Context, role string) (int64, error)
	CountStores(dbc dbctx.Context) (int64, error)
	CountProducts(dbc dbctx.Context) (int64, error)
	CountOrders(dbc dbctx.Context) (int64, error)
	// Revenue sums total_amount over orders whose status is not excluded.
	Revenue(dbc dbctx.Context, excludeStatuses []string) (decimal.Decimal, error)
	CountReports(dbc dbctx.Context, status string) (int64, error)
}

type statsRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStatsRepo(db *gorm.DB, baseLog *logger.Logger) StatsRepo {
	return &statsRepo{db: db, log: baseLog.With("repo", "StatsRepo")}
}

func (r *statsRepo) count(dbc dbctx.Context, model any, cond string, args ...any) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	q := transaction.WithContext(dbc.Ctx).Model(model)
	if cond != "" {
		q = q.Where(cond, args...)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *statsRepo) CountUsers(dbc dbctx.Context, role string) (int64, error) {
	if role == "" {
		return r.count(dbc, &types.User{}, "")
	}
	return r.count(dbc, &types.User{}, "role = ?", role)
}

func (r *statsRepo) CountStores(dbc dbctx.Context) (int64, error) {
	return r.count(dbc, &types.Store{}, "")
}

func (r *statsRepo) CountProducts(dbc dbctx.Context) (int64, error) {
	return r.count(dbc, &types.Product{}, "")
}

func (r *statsRepo) CountOrders(dbc dbctx.Context) (int64, error) {
	return r.count(dbc, &types.Order{}, "")
}

func (r *statsRepo) CountReports(dbc dbctx.Context, status string) (int64, error) {
	if status == "" {
		return r.count(dbc, &types.UserReport{}, "")
	}
	return r.count(dbc, &types.UserReport{}, "status = ?", status)
}

func (r *statsRepo) Revenue(dbc dbctx.Context, excludeStatuses []string) (decimal.Decimal, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	q := transaction.WithContext(dbc.Ctx).Model(&types.Order{})
	if len(excludeStatuses) > 0 {
		q = q.Where("status NOT IN ?", excludeStatuses)
	}
	var total decimal.NullDecimal
	if err := q.Select("SUM(total_amount)").Row().Scan(&total); err != nil {
		if err == sql.ErrNoRows {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
