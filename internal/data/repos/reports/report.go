package reports

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/marketplace-backend/internal/domain"
	"github.com/yungbote/marketplace-backend/internal/platform/dbctx"
	"github.com/yungbote/marketplace-backend/internal/platform/logger"
)

type ReportRepo interface {
	Create(dbc dbctx.Context, r *types.UserReport) (*types.UserReport, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.UserReport, error)
	List(dbc dbctx.Context, status string, limit, offset int) ([]*types.UserReport, error)
}

type reportRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReportRepo(db *gorm.DB, baseLog *logger.Logger) ReportRepo {
	return &reportRepo{db: db, log: baseLog.With("repo", "ReportRepo")}
}

func (r *reportRepo) Create(dbc dbctx.Context, rep *types.UserReport) (*types.UserReport, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(dbc.Ctx).Create(rep).Error; err != nil {
		return nil, err
	}
	return rep, nil
}

func (r *reportRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.UserReport, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var rep types.UserReport
	if err := transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&rep).Error; err != nil {
		return nil, err
	}
	if rep.ID == uuid.Nil {
		return nil, nil
	}
	return &rep, nil
}

func (r *reportRepo) List(dbc dbctx.Context, status string, limit, offset int) ([]*types.UserReport, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	q := transaction.WithContext(dbc.Ctx).Model(&types.UserReport{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	var out []*types.UserReport
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
