package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/marketplace-backend/internal/data/repos"
	types "github.com/yungbote/marketplace-backend/internal/domain"
	domainagg "github.com/yungbote/marketplace-backend/internal/domain/aggregates"
	"github.com/yungbote/marketplace-backend/internal/domain/authz"
	"github.com/yungbote/marketplace-backend/internal/domain/reports"
	"github.com/yungbote/marketplace-backend/internal/platform/dbctx"
	"github.com/yungbote/marketplace-backend/internal/platform/logger"
)

type CreateReportInput struct {
	ReportedUserID    *uuid.UUID
	ReportedProductID *uuid.UUID
	ReportedStoreID   *uuid.UUID
	Reason            string
	Description       string
}

type ReportService interface {
	CreateReport(ctx context.Context, in CreateReportInput) (*types.UserReport, error)
	ListReports(ctx context.Context, status string, limit, offset int) ([]*types.UserReport, error)
	UpdateReportStatus(ctx context.Context, id uuid.UUID, status string) (*types.UserReport, error)
}

type reportService struct {
	log        *logger.Logger
	reportRepo repos.ReportRepo
	reports    domainagg.ReportAggregate
}

func NewReportService(log *logger.Logger, reportRepo repos.ReportRepo, reports domainagg.ReportAggregate) ReportService {
	return &reportService{
		log:        log.With("service", "ReportService"),
		reportRepo: reportRepo,
		reports:    reports,
	}
}

func (rs *reportService) CreateReport(ctx context.Context, in CreateReportInput) (*types.UserReport, error) {
	caller, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return rs.reports.Create(ctx, domainagg.CreateReportInput{
		ReporterID:        caller.UserID,
		ReportedUserID:    in.ReportedUserID,
		ReportedProductID: in.ReportedProductID,
		ReportedStoreID:   in.ReportedStoreID,
		Reason:            in.Reason,
		Description:       in.Description,
	})
}

func (rs *reportService) ListReports(ctx context.Context, status string, limit, offset int) ([]*types.UserReport, error) {
	const op = "Report.List"
	caller, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(caller, authz.ActionModerate, authz.Resource{}); err != nil {
		return nil, err
	}
	if status != "" {
		status = reports.NormalizeStatus(status)
		if !reports.IsKnownStatus(status) {
			return nil, validationError(op, fmt.Sprintf("unknown report status %q", status))
		}
	}
	limit, offset = clampPage(limit, offset)
	out, err := rs.reportRepo.List(dbctx.Context{Ctx: ctx}, status, limit, offset)
	if err != nil {
		return nil, internalError(op, err)
	}
	return out, nil
}

func (rs *reportService) UpdateReportStatus(ctx context.Context, id uuid.UUID, status string) (*types.UserReport, error) {
	caller, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	rep, err := rs.reports.Transition(ctx, domainagg.TransitionReportStatusInput{
		ReportID:  id,
		ActorID:   caller.UserID,
		ActorRole: caller.Role,
		ToStatus:  status,
	})
	if err != nil {
		return nil, err
	}
	rs.log.Info("Report status changed", "report_id", rep.ID, "status", rep.Status, "by", caller.UserID)
	return rep, nil
}
