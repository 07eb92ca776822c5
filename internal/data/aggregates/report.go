package aggregates

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/marketplace-backend/internal/data/repos"
	domainagg "github.com/yungbote/marketplace-backend/internal/domain/aggregates"
	"github.com/yungbote/marketplace-backend/internal/domain/authz"
	"github.com/yungbote/marketplace-backend/internal/domain/reports"
	"github.com/yungbote/marketplace-backend/internal/platform/dbctx"
)

type ReportAggregateDeps struct {
	Base BaseDeps

	Reports  repos.ReportRepo
	Users    repos.UserRepo
	Products repos.ProductRepo
	Stores   repos.StoreRepo
}

type reportAggregate struct {
	deps ReportAggregateDeps
}

func NewReportAggregate(deps ReportAggregateDeps) domainagg.ReportAggregate {
	deps.Base = deps.Base.withDefaults()
	return &reportAggregate{deps: deps}
}

func (a *reportAggregate) configured() bool {
	return a.deps.Reports != nil && a.deps.Users != nil && a.deps.Products != nil && a.deps.Stores != nil
}

func (a *reportAggregate) Create(ctx context.Context, in domainagg.CreateReportInput) (*reports.UserReport, error) {
	const op = "Moderation.Report.Create"
	if in.ReporterID == uuid.Nil {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "missing reporter_id", nil)
	}
	reason := strings.TrimSpace(in.Reason)
	description := strings.TrimSpace(in.Description)
	if reason == "" {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "reason is required", nil)
	}
	if description == "" {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "description is required", nil)
	}
	target, err := reports.TargetFromColumns(in.ReportedUserID, in.ReportedProductID, in.ReportedStoreID)
	if err != nil {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, err.Error(), err)
	}
	if !a.configured() {
		return nil, domainagg.NewError(domainagg.CodeInternal, op, "report aggregate repos not configured", nil)
	}

	var created *reports.UserReport
	err = executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		exists, err := a.targetExists(dbc, target)
		if err != nil {
			return err
		}
		if !exists {
			return domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("reported %s not found: %s", target.Kind, target.ID), nil)
		}
		row := &reports.UserReport{
			ReporterID:  in.ReporterID,
			Reason:      reason,
			Description: description,
			Status:      reports.StatusPending,
		}
		target.Apply(row)
		created, err = a.deps.Reports.Create(dbc, row)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (a *reportAggregate) targetExists(dbc dbctx.Context, t reports.Target) (bool, error) {
	switch t.Kind {
	case reports.TargetUser:
		u, err := a.deps.Users.GetByID(dbc, t.ID)
		return u != nil, err
	case reports.TargetProduct:
		p, err := a.deps.Products.GetByID(dbc, t.ID)
		return p != nil, err
	case reports.TargetStore:
		s, err := a.deps.Stores.GetByID(dbc, t.ID)
		return s != nil, err
	}
	return false, errors.New("unknown report target kind")
}

func (a *reportAggregate) Transition(ctx context.Context, in domainagg.TransitionReportStatusInput) (*reports.UserReport, error) {
	const op = "Moderation.Report.Transition"
	if in.ReportID == uuid.Nil {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "missing report_id", nil)
	}
	to := reports.NormalizeStatus(in.ToStatus)
	if !reports.IsKnownStatus(to) {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, fmt.Sprintf("unknown report status %q", in.ToStatus), nil)
	}
	if err := authz.Authorize(authz.Caller{UserID: in.ActorID, Role: in.ActorRole}, authz.ActionModerate, authz.Resource{}); err != nil {
		return nil, err
	}
	if !a.configured() {
		return nil, domainagg.NewError(domainagg.CodeInternal, op, "report aggregate repos not configured", nil)
	}

	var updated *reports.UserReport
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		rep, err := a.deps.Reports.GetByID(dbc, in.ReportID)
		if err != nil {
			return err
		}
		if rep == nil {
			return domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("report not found: %s", in.ReportID), nil)
		}
		from := reports.NormalizeStatus(rep.Status)
		if !reports.CanTransition(from, to) {
			return domainagg.NewError(domainagg.CodeInvalidTransition, op,
				fmt.Sprintf("cannot move report from %s to %s", from, to), nil)
		}
		now := time.Now().UTC()
		ok, err := a.deps.Base.CASGuard.UpdateByStatus(dbc, "user_report", rep.ID, []string{rep.Status}, map[string]any{
			"status":     to,
			"updated_at": now,
		})
		if err != nil {
			return err
		}
		if err := RequireCASSuccess(ok, "report status changed concurrently"); err != nil {
			return err
		}
		rep.Status = to
		rep.UpdatedAt = now
		updated = rep
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
