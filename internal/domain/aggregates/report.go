package aggregates

import (
	"context"

	"github.com/google/uuid"

	"github.com/yungbote/marketplace-backend/internal/domain/reports"
)

// ReportAggregate owns user report lifecycle invariants.
//
// Write method failures return *aggregates.Error with codes:
// CodeValidation, CodeNotFound, CodeForbidden, CodeInvalidTransition, CodeConflict, CodeInternal.
type ReportAggregate interface {
	Create(ctx context.Context, in CreateReportInput) (*reports.UserReport, error)

	Transition(ctx context.Context, in TransitionReportStatusInput) (*reports.UserReport, error)
}

type CreateReportInput struct {
	ReporterID        uuid.UUID
	ReportedUserID    *uuid.UUID
	ReportedProductID *uuid.UUID
	ReportedStoreID   *uuid.UUID
	Reason            string
	Description       string
}

type TransitionReportStatusInput struct {
	ReportID  uuid.UUID
	ActorID   uuid.UUID
	ActorRole string
	ToStatus  string
}
