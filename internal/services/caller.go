package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	domainagg "github.com/yungbote/marketplace-backend/internal/domain/aggregates"
	"github.com/yungbote/marketplace-backend/internal/domain/authz"
	"github.com/yungbote/marketplace-backend/internal/platform/apierr"
	"github.com/yungbote/marketplace-backend/internal/platform/ctxutil"
)

var validate = validator.New()

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// callerFromContext reads the identity the auth middleware attached.
func callerFromContext(ctx context.Context) (authz.Caller, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return authz.Caller{}, apierr.Unauthorized(fmt.Errorf("request data not set in context"))
	}
	return authz.Caller{UserID: rd.UserID, Role: rd.Role}, nil
}

func validationError(op, msg string) error {
	return domainagg.NewError(domainagg.CodeValidation, op, msg, nil)
}

func notFoundError(op, what string, id uuid.UUID) error {
	return domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("%s not found: %s", what, id), nil)
}

func internalError(op string, err error) error {
	return domainagg.Wrap(domainagg.CodeInternal, op, err)
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
