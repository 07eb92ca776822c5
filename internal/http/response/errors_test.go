package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainagg "github.com/yungbote/marketplace-backend/internal/domain/aggregates"
	"github.com/yungbote/marketplace-backend/internal/platform/apierr"
)

func TestStatusForCode(t *testing.T) {
	cases := map[domainagg.ErrorCode]int{
		domainagg.CodeValidation:         http.StatusBadRequest,
		domainagg.CodeForbidden:          http.StatusForbidden,
		domainagg.CodeNotFound:           http.StatusNotFound,
		domainagg.CodeConflict:           http.StatusConflict,
		domainagg.CodeInsufficientStock:  http.StatusConflict,
		domainagg.CodeStockConflict:      http.StatusConflict,
		domainagg.CodeInvalidTransition:  http.StatusConflict,
		domainagg.CodeProductUnavailable: http.StatusUnprocessableEntity,
		domainagg.CodeEmptyCart:          http.StatusUnprocessableEntity,
		domainagg.CodeRetryable:          http.StatusServiceUnavailable,
		domainagg.CodeInternal:           http.StatusInternalServerError,
	}
	for code, want := range cases {
		if got := StatusForCode(code); got != want {
			t.Fatalf("StatusForCode(%s): want=%d got=%d", code, want, got)
		}
	}
}

func TestRespondDomainError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	pid := uuid.New()

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
		wantPID    string
	}{
		{
			name:       "stock",
			err:        domainagg.NewProductError(domainagg.CodeInsufficientStock, "op", pid, "not enough"),
			wantStatus: http.StatusConflict,
			wantCode:   "insufficient_stock",
			wantMsg:    "not enough",
			wantPID:    pid.String(),
		},
		{
			name:       "apierr",
			err:        apierr.Unauthorized(errors.New("bad token")),
			wantStatus: http.StatusUnauthorized,
			wantCode:   "unauthorized",
			wantMsg:    "bad token",
		},
		{
			name:       "internal hides cause",
			err:        domainagg.NewError(domainagg.CodeInternal, "op", "dial tcp 10.0.0.1", nil),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "internal",
			wantMsg:    "internal error",
		},
		{
			name:       "plain",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "internal",
			wantMsg:    "internal error",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			RespondDomainError(c, tc.err)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status: want=%d got=%d", tc.wantStatus, rec.Code)
			}
			var env ErrorEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if env.Error.Code != tc.wantCode || env.Error.Message != tc.wantMsg || env.Error.ProductID != tc.wantPID {
				t.Fatalf("body: unexpected %+v", env.Error)
			}
		})
	}
}
