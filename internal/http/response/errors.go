package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/marketplace-backend/internal/domain/aggregates"
	"github.com/yungbote/marketplace-backend/internal/platform/apierr"
)

// StatusForCode maps an aggregate error code to its HTTP status.
func StatusForCode(code domainagg.ErrorCode) int {
	switch code {
	case domainagg.CodeValidation:
		return http.StatusBadRequest
	case domainagg.CodeForbidden:
		return http.StatusForbidden
	case domainagg.CodeNotFound:
		return http.StatusNotFound
	case domainagg.CodeConflict, domainagg.CodeInsufficientStock, domainagg.CodeStockConflict, domainagg.CodeInvalidTransition:
		return http.StatusConflict
	case domainagg.CodeProductUnavailable, domainagg.CodeEmptyCart, domainagg.CodePreconditionFailed:
		return http.StatusUnprocessableEntity
	case domainagg.CodeRetryable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ErrorBody resolves err into an HTTP status and wire error.
func ErrorBody(err error) (int, APIError) {
	var apiErr *apierr.Error
	if errors.As(err, &apiErr) {
		status := apiErr.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		return status, APIError{Message: apiErr.Error(), Code: apiErr.Code}
	}
	if aggErr, ok := domainagg.As(err); ok {
		status := StatusForCode(aggErr.Code)
		msg := aggErr.Message
		if status == http.StatusInternalServerError || msg == "" {
			// internal causes stay in the logs
			msg = "internal error"
		}
		return status, APIError{Message: msg, Code: string(aggErr.Code), ProductID: aggErr.ProductID}
	}
	return http.StatusInternalServerError, APIError{Message: "internal error", Code: string(domainagg.CodeInternal)}
}

// RespondDomainError writes err using the aggregate/apierr mapping.
func RespondDomainError(c *gin.Context, err error) {
	status, body := ErrorBody(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, ErrorEnvelope{Error: body})
}
