package server

import (
	"errors"
	"net/http"

	authdomain "github.com/formfillhq/formfill/internal/auth/domain"
	profiledomain "github.com/formfillhq/formfill/internal/profile/domain"
	userdomain "github.com/formfillhq/formfill/internal/user/domain"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
	ErrTooLarge       = errors.New("payload_too_large")
	ErrLimited        = errors.New("usage_limit_reached")
	ErrInternal       = errors.New("internal_error")
)

// ErrorHandlingMiddleware turns collected errors into JSON responses.
// Internal error text stays in logs; clients only see the category.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, errorPayload{Type: "unauthorized", Message: "unauthorized"}
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, errorPayload{Type: "forbidden", Message: "forbidden"}
	case errors.Is(err, ErrLimited):
		return http.StatusTooManyRequests, errorPayload{Type: "usage_limit_reached", Message: "daily free limit reached"}
	case errors.Is(err, ErrTooLarge):
		return http.StatusRequestEntityTooLarge, errorPayload{Type: "payload_too_large", Message: "upload too large"}
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{Type: "validation_error", Message: "invalid request"}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{Type: "not_found", Message: "not found"}
	default:
		return http.StatusInternalServerError, errorPayload{Type: "internal_error", Message: "internal server error"}
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, authdomain.ErrInvalidEmail),
		errors.Is(err, userdomain.ErrInvalidEmail),
		errors.Is(err, profiledomain.ErrInvalidName):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, userdomain.ErrNotFound),
		errors.Is(err, profiledomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

// classifyErrorForLog labels collected errors for the request log line.
func classifyErrorForLog(err error) (string, string) {
	status, payload := mapError(err)
	switch {
	case status >= http.StatusInternalServerError:
		return "internal", payload.Type
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return "auth", payload.Type
	default:
		return "client", payload.Type
	}
}
