package respond

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobtracker-backend/internal/shared/storage"
	"jobtracker-backend/internal/shared/telemetry"
)

// ErrorBody defines the standardized error object.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error sends a standardized error response.
func Error(c *gin.Context, status int, code, message string, details any) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if userID := c.GetString("userId"); userID != "" {
		fields["user_id"] = userID
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// Failure maps errors that are not package sentinels: canceled requests
// become a 408 even when a store wrapped them, store outages a generic 503,
// anything else a 500 with message.
func Failure(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		Error(c, http.StatusRequestTimeout, "timeout", "request canceled", nil)
	case errors.Is(err, storage.ErrUnavailable):
		telemetry.Error("store.unavailable", map[string]any{
			"path":  c.Request.URL.Path,
			"error": err,
		})
		Error(c, http.StatusServiceUnavailable, "store_unavailable", "data is temporarily unavailable, try again shortly", nil)
	default:
		Error(c, http.StatusInternalServerError, "internal_error", message, nil)
	}
}
