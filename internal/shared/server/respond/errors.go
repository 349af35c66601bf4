package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/shared/validation"
)

// ErrorBody defines the standardized error object.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error sends a standardized error response.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
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
	if status >= http.StatusInternalServerError {
		telemetry.Error("http.error", fields)
	} else {
		telemetry.Info("http.error", fields)
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// Invalid answers 400 with the ordered violation list.
func Invalid(c *gin.Context, verr *validation.Error) {
	Error(c, http.StatusBadRequest, "validation_error", "Validation failed", verr.Violations)
}

// ServerError logs err and answers 500 without leaking it to the caller.
func ServerError(c *gin.Context, err error) {
	telemetry.Error("handler.failed", map[string]any{
		"request_id": c.GetString("requestId"),
		"path":       c.Request.URL.Path,
		"error":      err,
	})
	Error(c, http.StatusInternalServerError, "internal_error", "Server error", nil)
}
