package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkstudio/booking-api/pkg/errors"
)

// Response wraps all API responses
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

// Error represents API error
type Error struct {
	Code    int    `json:"code"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message"`
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// RespondWithCreated sends a success response for newly created resources
func RespondWithCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    data,
	})
}

// RespondWithError sends an error response with the HTTP status mapped from
// the application error taxonomy. Validation problems are client errors,
// conflicts map to 409 so callers can offer another slot, state errors to 422,
// serialization timeouts to 503 (retryable).
func RespondWithError(c *gin.Context, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}

	c.JSON(status, Response{
		Success: false,
		Error: &Error{
			Code:    status,
			Reason:  errors.ReasonOf(err),
			Message: message,
		},
	})
}

func statusFor(err error) int {
	switch errors.CodeOf(err) {
	case errors.ErrNotFound:
		return http.StatusNotFound
	case errors.ErrValidation:
		return http.StatusBadRequest
	case errors.ErrConflict:
		return http.StatusConflict
	case errors.ErrState:
		return http.StatusUnprocessableEntity
	case errors.ErrConcurrency:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
