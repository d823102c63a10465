package response

import (
	"time"

	"github.com/gin-gonic/gin"

	"seedround/pkg/apperr"
)

type APIResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Data      any       `json:"data,omitempty"`
	Error     *APIError `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

type APIError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func SendAPIResponse(c *gin.Context, code int, success bool, message string, data any) {
	resp := APIResponse{
		Success:   success,
		Message:   message,
		Data:      data,
		CreatedAt: time.Now(),
	}

	c.JSON(code, resp)
}

// SendAPIError renders a domain error with its kind-mapped HTTP status.
func SendAPIError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	msg := apperr.MessageOf(err)

	resp := APIResponse{
		Success:   false,
		Message:   msg,
		Error:     &APIError{Kind: string(kind), Message: msg},
		CreatedAt: time.Now(),
	}

	c.JSON(apperr.HTTPStatus(kind), resp)
}
