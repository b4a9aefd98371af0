package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/jwalitptl/therapy-portal/pkg/errors"
)

// Response wraps all API responses
type Response struct {
	Status  string            `json:"status"`
	Message string            `json:"message,omitempty"`
	Data    interface{}       `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// RespondWithSuccess sends a 200 success response
func RespondWithSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, NewSuccessResponse(data))
}

// RespondCreated sends a 201 success response
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, NewSuccessResponse(data))
}

// RespondWithError sends an error response. Only *AppError messages reach
// the client; anything else becomes a generic 500.
func RespondWithError(c *gin.Context, err error) {
	status := StatusCode(err)
	resp := NewErrorResponse("internal server error")

	if appErr, ok := apperrors.As(err); ok {
		resp.Message = appErr.Message
		resp.Errors = appErr.Fields
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, resp)
}

// StatusCode returns the HTTP status for err.
func StatusCode(err error) int {
	if appErr, ok := apperrors.As(err); ok {
		return appErr.StatusCode()
	}
	return http.StatusInternalServerError
}
