package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/therapy-portal/internal/middleware"
	apperrors "github.com/jwalitptl/therapy-portal/pkg/errors"
)

// Notifier queues transient notices for a browser client.
type Notifier interface {
	Success(client, message string) string
	Error(client, message string) string
	Warning(client, message string) string
}

// ValidationNotice is shown whenever a form fails validation.
const ValidationNotice = "Por favor completa todos los campos correctamente"

// ParseID reads a positive numeric path parameter.
func ParseID(c *gin.Context, param string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		if err == nil {
			err = errors.New("id must be positive")
		}
		return 0, apperrors.BadRequest("invalid "+param, err)
	}
	return id, nil
}

// Confirmed reports whether the request carries ?confirm=true.
func Confirmed(c *gin.Context) bool {
	ok, _ := strconv.ParseBool(c.Query("confirm"))
	return ok
}

// BindJSON decodes the body; malformed JSON is a 400.
func BindJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return apperrors.BadRequest("invalid request body", err)
	}
	return nil
}

func NotifySuccess(c *gin.Context, n Notifier, message string) {
	n.Success(middleware.GetClientID(c), message)
	middleware.MarkNoticePushed(c)
}

// NotifyFailure picks the validation notice for validation errors and
// failureMsg for everything else. Client errors other than validation
// get no notice.
func NotifyFailure(c *gin.Context, n Notifier, err error, failureMsg string) {
	client := middleware.GetClientID(c)
	switch {
	case apperrors.Is(err, apperrors.ErrValidation):
		n.Error(client, ValidationNotice)
	case statusOf(err) >= 500:
		n.Error(client, failureMsg)
	default:
		return
	}
	middleware.MarkNoticePushed(c)
}

func statusOf(err error) int {
	if appErr, ok := apperrors.As(err); ok {
		return appErr.StatusCode()
	}
	return 500
}
