package middleware

import (
	"github.com/gin-gonic/gin"
)

const (
	ContextNoticePushed = "notice_pushed"

	GenericFailureMessage = "Ocurrió un error. Por favor intenta de nuevo."
)

// Notifier is the part of the notice service the middleware needs.
type Notifier interface {
	Error(client, message string) string
}

// MarkNoticePushed tells FailureNotice the handler already queued a notice.
func MarkNoticePushed(c *gin.Context) {
	c.Set(ContextNoticePushed, true)
}

// FailureNotice queues a generic error notice for the client whenever a
// request ends with a server-side status and the handler did not queue
// a more specific one.
func FailureNotice(n Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() < 500 || c.GetBool(ContextNoticePushed) {
			return
		}
		if client := GetClientID(c); client != "" {
			n.Error(client, GenericFailureMessage)
		}
	}
}
