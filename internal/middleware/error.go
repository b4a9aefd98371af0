package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	apperrors "github.com/jwalitptl/therapy-portal/pkg/errors"
)

// ErrorHandler logs the errors handlers attached with c.Error. The response
// itself is already written by httputil.RespondWithError.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		requestID := c.GetString(ContextRequestID)
		for _, e := range c.Errors {
			event := log.Error()
			if appErr, ok := apperrors.As(e.Err); ok && appErr.StatusCode() < 500 {
				event = log.Debug()
			}
			event.
				Err(e.Err).
				Str("request_id", requestID).
				Str("path", c.Request.URL.Path).
				Str("method", c.Request.Method).
				Int("status", c.Writer.Status()).
				Msg("Request error")
		}
	}
}
