package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/jwalitptl/therapy-portal/pkg/errors"
	"github.com/jwalitptl/therapy-portal/pkg/httputil"
)

const (
	DefaultMaxBodySize   int64 = 1 << 20  // 1MB
	DefaultMaxUploadSize int64 = 20 << 20 // 20MB
)

// SizeLimit rejects bodies declared larger than limit and caps the reader
// for bodies that do not declare a length.
func SizeLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > limit {
			httputil.RespondWithError(c, apperrors.TooLarge(
				fmt.Errorf("body of %d bytes exceeds %d", c.Request.ContentLength, limit)))
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}
