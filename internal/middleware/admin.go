package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	apperrors "github.com/jwalitptl/therapy-portal/pkg/errors"
	"github.com/jwalitptl/therapy-portal/pkg/httputil"
	"github.com/jwalitptl/therapy-portal/pkg/security"
)

const HeaderXAdminPassword = "X-Admin-Password"

var (
	errAdminDisabled = errors.New("admin password not configured")
	errBadPassword   = errors.New("invalid admin password")
)

// AdminGate guards the admin area with the shared password. This is a
// placeholder gate, not real authentication: there are no sessions and
// the password travels on every request.
func AdminGate(gate *security.AdminGate) gin.HandlerFunc {
	return func(c *gin.Context) {
		if gate == nil || !gate.Enabled() {
			httputil.RespondWithError(c, apperrors.Unauthorized(errAdminDisabled))
			return
		}

		if !gate.Check(c.GetHeader(HeaderXAdminPassword)) {
			log.Warn().
				Str("request_id", c.GetString(ContextRequestID)).
				Str("ip", c.ClientIP()).
				Str("path", c.Request.URL.Path).
				Msg("Rejected admin request")
			httputil.RespondWithError(c, apperrors.Unauthorized(errBadPassword))
			return
		}

		c.Next()
	}
}
