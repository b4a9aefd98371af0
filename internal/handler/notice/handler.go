package notice

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/therapy-portal/internal/middleware"
	"github.com/jwalitptl/therapy-portal/internal/service/notice"
	apperrors "github.com/jwalitptl/therapy-portal/pkg/errors"
	"github.com/jwalitptl/therapy-portal/pkg/httputil"
)

type Handler struct {
	service *notice.Service
}

func NewHandler(service *notice.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	notices := r.Group("/notices", middleware.Cache(middleware.NoStoreConfig()))
	{
		notices.GET("", h.Drain)
		notices.DELETE("/:id", h.Dismiss)
	}
}

// Drain hands the client its pending notices, oldest first, and forgets them.
func (h *Handler) Drain(c *gin.Context) {
	httputil.RespondWithSuccess(c, h.service.Drain(middleware.GetClientID(c)))
}

func (h *Handler) Dismiss(c *gin.Context) {
	if !h.service.Dismiss(middleware.GetClientID(c), c.Param("id")) {
		httputil.RespondWithError(c, apperrors.NotFound("notice", nil))
		return
	}
	httputil.RespondWithSuccess(c, nil)
}
