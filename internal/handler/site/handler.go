package site

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/therapy-portal/internal/handler"
	"github.com/jwalitptl/therapy-portal/internal/middleware"
	"github.com/jwalitptl/therapy-portal/internal/model"
	"github.com/jwalitptl/therapy-portal/internal/service/site"
	"github.com/jwalitptl/therapy-portal/pkg/httputil"
)

const (
	msgMaterialsFailed = "Error al cargar materiales"
	msgContactSent     = "Mensaje enviado exitosamente. Te contactaremos pronto."
	msgContactFailed   = "Error al enviar el mensaje. Por favor intenta de nuevo."
)

type Handler struct {
	service *site.Service
	notices handler.Notifier
}

func NewHandler(service *site.Service, notices handler.Notifier) *Handler {
	return &Handler{
		service: service,
		notices: notices,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	therapies := r.Group("/therapies", middleware.Cache(middleware.PublicCacheConfig()))
	{
		therapies.GET("", h.ListTherapies)
		therapies.GET("/:id", h.GetTherapy)
	}

	r.GET("/materials", h.ListMaterials)
	r.GET("/materials/:id/download", h.DownloadMaterial)
	r.POST("/contact", h.Contact)
}

func (h *Handler) ListTherapies(c *gin.Context) {
	httputil.RespondWithSuccess(c, h.service.Therapies())
}

func (h *Handler) GetTherapy(c *gin.Context) {
	t, err := h.service.Therapy(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, t)
}

// ListMaterials serves the public library; ?category=TODOS means all.
func (h *Handler) ListMaterials(c *gin.Context) {
	materials, err := h.service.PublicMaterials(c.Request.Context(), c.Query("category"))
	if err != nil {
		handler.NotifyFailure(c, h.notices, err, msgMaterialsFailed)
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, materials)
}

// DownloadMaterial redirects to the backend; the file never passes
// through the portal.
func (h *Handler) DownloadMaterial(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	url, err := h.service.DownloadURL(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.Redirect(http.StatusFound, url)
}

func (h *Handler) Contact(c *gin.Context) {
	var req model.ContactMessage
	if err := handler.BindJSON(c, &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	if err := h.service.Contact(c.Request.Context(), req); err != nil {
		handler.NotifyFailure(c, h.notices, err, msgContactFailed)
		httputil.RespondWithError(c, err)
		return
	}
	handler.NotifySuccess(c, h.notices, msgContactSent)
	httputil.RespondWithSuccess(c, nil)
}
