package admin

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/therapy-portal/internal/handler"
	"github.com/jwalitptl/therapy-portal/internal/model"
	"github.com/jwalitptl/therapy-portal/pkg/httputil"
)

const (
	msgAppointmentsLoadFailed = "Error al cargar las citas"
	msgStatusFailed           = "Error al actualizar el estado de la cita"
	msgAppointmentDeleted     = "Cita eliminada exitosamente"
	msgAppointmentDeleteFail  = "Error al eliminar la cita"
)

func (h *Handler) ListAppointments(c *gin.Context) {
	apps, err := h.dashboard.ListAppointments(c.Request.Context())
	if err != nil {
		h.fail(c, err, msgAppointmentsLoadFailed)
		return
	}
	httputil.RespondWithSuccess(c, apps)
}

func (h *Handler) ChangeAppointmentStatus(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	var req model.StatusChange
	if err := handler.BindJSON(c, &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	apt, err := h.dashboard.ChangeAppointmentStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.fail(c, err, msgStatusFailed)
		return
	}
	httputil.RespondWithSuccess(c, apt)
}

func (h *Handler) DeleteAppointment(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	if err := h.dashboard.DeleteAppointment(c.Request.Context(), id, handler.Confirmed(c)); err != nil {
		h.fail(c, err, msgAppointmentDeleteFail)
		return
	}
	handler.NotifySuccess(c, h.notices, msgAppointmentDeleted)
	httputil.RespondWithSuccess(c, nil)
}
