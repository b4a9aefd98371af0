package admin

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/therapy-portal/internal/handler"
	"github.com/jwalitptl/therapy-portal/internal/model"
	"github.com/jwalitptl/therapy-portal/pkg/httputil"
)

const (
	msgSchedulesLoadFailed = "Error al cargar los horarios"
	msgScheduleSaved       = "Horario guardado exitosamente"
	msgScheduleSaveFailed  = "Error al guardar el horario"
	msgScheduleDeleted     = "Horario eliminado exitosamente"
	msgScheduleDeleteFail  = "Error al eliminar el horario"
)

// ListSchedules supports ?weekday=MONDAY and ?available=true.
func (h *Handler) ListSchedules(c *gin.Context) {
	var (
		schedules []*model.Schedule
		err       error
	)
	if day := c.Query("weekday"); day != "" {
		schedules, err = h.schedules.ListByWeekday(c.Request.Context(), day)
	} else {
		onlyAvailable, _ := strconv.ParseBool(c.Query("available"))
		schedules, err = h.schedules.List(c.Request.Context(), onlyAvailable)
	}
	if err != nil {
		h.fail(c, err, msgSchedulesLoadFailed)
		return
	}
	httputil.RespondWithSuccess(c, schedules)
}

func (h *Handler) CreateSchedule(c *gin.Context) {
	var req model.Schedule
	if err := handler.BindJSON(c, &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	s, err := h.schedules.Create(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err, msgScheduleSaveFailed)
		return
	}
	handler.NotifySuccess(c, h.notices, msgScheduleSaved)
	httputil.RespondCreated(c, s)
}

func (h *Handler) UpdateSchedule(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	var req model.Schedule
	if err := handler.BindJSON(c, &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	s, err := h.schedules.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.fail(c, err, msgScheduleSaveFailed)
		return
	}
	handler.NotifySuccess(c, h.notices, msgScheduleSaved)
	httputil.RespondWithSuccess(c, s)
}

func (h *Handler) DeleteSchedule(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	if err := h.schedules.Delete(c.Request.Context(), id, handler.Confirmed(c)); err != nil {
		h.fail(c, err, msgScheduleDeleteFail)
		return
	}
	handler.NotifySuccess(c, h.notices, msgScheduleDeleted)
	httputil.RespondWithSuccess(c, nil)
}
