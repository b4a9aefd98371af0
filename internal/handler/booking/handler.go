package booking

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/therapy-portal/internal/handler"
	"github.com/jwalitptl/therapy-portal/internal/middleware"
	"github.com/jwalitptl/therapy-portal/internal/model"
	"github.com/jwalitptl/therapy-portal/internal/service/booking"
	"github.com/jwalitptl/therapy-portal/internal/service/scheduling"
	apperrors "github.com/jwalitptl/therapy-portal/pkg/errors"
	"github.com/jwalitptl/therapy-portal/pkg/httputil"
)

const (
	msgBooked        = "¡Cita agendada exitosamente! Recibirás un email de confirmación."
	msgBookingFailed = "Error al agendar la cita. Por favor intenta de nuevo."
	msgSlotsDegraded = "No pudimos verificar los horarios ocupados. Algunos horarios podrían no estar disponibles."
)

// Slots answers the slot picker.
type Slots interface {
	SlotsForDate(ctx context.Context, date time.Time) (*scheduling.DaySlots, error)
}

type Handler struct {
	service *booking.Service
	slots   Slots
	notices handler.Notifier
}

func NewHandler(service *booking.Service, slots Slots, notices handler.Notifier) *Handler {
	return &Handler{
		service: service,
		slots:   slots,
		notices: notices,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/slots", h.ListSlots)

	bookings := r.Group("/bookings")
	{
		bookings.POST("", h.Start)
		bookings.GET("/:id", h.Get)
		bookings.PUT("/:id/patient", h.SavePatient)
		bookings.PUT("/:id/slot", h.SelectSlot)
		bookings.POST("/:id/back", h.Back)
		bookings.POST("/:id/submit", h.Submit)
	}
}

func (h *Handler) ListSlots(c *gin.Context) {
	date, err := model.ParseDate(c.Query("date"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid input", map[string]string{"date": "Fecha inválida"}))
		return
	}

	day, err := h.slots.SlotsForDate(c.Request.Context(), date)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Internal(err))
		return
	}
	if day.Degraded {
		h.notices.Warning(middleware.GetClientID(c), msgSlotsDegraded)
	}
	httputil.RespondWithSuccess(c, day)
}

func (h *Handler) Start(c *gin.Context) {
	draft, err := h.service.Start(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondCreated(c, draft)
}

func (h *Handler) Get(c *gin.Context) {
	draft, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, draft)
}

func (h *Handler) SavePatient(c *gin.Context) {
	var req model.PatientDetails
	if err := handler.BindJSON(c, &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	draft, err := h.service.SavePatient(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	httputil.RespondWithSuccess(c, draft)
}

func (h *Handler) SelectSlot(c *gin.Context) {
	var req model.SlotSelection
	if err := handler.BindJSON(c, &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	draft, err := h.service.SelectSlot(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	httputil.RespondWithSuccess(c, draft)
}

func (h *Handler) Back(c *gin.Context) {
	draft, err := h.service.Back(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, draft)
}

func (h *Handler) Submit(c *gin.Context) {
	var req model.VisitDetails
	if err := handler.BindJSON(c, &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	draft, err := h.service.Submit(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	handler.NotifySuccess(c, h.notices, msgBooked)
	httputil.RespondWithSuccess(c, draft)
}

func (h *Handler) fail(c *gin.Context, err error) {
	handler.NotifyFailure(c, h.notices, err, msgBookingFailed)
	httputil.RespondWithError(c, err)
}
