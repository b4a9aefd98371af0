package admin

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/therapy-portal/internal/handler"
	"github.com/jwalitptl/therapy-portal/internal/middleware"
	"github.com/jwalitptl/therapy-portal/internal/service/booking"
	"github.com/jwalitptl/therapy-portal/internal/service/dashboard"
	"github.com/jwalitptl/therapy-portal/internal/service/schedule"
	"github.com/jwalitptl/therapy-portal/pkg/httputil"
)

const defaultOrphanLimit = 50

// Handler serves the admin area. Every route sits behind the admin gate.
type Handler struct {
	dashboard *dashboard.Service
	schedules *schedule.Service
	bookings  *booking.Service
	notices   handler.Notifier
}

func NewHandler(
	dashboard *dashboard.Service,
	schedules *schedule.Service,
	bookings *booking.Service,
	notices handler.Notifier,
) *Handler {
	return &Handler{
		dashboard: dashboard,
		schedules: schedules,
		bookings:  bookings,
		notices:   notices,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/dashboard", h.Dashboard)
	r.GET("/bookings/orphans", h.ListOrphans)

	appointments := r.Group("/appointments")
	{
		appointments.GET("", h.ListAppointments)
		appointments.PATCH("/:id/status", h.ChangeAppointmentStatus)
		appointments.DELETE("/:id", h.DeleteAppointment)
	}

	patients := r.Group("/patients")
	{
		patients.GET("", h.ListPatients)
		patients.GET("/:id", h.GetPatient)
		patients.PUT("/:id", h.UpdatePatient)
		patients.DELETE("/:id", h.DeletePatient)
	}

	materials := r.Group("/materials")
	{
		materials.GET("", h.ListMaterials)
		materials.POST("", h.UploadMaterial)
		materials.DELETE("/:id", h.DeleteMaterial)
	}

	schedules := r.Group("/schedules")
	{
		schedules.GET("", h.ListSchedules)
		schedules.POST("", h.CreateSchedule)
		schedules.PUT("/:id", h.UpdateSchedule)
		schedules.DELETE("/:id", h.DeleteSchedule)
	}
}

// Dashboard always answers 200. Collections that failed to load come back
// empty, listed in warnings, and each one queues an error notice.
func (h *Handler) Dashboard(c *gin.Context) {
	snap := h.dashboard.Load(c.Request.Context())

	client := middleware.GetClientID(c)
	for _, msg := range snap.Warnings {
		h.notices.Error(client, msg)
	}
	if len(snap.Warnings) > 0 {
		middleware.MarkNoticePushed(c)
	}
	httputil.RespondWithSuccess(c, snap)
}

func (h *Handler) ListOrphans(c *gin.Context) {
	limit := defaultOrphanLimit
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}

	entries, err := h.bookings.Orphans(c.Request.Context(), limit)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, entries)
}

// fail queues msg for upstream and validation failures and writes the error.
func (h *Handler) fail(c *gin.Context, err error, msg string) {
	handler.NotifyFailure(c, h.notices, err, msg)
	httputil.RespondWithError(c, err)
}
