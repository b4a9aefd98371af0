package admin

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/therapy-portal/internal/handler"
	"github.com/jwalitptl/therapy-portal/internal/model"
	"github.com/jwalitptl/therapy-portal/pkg/httputil"
)

const (
	msgPatientsLoadFailed = "Error al cargar los pacientes"
	msgPatientLoadFailed  = "Error al cargar el paciente"
	msgPatientSaved       = "Paciente actualizado exitosamente"
	msgPatientSaveFailed  = "Error al guardar el paciente. Por favor intenta de nuevo."
	msgPatientDeleted     = "Paciente eliminado exitosamente"
	msgPatientDeleteFail  = "Error al eliminar el paciente"
)

func (h *Handler) ListPatients(c *gin.Context) {
	patients, err := h.dashboard.ListPatients(c.Request.Context())
	if err != nil {
		h.fail(c, err, msgPatientsLoadFailed)
		return
	}
	httputil.RespondWithSuccess(c, patients)
}

func (h *Handler) GetPatient(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	p, err := h.dashboard.GetPatient(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, msgPatientLoadFailed)
		return
	}
	httputil.RespondWithSuccess(c, p)
}

func (h *Handler) UpdatePatient(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	var req model.Patient
	if err := handler.BindJSON(c, &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	p, err := h.dashboard.UpdatePatient(c.Request.Context(), id, &req)
	if err != nil {
		h.fail(c, err, msgPatientSaveFailed)
		return
	}
	handler.NotifySuccess(c, h.notices, msgPatientSaved)
	httputil.RespondWithSuccess(c, p)
}

func (h *Handler) DeletePatient(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	if err := h.dashboard.DeletePatient(c.Request.Context(), id, handler.Confirmed(c)); err != nil {
		h.fail(c, err, msgPatientDeleteFail)
		return
	}
	handler.NotifySuccess(c, h.notices, msgPatientDeleted)
	httputil.RespondWithSuccess(c, nil)
}
