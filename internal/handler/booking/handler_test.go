package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/therapy-portal/internal/apiclient"
	"github.com/jwalitptl/therapy-portal/internal/middleware"
	"github.com/jwalitptl/therapy-portal/internal/model"
	"github.com/jwalitptl/therapy-portal/internal/repository/memory"
	"github.com/jwalitptl/therapy-portal/internal/service/booking"
	"github.com/jwalitptl/therapy-portal/internal/service/notice"
	"github.com/jwalitptl/therapy-portal/internal/service/scheduling"
	"github.com/jwalitptl/therapy-portal/pkg/validator"
)

const clientID = "0b5c8f3e-2d7a-4f55-9b0e-7c1e2a3d4f50"

type mockBackend struct {
	mock.Mock
}

func (m *mockBackend) CreatePatient(ctx context.Context, p *model.Patient) (*model.Patient, error) {
	args := m.Called(ctx, p)
	if v := args.Get(0); v != nil {
		return v.(*model.Patient), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBackend) CreateAppointment(ctx context.Context, a *model.Appointment) (*model.Appointment, error) {
	args := m.Called(ctx, a)
	if v := args.Get(0); v != nil {
		return v.(*model.Appointment), args.Error(1)
	}
	return nil, args.Error(1)
}

type appointmentLister struct {
	err error
}

func (l appointmentLister) ListAppointmentsInRange(context.Context, time.Time, time.Time) ([]*model.Appointment, error) {
	return nil, l.err
}

type fixture struct {
	router  *gin.Engine
	backend *mockBackend
	notices *notice.Service
}

func newFixture(t *testing.T, listErr error) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend := new(mockBackend)
	slots := scheduling.NewService(scheduling.DefaultConfig(), appointmentLister{err: listErr}, nil)
	svc := booking.NewService(memory.NewDraftStore(time.Hour), nil, slots, backend, validator.New(), nil)
	notices := notice.NewService(notice.Config{})

	r := gin.New()
	r.Use(middleware.ClientID())
	NewHandler(svc, slots, notices).RegisterRoutes(r.Group("/api/v1"))

	return &fixture{router: r, backend: backend, notices: notices}
}

// nextMonday is at least a week ahead so the date is never in the past.
func nextMonday() string {
	d := time.Now().AddDate(0, 0, 7)
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format(model.DateLayout)
}

type envelope struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func (f *fixture) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.HeaderXClientID, clientID)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func decodeDraft(t *testing.T, env envelope) model.BookingDraft {
	t.Helper()
	var d model.BookingDraft
	require.NoError(t, json.Unmarshal(env.Data, &d))
	return d
}

var patientBody = map[string]string{
	"nombrePaciente":    "Ana",
	"apellidosPaciente": "Pérez",
	"nombreTutor":       "María Pérez",
	"telefonoTutor":     "5551-2345",
	"emailConfirmacion": "maria@example.com",
}

func (f *fixture) draftAtDetails(t *testing.T) string {
	t.Helper()
	w, env := f.do(t, http.MethodPost, "/api/v1/bookings", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeDraft(t, env).ID

	w, _ = f.do(t, http.MethodPut, "/api/v1/bookings/"+id+"/patient", patientBody)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = f.do(t, http.MethodPut, "/api/v1/bookings/"+id+"/slot", map[string]string{
		"date": nextMonday(),
		"time": "10:00",
	})
	require.Equal(t, http.StatusOK, w.Code)
	return id
}

func TestBookingFlow_Submit(t *testing.T) {
	f := newFixture(t, nil)
	id := f.draftAtDetails(t)

	f.backend.On("CreatePatient", mock.Anything, mock.MatchedBy(func(p *model.Patient) bool {
		return p.FirstName == "Ana" && p.GuardianPhone == "55512345"
	})).Return(&model.Patient{ID: 41}, nil)
	f.backend.On("CreateAppointment", mock.Anything, mock.MatchedBy(func(a *model.Appointment) bool {
		return a.Patient.ID == 41 && a.Reason == "Evaluación inicial"
	})).Return(&model.Appointment{ID: 77}, nil)

	w, env := f.do(t, http.MethodPost, "/api/v1/bookings/"+id+"/submit", map[string]string{
		"motivo": "Evaluación inicial",
	})

	require.Equal(t, http.StatusOK, w.Code)
	d := decodeDraft(t, env)
	assert.Equal(t, model.BookingStepSubmitted, d.Step)
	assert.Equal(t, int64(77), d.AppointmentID)

	pending := f.notices.Drain(clientID)
	require.Len(t, pending, 1)
	assert.Equal(t, model.NoticeSuccess, pending[0].Type)
	assert.Equal(t, msgBooked, pending[0].Message)
	f.backend.AssertExpectations(t)
}

func TestSavePatient_ValidationNotice(t *testing.T) {
	f := newFixture(t, nil)
	_, env := f.do(t, http.MethodPost, "/api/v1/bookings", nil)
	id := decodeDraft(t, env).ID

	w, env := f.do(t, http.MethodPut, "/api/v1/bookings/"+id+"/patient", map[string]string{
		"nombrePaciente":    "Ana",
		"telefonoTutor":     "123",
		"emailConfirmacion": "no-es-correo",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, env.Errors, "telefonoTutor")
	assert.Contains(t, env.Errors, "emailConfirmacion")

	pending := f.notices.Drain(clientID)
	require.Len(t, pending, 1)
	assert.Equal(t, "Por favor completa todos los campos correctamente", pending[0].Message)
	f.backend.AssertNotCalled(t, "CreatePatient", mock.Anything, mock.Anything)
}

func TestSubmit_UpstreamFailurePushesErrorNotice(t *testing.T) {
	f := newFixture(t, nil)
	id := f.draftAtDetails(t)

	f.backend.On("CreatePatient", mock.Anything, mock.Anything).
		Return(nil, &apiclient.APIError{StatusCode: http.StatusInternalServerError, Method: "POST", Path: "/pacientes"})

	w, env := f.do(t, http.MethodPost, "/api/v1/bookings/"+id+"/submit", map[string]string{
		"motivo": "Evaluación inicial",
	})

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "error", env.Status)

	pending := f.notices.Drain(clientID)
	require.Len(t, pending, 1)
	assert.Equal(t, model.NoticeError, pending[0].Type)
	assert.Equal(t, msgBookingFailed, pending[0].Message)
}

func TestBack(t *testing.T) {
	f := newFixture(t, nil)
	id := f.draftAtDetails(t)

	w, env := f.do(t, http.MethodPost, "/api/v1/bookings/"+id+"/back", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.BookingStepSlot, decodeDraft(t, env).Step)
}

func TestGet_UnknownDraft(t *testing.T) {
	f := newFixture(t, nil)

	w, _ := f.do(t, http.MethodGet, "/api/v1/bookings/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListSlots(t *testing.T) {
	f := newFixture(t, nil)

	w, env := f.do(t, http.MethodGet, "/api/v1/slots?date="+nextMonday(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var day scheduling.DaySlots
	require.NoError(t, json.Unmarshal(env.Data, &day))
	assert.False(t, day.Closed)
	assert.False(t, day.Degraded)
	require.NotEmpty(t, day.Slots)
	assert.Equal(t, "09:00", day.Slots[0].Time)
	assert.Empty(t, f.notices.Drain(clientID))
}

func TestListSlots_DegradedWarns(t *testing.T) {
	f := newFixture(t, errors.New("backend down"))

	w, env := f.do(t, http.MethodGet, "/api/v1/slots?date="+nextMonday(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var day scheduling.DaySlots
	require.NoError(t, json.Unmarshal(env.Data, &day))
	assert.True(t, day.Degraded)

	pending := f.notices.Drain(clientID)
	require.Len(t, pending, 1)
	assert.Equal(t, model.NoticeWarning, pending[0].Type)
}

func TestListSlots_BadDate(t *testing.T) {
	f := newFixture(t, nil)

	w, env := f.do(t, http.MethodGet, "/api/v1/slots?date=13/01/2025", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, env.Errors, "date")
}
