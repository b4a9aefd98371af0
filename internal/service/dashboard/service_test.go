package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/therapy-portal/internal/apiclient"
	"github.com/jwalitptl/therapy-portal/internal/model"
	apperrors "github.com/jwalitptl/therapy-portal/pkg/errors"
	"github.com/jwalitptl/therapy-portal/pkg/validator"
)

type mockBackend struct {
	mock.Mock
}

func (m *mockBackend) ListAppointments(ctx context.Context) ([]*model.Appointment, error) {
	args := m.Called(ctx)
	apps, _ := args.Get(0).([]*model.Appointment)
	return apps, args.Error(1)
}

func (m *mockBackend) GetAppointment(ctx context.Context, id int64) (*model.Appointment, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*model.Appointment)
	return a, args.Error(1)
}

func (m *mockBackend) UpdateAppointment(ctx context.Context, id int64, a *model.Appointment) (*model.Appointment, error) {
	args := m.Called(ctx, id, a)
	out, _ := args.Get(0).(*model.Appointment)
	return out, args.Error(1)
}

func (m *mockBackend) DeleteAppointment(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockBackend) ListPatients(ctx context.Context) ([]*model.Patient, error) {
	args := m.Called(ctx)
	ps, _ := args.Get(0).([]*model.Patient)
	return ps, args.Error(1)
}

func (m *mockBackend) GetPatient(ctx context.Context, id int64) (*model.Patient, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*model.Patient)
	return p, args.Error(1)
}

func (m *mockBackend) UpdatePatient(ctx context.Context, id int64, p *model.Patient) (*model.Patient, error) {
	args := m.Called(ctx, id, p)
	out, _ := args.Get(0).(*model.Patient)
	return out, args.Error(1)
}

func (m *mockBackend) DeletePatient(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockBackend) ListMaterials(ctx context.Context) ([]*model.Material, error) {
	args := m.Called(ctx)
	ms, _ := args.Get(0).([]*model.Material)
	return ms, args.Error(1)
}

func (m *mockBackend) UploadMaterial(ctx context.Context, up *model.MaterialUpload) (*model.Material, error) {
	args := m.Called(ctx, up)
	out, _ := args.Get(0).(*model.Material)
	return out, args.Error(1)
}

func (m *mockBackend) DeleteMaterial(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockBackend) DownloadURL(id int64) string {
	return fmt.Sprintf("http://backend/materiales/descargar/%d", id)
}

var now = time.Date(2025, 1, 10, 12, 0, 0, 0, time.Local)

func newService(backend Backend) *Service {
	svc := NewService(backend, validator.New(), nil, Config{})
	svc.now = func() time.Time { return now }
	return svc
}

func at(offset time.Duration, status model.AppointmentStatus, id int64) *model.Appointment {
	return &model.Appointment{ID: id, StartsAt: model.NewLocalDateTime(now.Add(offset)), Status: status}
}

func TestLoad_FailureIsolation(t *testing.T) {
	backend := new(mockBackend)
	backend.On("ListAppointments", mock.Anything).Return(nil, errors.New("connection refused"))
	backend.On("ListPatients", mock.Anything).Return([]*model.Patient{{ID: 1}, {ID: 2}}, nil)
	backend.On("ListMaterials", mock.Anything).Return([]*model.Material{{ID: 3, Public: true}}, nil)

	snap := newService(backend).Load(context.Background())

	assert.Empty(t, snap.Appointments)
	assert.NotNil(t, snap.Appointments)
	assert.Len(t, snap.Patients, 2)
	require.Len(t, snap.Materials, 1)
	assert.Equal(t, "http://backend/materiales/descargar/3", snap.Materials[0].DownloadURL)
	assert.Equal(t, map[string]string{"appointments": "Error al cargar citas"}, snap.Warnings)
	assert.Equal(t, 2, snap.Stats.TotalPatients)
	assert.Equal(t, 1, snap.Stats.PublicMaterials)
}

func TestLoad_AllFail(t *testing.T) {
	backend := new(mockBackend)
	backend.On("ListAppointments", mock.Anything).Return(nil, errors.New("down"))
	backend.On("ListPatients", mock.Anything).Return(nil, errors.New("down"))
	backend.On("ListMaterials", mock.Anything).Return(nil, errors.New("down"))

	snap := newService(backend).Load(context.Background())

	assert.Len(t, snap.Warnings, 3)
	assert.Empty(t, snap.Upcoming)
	assert.Zero(t, snap.Stats.TotalAppointments)
}

func TestUpcoming(t *testing.T) {
	apps := []*model.Appointment{
		at(-time.Hour, model.AppointmentStatusCompleted, 1),
		at(72*time.Hour, model.AppointmentStatusPending, 2),
		at(2*time.Hour, model.AppointmentStatusConfirmed, 3),
		at(24*time.Hour, model.AppointmentStatusPending, 4),
	}

	got := Upcoming(apps, now, 2)
	require.Len(t, got, 2)
	assert.Equal(t, int64(3), got[0].ID)
	assert.Equal(t, int64(4), got[1].ID)

	assert.Len(t, Upcoming(apps, now, 0), 3, "zero cap means default")
}

func TestRecent(t *testing.T) {
	var patients []*model.Patient
	var materials []*model.Material
	for i := int64(1); i <= 7; i++ {
		patients = append(patients, &model.Patient{ID: i})
		materials = append(materials, &model.Material{ID: 8 - i})
	}

	rp := RecentPatients(patients, 5)
	require.Len(t, rp, 5)
	assert.Equal(t, int64(7), rp[0].ID)
	assert.Equal(t, int64(3), rp[4].ID)

	rm := RecentMaterials(materials, 5)
	require.Len(t, rm, 5)
	assert.Equal(t, int64(7), rm[0].ID)
}

func TestComputeStats(t *testing.T) {
	apps := []*model.Appointment{
		at(time.Hour, model.AppointmentStatusPending, 1),
		at(-time.Hour, model.AppointmentStatusCompleted, 2),
		at(-2*time.Hour, model.AppointmentStatusCompleted, 3),
	}
	materials := []*model.Material{{ID: 1, Public: true}, {ID: 2}}

	st := ComputeStats(apps, nil, materials, now)
	assert.Equal(t, 3, st.TotalAppointments)
	assert.Equal(t, 1, st.UpcomingCount)
	assert.Equal(t, 2, st.AppointmentsByStatus[model.AppointmentStatusCompleted])
	assert.Equal(t, 0, st.AppointmentsByStatus[model.AppointmentStatusNoShow])
	assert.Equal(t, 1, st.PrivateMaterials)
}

func TestDelete_RequiresConfirmation(t *testing.T) {
	backend := new(mockBackend)
	svc := newService(backend)
	ctx := context.Background()

	assert.ErrorIs(t, svc.DeleteAppointment(ctx, 1, false), ErrNotConfirmed)
	assert.ErrorIs(t, svc.DeleteMaterial(ctx, 1, false), ErrNotConfirmed)
	assert.ErrorIs(t, svc.DeletePatient(ctx, 1, false), ErrNotConfirmed)
	assert.True(t, apperrors.Is(ErrNotConfirmed, apperrors.ErrPreconditionRequired))

	backend.AssertNotCalled(t, "DeleteAppointment", mock.Anything, mock.Anything)
	backend.AssertNotCalled(t, "DeleteMaterial", mock.Anything, mock.Anything)
	backend.AssertNotCalled(t, "DeletePatient", mock.Anything, mock.Anything)

	backend.On("DeleteAppointment", mock.Anything, int64(1)).Return(nil).Once()
	assert.NoError(t, svc.DeleteAppointment(ctx, 1, true))
	backend.AssertExpectations(t)
}

func TestDelete_UpstreamNotFound(t *testing.T) {
	backend := new(mockBackend)
	backend.On("DeleteMaterial", mock.Anything, int64(9)).Return(&apiclient.APIError{StatusCode: 404})

	err := newService(backend).DeleteMaterial(context.Background(), 9, true)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestChangeAppointmentStatus(t *testing.T) {
	backend := new(mockBackend)
	svc := newService(backend)
	ctx := context.Background()

	current := &model.Appointment{ID: 5, Reason: "Evaluación", Status: model.AppointmentStatusPending}
	backend.On("GetAppointment", mock.Anything, int64(5)).Return(current, nil)
	backend.On("UpdateAppointment", mock.Anything, int64(5), mock.MatchedBy(func(a *model.Appointment) bool {
		return a.Status == model.AppointmentStatusConfirmed && a.Reason == "Evaluación"
	})).Return(&model.Appointment{ID: 5, Status: model.AppointmentStatusConfirmed}, nil)

	got, err := svc.ChangeAppointmentStatus(ctx, 5, model.AppointmentStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusConfirmed, got.Status)

	_, err = svc.ChangeAppointmentStatus(ctx, 5, "ARCHIVADA")
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
	backend.AssertNumberOfCalls(t, "GetAppointment", 1)
}

func TestUpdatePatient_Validates(t *testing.T) {
	backend := new(mockBackend)
	svc := newService(backend)

	_, err := svc.UpdatePatient(context.Background(), 3, &model.Patient{FirstName: "Luis"})
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
	backend.AssertNotCalled(t, "UpdatePatient", mock.Anything, mock.Anything, mock.Anything)

	backend.On("UpdatePatient", mock.Anything, int64(3), mock.Anything).Return(&model.Patient{ID: 3}, nil)
	got, err := svc.UpdatePatient(context.Background(), 3, &model.Patient{FirstName: "Luis", LastNames: "Gómez"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ID)
}

func TestUploadMaterial(t *testing.T) {
	backend := new(mockBackend)
	svc := newService(backend)
	ctx := context.Background()

	_, err := svc.UploadMaterial(ctx, &model.MaterialUpload{Title: "Guía", Category: model.MaterialCategoryGuides})
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))

	backend.On("UploadMaterial", mock.Anything, mock.Anything).Return(&model.Material{ID: 11, Category: model.MaterialCategoryGuides}, nil)
	m, err := svc.UploadMaterial(ctx, &model.MaterialUpload{
		Title:    "Guía",
		Category: model.MaterialCategoryGuides,
		FileName: "guia.pdf",
		File:     strings.NewReader("pdf"),
	})
	require.NoError(t, err)
	assert.Equal(t, "http://backend/materiales/descargar/11", m.DownloadURL)
}
