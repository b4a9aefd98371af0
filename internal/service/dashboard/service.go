package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/jwalitptl/therapy-portal/internal/apiclient"
	"github.com/jwalitptl/therapy-portal/internal/model"
	apperrors "github.com/jwalitptl/therapy-portal/pkg/errors"
	"github.com/jwalitptl/therapy-portal/pkg/metrics"
	"github.com/jwalitptl/therapy-portal/pkg/validator"
)

// Backend is the slice of the REST client the dashboard uses.
type Backend interface {
	ListAppointments(ctx context.Context) ([]*model.Appointment, error)
	GetAppointment(ctx context.Context, id int64) (*model.Appointment, error)
	UpdateAppointment(ctx context.Context, id int64, a *model.Appointment) (*model.Appointment, error)
	DeleteAppointment(ctx context.Context, id int64) error

	ListPatients(ctx context.Context) ([]*model.Patient, error)
	GetPatient(ctx context.Context, id int64) (*model.Patient, error)
	UpdatePatient(ctx context.Context, id int64, p *model.Patient) (*model.Patient, error)
	DeletePatient(ctx context.Context, id int64) error

	ListMaterials(ctx context.Context) ([]*model.Material, error)
	UploadMaterial(ctx context.Context, up *model.MaterialUpload) (*model.Material, error)
	DeleteMaterial(ctx context.Context, id int64) error
	DownloadURL(id int64) string
}

// ErrNotConfirmed is returned by destructive actions called without an
// explicit confirmation. No upstream call is made.
var ErrNotConfirmed = apperrors.PreconditionRequired("confirmation required")

const (
	collectionAppointments = "appointments"
	collectionPatients     = "patients"
	collectionMaterials    = "materials"
)

// Snapshot is everything the admin dashboard renders. Warnings lists the
// collections that failed to load; those collections are empty.
type Snapshot struct {
	Appointments    []*model.Appointment `json:"appointments"`
	Patients        []*model.Patient     `json:"patients"`
	Materials       []*model.Material    `json:"materials"`
	Upcoming        []*model.Appointment `json:"upcoming"`
	RecentPatients  []*model.Patient     `json:"recent_patients"`
	RecentMaterials []*model.Material    `json:"recent_materials"`
	Stats           Stats                `json:"stats"`
	Warnings        map[string]string    `json:"warnings,omitempty"`
}

type Config struct {
	UpcomingCap int
	RecentCap   int
}

type Service struct {
	backend   Backend
	validator *validator.Validator
	metrics   *metrics.Metrics
	cfg       Config
	now       func() time.Time
}

func NewService(backend Backend, v *validator.Validator, m *metrics.Metrics, cfg Config) *Service {
	if cfg.UpcomingCap <= 0 {
		cfg.UpcomingCap = DefaultCap
	}
	if cfg.RecentCap <= 0 {
		cfg.RecentCap = DefaultCap
	}
	return &Service{
		backend:   backend,
		validator: v,
		metrics:   m,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Load fetches the three collections concurrently. A failing collection
// is reported in Warnings and never blocks the others.
func (s *Service) Load(ctx context.Context) *Snapshot {
	snap := &Snapshot{
		Appointments: []*model.Appointment{},
		Patients:     []*model.Patient{},
		Materials:    []*model.Material{},
	}

	var mu sync.Mutex
	warn := func(collection string, err error) {
		log.Warn().Err(err).Str("collection", collection).Msg("dashboard collection failed to load")
		s.metrics.DashboardFetchFailed(collection)
		mu.Lock()
		defer mu.Unlock()
		if snap.Warnings == nil {
			snap.Warnings = map[string]string{}
		}
		snap.Warnings[collection] = fmt.Sprintf("Error al cargar %s", collectionLabel(collection))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		apps, err := s.backend.ListAppointments(gctx)
		if err != nil {
			warn(collectionAppointments, err)
			return nil
		}
		if apps != nil {
			snap.Appointments = apps
		}
		return nil
	})
	g.Go(func() error {
		patients, err := s.backend.ListPatients(gctx)
		if err != nil {
			warn(collectionPatients, err)
			return nil
		}
		if patients != nil {
			snap.Patients = patients
		}
		return nil
	})
	g.Go(func() error {
		materials, err := s.backend.ListMaterials(gctx)
		if err != nil {
			warn(collectionMaterials, err)
			return nil
		}
		if materials != nil {
			snap.Materials = s.withDownloadURLs(materials)
		}
		return nil
	})
	_ = g.Wait()

	now := s.now()
	snap.Upcoming = Upcoming(snap.Appointments, now, s.cfg.UpcomingCap)
	snap.RecentPatients = RecentPatients(snap.Patients, s.cfg.RecentCap)
	snap.RecentMaterials = RecentMaterials(snap.Materials, s.cfg.RecentCap)
	snap.Stats = ComputeStats(snap.Appointments, snap.Patients, snap.Materials, now)
	return snap
}

func (s *Service) ListAppointments(ctx context.Context) ([]*model.Appointment, error) {
	apps, err := s.backend.ListAppointments(ctx)
	if err != nil {
		return nil, apiclient.AsAppError(err, "appointments")
	}
	return apps, nil
}

// ChangeAppointmentStatus reads the appointment and writes it back with
// the new status.
func (s *Service) ChangeAppointmentStatus(ctx context.Context, id int64, status model.AppointmentStatus) (*model.Appointment, error) {
	if !status.Valid() {
		return nil, apperrors.Validation("invalid input", map[string]string{"estado": "Estado inválido"})
	}

	apt, err := s.backend.GetAppointment(ctx, id)
	if err != nil {
		return nil, apiclient.AsAppError(err, "appointment")
	}
	apt.Status = status

	updated, err := s.backend.UpdateAppointment(ctx, id, apt)
	if err != nil {
		return nil, apiclient.AsAppError(err, "appointment")
	}
	log.Info().Int64("appointment_id", id).Str("status", string(status)).Msg("appointment status changed")
	return updated, nil
}

func (s *Service) DeleteAppointment(ctx context.Context, id int64, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	if err := s.backend.DeleteAppointment(ctx, id); err != nil {
		return apiclient.AsAppError(err, "appointment")
	}
	log.Info().Int64("appointment_id", id).Msg("appointment deleted")
	return nil
}

func (s *Service) ListPatients(ctx context.Context) ([]*model.Patient, error) {
	patients, err := s.backend.ListPatients(ctx)
	if err != nil {
		return nil, apiclient.AsAppError(err, "patients")
	}
	return patients, nil
}

func (s *Service) GetPatient(ctx context.Context, id int64) (*model.Patient, error) {
	p, err := s.backend.GetPatient(ctx, id)
	if err != nil {
		return nil, apiclient.AsAppError(err, "patient")
	}
	return p, nil
}

func (s *Service) UpdatePatient(ctx context.Context, id int64, p *model.Patient) (*model.Patient, error) {
	if err := s.validator.Validate(p, validator.PatientRules).Err(); err != nil {
		return nil, err
	}
	p.ID = id

	updated, err := s.backend.UpdatePatient(ctx, id, p)
	if err != nil {
		return nil, apiclient.AsAppError(err, "patient")
	}
	return updated, nil
}

func (s *Service) DeletePatient(ctx context.Context, id int64, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	if err := s.backend.DeletePatient(ctx, id); err != nil {
		return apiclient.AsAppError(err, "patient")
	}
	log.Info().Int64("patient_id", id).Msg("patient deleted")
	return nil
}

func (s *Service) ListMaterials(ctx context.Context) ([]*model.Material, error) {
	materials, err := s.backend.ListMaterials(ctx)
	if err != nil {
		return nil, apiclient.AsAppError(err, "materials")
	}
	return s.withDownloadURLs(materials), nil
}

func (s *Service) UploadMaterial(ctx context.Context, up *model.MaterialUpload) (*model.Material, error) {
	if err := s.validator.Validate(up, validator.MaterialUploadRules).Err(); err != nil {
		return nil, err
	}
	if up.File == nil {
		return nil, apperrors.Validation("invalid input", map[string]string{"file": "Selecciona un archivo"})
	}

	m, err := s.backend.UploadMaterial(ctx, up)
	if err != nil {
		return nil, apiclient.AsAppError(err, "material")
	}
	m.DownloadURL = s.backend.DownloadURL(m.ID)
	log.Info().Int64("material_id", m.ID).Str("category", string(m.Category)).Msg("material uploaded")
	return m, nil
}

func (s *Service) DeleteMaterial(ctx context.Context, id int64, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	if err := s.backend.DeleteMaterial(ctx, id); err != nil {
		return apiclient.AsAppError(err, "material")
	}
	log.Info().Int64("material_id", id).Msg("material deleted")
	return nil
}

func (s *Service) withDownloadURLs(materials []*model.Material) []*model.Material {
	for _, m := range materials {
		if m != nil {
			m.DownloadURL = s.backend.DownloadURL(m.ID)
		}
	}
	return materials
}

func collectionLabel(collection string) string {
	switch collection {
	case collectionAppointments:
		return "citas"
	case collectionPatients:
		return "pacientes"
	case collectionMaterials:
		return "materiales"
	}
	return collection
}
