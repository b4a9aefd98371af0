package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/therapy-portal/internal/apiclient"
	"github.com/jwalitptl/therapy-portal/internal/model"
	"github.com/jwalitptl/therapy-portal/internal/repository"
	"github.com/jwalitptl/therapy-portal/internal/service/scheduling"
	apperrors "github.com/jwalitptl/therapy-portal/pkg/errors"
	"github.com/jwalitptl/therapy-portal/pkg/metrics"
	"github.com/jwalitptl/therapy-portal/pkg/validator"
)

// Backend creates the records a booking produces.
type Backend interface {
	CreatePatient(ctx context.Context, p *model.Patient) (*model.Patient, error)
	CreateAppointment(ctx context.Context, a *model.Appointment) (*model.Appointment, error)
}

// SlotSource answers which start times are free on a date.
type SlotSource interface {
	SlotsForDate(ctx context.Context, date time.Time) (*scheduling.DaySlots, error)
}

type Service struct {
	drafts    repository.DraftStore
	ledger    repository.BookingLedgerRepository
	slots     SlotSource
	backend   Backend
	validator *validator.Validator
	metrics   *metrics.Metrics
	now       func() time.Time
}

// NewService wires the booking flow. ledger may be nil when no database is
// configured; outcomes are then only logged.
func NewService(
	drafts repository.DraftStore,
	ledger repository.BookingLedgerRepository,
	slots SlotSource,
	backend Backend,
	v *validator.Validator,
	m *metrics.Metrics,
) *Service {
	return &Service{
		drafts:    drafts,
		ledger:    ledger,
		slots:     slots,
		backend:   backend,
		validator: v,
		metrics:   m,
		now:       time.Now,
	}
}

// Start opens a new draft at the patient step.
func (s *Service) Start(ctx context.Context) (*model.BookingDraft, error) {
	now := s.now()
	draft := &model.BookingDraft{
		ID:        uuid.NewString(),
		Step:      model.BookingStepPatient,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (s *Service) Get(ctx context.Context, id string) (*model.BookingDraft, error) {
	draft, err := s.drafts.Get(ctx, id)
	if errors.Is(err, repository.ErrDraftNotFound) {
		return nil, apperrors.NotFound("booking", err)
	}
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to load draft: %w", err))
	}
	return draft, nil
}

// SavePatient stores the patient details. The draft only advances when
// every field is valid; otherwise it stays on the patient step.
func (s *Service) SavePatient(ctx context.Context, id string, details model.PatientDetails) (*model.BookingDraft, error) {
	draft, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if draft.Step == model.BookingStepSubmitted {
		return nil, errAlreadySubmitted
	}

	details = normalizeDetails(details)
	if err := s.validator.Validate(details, validator.PatientDetailsRules).Err(); err != nil {
		return nil, err
	}

	// A patient already created for this draft belongs to the old details.
	if draft.PatientID != 0 && draft.Patient != details {
		log.Warn().
			Str("draft_id", draft.ID).
			Int64("patient_id", draft.PatientID).
			Msg("patient details changed after patient creation; a new patient will be created")
		draft.PatientID = 0
	}

	draft.Patient = details
	if draft.Step < model.BookingStepSlot {
		draft.Step = model.BookingStepSlot
	}
	if err := s.save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// SelectSlot fixes the date and start time. The time must be one of the
// free slots of that date and still ahead of now.
func (s *Service) SelectSlot(ctx context.Context, id string, sel model.SlotSelection) (*model.BookingDraft, error) {
	draft, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireStep(draft, model.BookingStepSlot, model.BookingStepDetails); err != nil {
		return nil, err
	}

	sel.Date = strings.TrimSpace(sel.Date)
	sel.Time = strings.TrimSpace(sel.Time)
	if err := s.validator.Validate(sel, validator.SlotSelectionRules).Err(); err != nil {
		return nil, err
	}

	date, err := model.ParseDate(sel.Date)
	if err != nil {
		return nil, apperrors.Validation("invalid input", map[string]string{"date": "Fecha inválida"})
	}
	y, m, d := s.now().Date()
	if date.Before(time.Date(y, m, d, 0, 0, 0, 0, time.Local)) {
		return nil, apperrors.Validation("invalid input", map[string]string{"date": "La fecha no puede ser anterior a hoy"})
	}

	day, err := s.slots.SlotsForDate(ctx, date)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to compute slots: %w", err))
	}
	if !day.Available(sel.Time) {
		msg := "Horario no disponible"
		if day.Closed {
			msg = "No hay atención este día"
		}
		return nil, apperrors.Validation("invalid input", map[string]string{"time": msg})
	}
	startsAt, err := model.ParseLocalDateTime(sel.Date + "T" + sel.Time)
	if err != nil {
		return nil, apperrors.Validation("invalid input", map[string]string{"time": "Hora inválida"})
	}
	if !startsAt.After(s.now()) {
		return nil, apperrors.Validation("invalid input", map[string]string{"time": "Este horario ya pasó"})
	}

	draft.Date = sel.Date
	draft.Time = sel.Time
	draft.Step = model.BookingStepDetails
	if err := s.save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Back returns to the previous step. The patient step is the floor and a
// submitted draft cannot go back.
func (s *Service) Back(ctx context.Context, id string) (*model.BookingDraft, error) {
	draft, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if draft.Step == model.BookingStepSubmitted {
		return nil, errAlreadySubmitted
	}
	if draft.Step > model.BookingStepPatient {
		draft.Step--
	}
	if err := s.save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Submit creates the patient and then the appointment. If the appointment
// fails after the patient exists, the patient ID stays on the draft so a
// retry reuses it, and the orphan is written to the ledger.
//
// Only one submit per draft runs at a time; a concurrent one gets a conflict.
func (s *Service) Submit(ctx context.Context, id string, visit model.VisitDetails) (*model.BookingDraft, error) {
	locked, err := s.drafts.Lock(ctx, id, submitLockTTL)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to lock draft: %w", err))
	}
	if !locked {
		return nil, errSubmitInProgress
	}
	defer func() {
		if err := s.drafts.Unlock(context.WithoutCancel(ctx), id); err != nil {
			log.Error().Err(err).Str("draft_id", id).Msg("failed to unlock draft")
		}
	}()

	// Read after locking so a submit that just finished is seen.
	draft, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireStep(draft, model.BookingStepDetails); err != nil {
		return nil, err
	}

	visit.Reason = strings.TrimSpace(visit.Reason)
	visit.Notes = strings.TrimSpace(visit.Notes)
	if err := s.validator.Validate(visit, validator.VisitDetailsRules).Err(); err != nil {
		return nil, err
	}
	draft.Visit = visit

	startsAt, err := model.ParseLocalDateTime(draft.Date + "T" + draft.Time)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("draft %s has an invalid slot: %w", draft.ID, err))
	}

	if draft.PatientID == 0 {
		patient, err := s.backend.CreatePatient(ctx, draft.Patient.ToPatient())
		if err != nil {
			_ = s.save(ctx, draft)
			return nil, apiclient.AsAppError(err, "patient")
		}
		draft.PatientID = patient.ID
		if err := s.save(ctx, draft); err != nil {
			log.Error().Err(err).Str("draft_id", draft.ID).Msg("failed to persist created patient id")
		}
	}

	apt, err := s.backend.CreateAppointment(ctx, &model.Appointment{
		Patient:           &model.Patient{ID: draft.PatientID},
		StartsAt:          startsAt,
		DurationMinutes:   model.DefaultAppointmentMinutes,
		Status:            model.AppointmentStatusPending,
		Reason:            visit.Reason,
		Notes:             visit.Notes,
		ConfirmationEmail: draft.Patient.ConfirmationEmail,
	})
	if err != nil {
		s.metrics.BookingOrphaned()
		s.record(ctx, draft, model.LedgerOutcomeOrphanedPatient, err)
		log.Error().Err(err).
			Str("draft_id", draft.ID).
			Int64("patient_id", draft.PatientID).
			Msg("appointment creation failed after patient was created")
		return nil, apiclient.AsAppError(err, "appointment")
	}

	draft.AppointmentID = apt.ID
	draft.Step = model.BookingStepSubmitted
	if err := s.save(ctx, draft); err != nil {
		log.Error().Err(err).Str("draft_id", draft.ID).Msg("failed to persist submitted draft")
	}
	s.metrics.BookingSubmitted()
	s.record(ctx, draft, model.LedgerOutcomeCompleted, nil)

	log.Info().
		Str("draft_id", draft.ID).
		Int64("patient_id", draft.PatientID).
		Int64("appointment_id", apt.ID).
		Msg("booking submitted")
	return draft, nil
}

// Orphans lists patients created by bookings whose appointment failed.
func (s *Service) Orphans(ctx context.Context, limit int) ([]*model.LedgerEntry, error) {
	if s.ledger == nil {
		return []*model.LedgerEntry{}, nil
	}
	entries, err := s.ledger.List(ctx, model.LedgerFilter{
		Outcome: model.LedgerOutcomeOrphanedPatient,
		Limit:   limit,
	})
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return entries, nil
}

func (s *Service) record(ctx context.Context, draft *model.BookingDraft, outcome model.LedgerOutcome, cause error) {
	if s.ledger == nil {
		return
	}
	entry := &model.LedgerEntry{
		DraftID:   draft.ID,
		PatientID: draft.PatientID,
		Outcome:   outcome,
	}
	if draft.AppointmentID != 0 {
		aptID := draft.AppointmentID
		entry.AppointmentID = &aptID
	}
	if cause != nil {
		msg := cause.Error()
		entry.Error = &msg
	}
	if err := s.ledger.Record(ctx, entry); err != nil {
		log.Error().Err(err).Str("draft_id", draft.ID).Str("outcome", string(outcome)).Msg("failed to write booking ledger")
	}
}

func (s *Service) save(ctx context.Context, draft *model.BookingDraft) error {
	draft.UpdatedAt = s.now()
	if err := s.drafts.Save(ctx, draft); err != nil {
		return apperrors.Internal(fmt.Errorf("failed to save draft: %w", err))
	}
	return nil
}

// submitLockTTL outlives the two upstream calls of a submit.
const submitLockTTL = 30 * time.Second

var (
	errAlreadySubmitted = apperrors.Conflict("booking already submitted", nil)
	errSubmitInProgress = apperrors.Conflict("booking submission already in progress", nil)
)

func requireStep(draft *model.BookingDraft, allowed ...model.BookingStep) error {
	for _, step := range allowed {
		if draft.Step == step {
			return nil
		}
	}
	if draft.Step == model.BookingStepSubmitted {
		return errAlreadySubmitted
	}
	return apperrors.Conflict(fmt.Sprintf("booking is at the %s step", draft.Step), nil)
}

func normalizeDetails(d model.PatientDetails) model.PatientDetails {
	d.FirstName = strings.TrimSpace(d.FirstName)
	d.LastNames = strings.TrimSpace(d.LastNames)
	d.BirthDate = strings.TrimSpace(d.BirthDate)
	d.GuardianName = strings.TrimSpace(d.GuardianName)
	d.GuardianPhone = validator.NormalizePhone(d.GuardianPhone)
	d.ConfirmationEmail = strings.TrimSpace(d.ConfirmationEmail)
	return d
}
