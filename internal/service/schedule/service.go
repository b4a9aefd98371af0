package schedule

import (
	"context"

	"github.com/jwalitptl/therapy-portal/internal/apiclient"
	"github.com/jwalitptl/therapy-portal/internal/model"
	apperrors "github.com/jwalitptl/therapy-portal/pkg/errors"
	"github.com/jwalitptl/therapy-portal/pkg/validator"
)

// Backend is the schedule slice of the REST client.
type Backend interface {
	ListSchedules(ctx context.Context) ([]*model.Schedule, error)
	ListAvailableSchedules(ctx context.Context) ([]*model.Schedule, error)
	ListSchedulesByWeekday(ctx context.Context, day string) ([]*model.Schedule, error)
	CreateSchedule(ctx context.Context, s *model.Schedule) (*model.Schedule, error)
	UpdateSchedule(ctx context.Context, id int64, s *model.Schedule) (*model.Schedule, error)
	DeleteSchedule(ctx context.Context, id int64) error
}

type Service struct {
	backend   Backend
	validator *validator.Validator
}

func NewService(backend Backend, v *validator.Validator) *Service {
	return &Service{backend: backend, validator: v}
}

func (s *Service) List(ctx context.Context, onlyAvailable bool) ([]*model.Schedule, error) {
	var (
		out []*model.Schedule
		err error
	)
	if onlyAvailable {
		out, err = s.backend.ListAvailableSchedules(ctx)
	} else {
		out, err = s.backend.ListSchedules(ctx)
	}
	if err != nil {
		return nil, apiclient.AsAppError(err, "schedules")
	}
	return out, nil
}

func (s *Service) ListByWeekday(ctx context.Context, day string) ([]*model.Schedule, error) {
	name, ok := model.NormalizeWeekday(day)
	if !ok {
		return nil, apperrors.Validation("invalid input", map[string]string{"dia": "Día de la semana inválido"})
	}
	out, err := s.backend.ListSchedulesByWeekday(ctx, name)
	if err != nil {
		return nil, apiclient.AsAppError(err, "schedules")
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, sch *model.Schedule) (*model.Schedule, error) {
	if err := s.check(sch); err != nil {
		return nil, err
	}
	out, err := s.backend.CreateSchedule(ctx, sch)
	if err != nil {
		return nil, apiclient.AsAppError(err, "schedule")
	}
	return out, nil
}

func (s *Service) Update(ctx context.Context, id int64, sch *model.Schedule) (*model.Schedule, error) {
	if err := s.check(sch); err != nil {
		return nil, err
	}
	sch.ID = id
	out, err := s.backend.UpdateSchedule(ctx, id, sch)
	if err != nil {
		return nil, apiclient.AsAppError(err, "schedule")
	}
	return out, nil
}

func (s *Service) Delete(ctx context.Context, id int64, confirmed bool) error {
	if !confirmed {
		return apperrors.PreconditionRequired("confirmation required")
	}
	if err := s.backend.DeleteSchedule(ctx, id); err != nil {
		return apiclient.AsAppError(err, "schedule")
	}
	return nil
}

// check validates the payload and that the window is not inverted.
func (s *Service) check(sch *model.Schedule) error {
	if day, ok := model.NormalizeWeekday(sch.Weekday); ok {
		sch.Weekday = day
	}
	if err := s.validator.Validate(sch, validator.ScheduleRules).Err(); err != nil {
		return err
	}
	if normalizeClock(sch.EndTime) <= normalizeClock(sch.StartTime) {
		return apperrors.Validation("invalid input", map[string]string{"horaFin": "La hora de fin debe ser posterior a la de inicio"})
	}
	return nil
}

// normalizeClock pads "HH:MM" to "HH:MM:SS" so values compare as strings.
func normalizeClock(c string) string {
	if len(c) == 5 {
		return c + ":00"
	}
	return c
}
