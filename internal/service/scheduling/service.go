package scheduling

import (
	"context"
	"time"

	"github.com/jwalitptl/therapy-portal/internal/model"
	"github.com/jwalitptl/therapy-portal/pkg/metrics"
	"github.com/rs/zerolog/log"
)

// AppointmentLister is the slice of the backend client the calculator needs.
type AppointmentLister interface {
	ListAppointmentsInRange(ctx context.Context, start, end time.Time) ([]*model.Appointment, error)
}

// Slot is one bookable start time. Occupied slots are kept in the list
// so callers can render them disabled.
type Slot struct {
	Time     string `json:"time"`
	Occupied bool   `json:"occupied"`
}

// DaySlots is the answer for one calendar date. Degraded means occupancy
// could not be fetched and every slot is reported free.
type DaySlots struct {
	Date     string `json:"date"`
	Closed   bool   `json:"closed"`
	Slots    []Slot `json:"slots"`
	Degraded bool   `json:"degraded,omitempty"`
}

// Available reports whether t is a free slot of the day.
func (d *DaySlots) Available(t string) bool {
	for _, s := range d.Slots {
		if s.Time == t {
			return !s.Occupied
		}
	}
	return false
}

type Config struct {
	Hours    WeeklyHours
	Step     time.Duration
	Duration time.Duration
}

func DefaultConfig() Config {
	return Config{
		Hours:    DefaultWeeklyHours(),
		Step:     time.Hour,
		Duration: time.Hour,
	}
}

type Service struct {
	cfg          Config
	appointments AppointmentLister
	metrics      *metrics.Metrics
}

func NewService(cfg Config, appointments AppointmentLister, m *metrics.Metrics) *Service {
	if cfg.Step <= 0 {
		cfg.Step = time.Hour
	}
	if cfg.Duration <= 0 {
		cfg.Duration = time.Hour
	}
	return &Service{
		cfg:          cfg,
		appointments: appointments,
		metrics:      m,
	}
}

// StaticSlots lists the start times for date from the weekly hours alone.
// The last slot starts one duration before closing.
func (s *Service) StaticSlots(date time.Time) []string {
	day := s.cfg.Hours[date.Weekday()]
	if day.Closed {
		return []string{}
	}

	step := Clock(s.cfg.Step / time.Minute)
	duration := Clock(s.cfg.Duration / time.Minute)

	var out []string
	for start := day.Open; start+duration <= day.Close; start += step {
		out = append(out, start.String())
	}
	if out == nil {
		out = []string{}
	}
	return out
}

// SlotsForDate combines StaticSlots with the backend's appointments for
// that day. A failed fetch never fails the lookup.
func (s *Service) SlotsForDate(ctx context.Context, date time.Time) (*DaySlots, error) {
	y, m, d := date.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, date.Location())

	times := s.StaticSlots(dayStart)
	result := &DaySlots{
		Date:   dayStart.Format(model.DateLayout),
		Closed: len(times) == 0,
		Slots:  make([]Slot, 0, len(times)),
	}
	for _, t := range times {
		result.Slots = append(result.Slots, Slot{Time: t})
	}
	if result.Closed {
		return result, nil
	}

	dayEnd := dayStart.Add(24*time.Hour - time.Second)
	appointments, err := s.appointments.ListAppointmentsInRange(ctx, dayStart, dayEnd)
	if err != nil {
		log.Warn().Err(err).Str("date", result.Date).Msg("failed to load occupied slots")
		result.Degraded = true
		s.metrics.SlotLookup(true)
		return result, nil
	}

	occupied := make(map[string]bool, len(appointments))
	for _, a := range appointments {
		if a == nil || a.StartsAt.IsZero() {
			continue
		}
		occupied[a.StartsAt.Format(model.ClockLayout)] = true
	}
	for i := range result.Slots {
		result.Slots[i].Occupied = occupied[result.Slots[i].Time]
	}

	s.metrics.SlotLookup(false)
	return result, nil
}
