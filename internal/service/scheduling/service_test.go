package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jwalitptl/therapy-portal/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockLister struct {
	mock.Mock
}

func (m *mockLister) ListAppointmentsInRange(ctx context.Context, start, end time.Time) ([]*model.Appointment, error) {
	args := m.Called(ctx, start, end)
	if v := args.Get(0); v != nil {
		return v.([]*model.Appointment), args.Error(1)
	}
	return nil, args.Error(1)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func appointmentAt(t *testing.T, ts string) *model.Appointment {
	t.Helper()
	starts, err := model.ParseLocalDateTime(ts)
	require.NoError(t, err)
	return &model.Appointment{StartsAt: starts, DurationMinutes: 60}
}

func TestStaticSlots(t *testing.T) {
	svc := NewService(DefaultConfig(), nil, nil)

	t.Run("sunday is closed", func(t *testing.T) {
		assert.Empty(t, svc.StaticSlots(date(2025, 1, 12)))
	})

	t.Run("saturday", func(t *testing.T) {
		assert.Equal(t,
			[]string{"08:00", "09:00", "10:00", "11:00", "12:00", "13:00", "14:00"},
			svc.StaticSlots(date(2025, 1, 11)))
	})

	t.Run("weekdays", func(t *testing.T) {
		want := []string{"09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00"}
		for d := 13; d <= 17; d++ {
			assert.Equal(t, want, svc.StaticSlots(date(2025, 1, d)), "2025-01-%d", d)
		}
	})
}

func TestStaticSlots_WithinOpeningHours(t *testing.T) {
	svc := NewService(DefaultConfig(), nil, nil)
	hours := DefaultWeeklyHours()

	for d := 1; d <= 31; d++ {
		day := date(2025, 3, d)
		window := hours[day.Weekday()]
		for _, s := range svc.StaticSlots(day) {
			start, err := ParseClock(s)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, int(start), int(window.Open))
			assert.LessOrEqual(t, int(start+60), int(window.Close))
		}
	}
}

func TestSlotsForDate_MarksOccupied(t *testing.T) {
	lister := new(mockLister)
	day := date(2025, 1, 13)
	lister.On("ListAppointmentsInRange", mock.Anything, day, day.Add(24*time.Hour-time.Second)).
		Return([]*model.Appointment{
			appointmentAt(t, "2025-01-13T10:00:00"),
			appointmentAt(t, "2025-01-13T15:00:00"),
		}, nil)

	svc := NewService(DefaultConfig(), lister, nil)
	out, err := svc.SlotsForDate(context.Background(), day.Add(13*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, "2025-01-13", out.Date)
	assert.False(t, out.Degraded)
	require.Len(t, out.Slots, 8)

	var occupied []string
	for _, s := range out.Slots {
		if s.Occupied {
			occupied = append(occupied, s.Time)
		}
	}
	assert.Equal(t, []string{"10:00", "15:00"}, occupied)
	assert.False(t, out.Available("10:00"))
	assert.True(t, out.Available("11:00"))
	assert.False(t, out.Available("18:00"))
	lister.AssertExpectations(t)
}

func TestSlotsForDate_FetchFailureIsDegraded(t *testing.T) {
	lister := new(mockLister)
	lister.On("ListAppointmentsInRange", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))

	svc := NewService(DefaultConfig(), lister, nil)
	out, err := svc.SlotsForDate(context.Background(), date(2025, 1, 11))
	require.NoError(t, err)

	assert.True(t, out.Degraded)
	require.Len(t, out.Slots, 7)
	for _, s := range out.Slots {
		assert.False(t, s.Occupied)
	}
}

func TestSlotsForDate_ClosedDaySkipsFetch(t *testing.T) {
	lister := new(mockLister)
	svc := NewService(DefaultConfig(), lister, nil)

	out, err := svc.SlotsForDate(context.Background(), date(2025, 1, 12))
	require.NoError(t, err)

	assert.True(t, out.Closed)
	assert.Empty(t, out.Slots)
	lister.AssertNotCalled(t, "ListAppointmentsInRange", mock.Anything, mock.Anything, mock.Anything)
}

func TestParseWeeklyHours(t *testing.T) {
	hours, err := ParseWeeklyHours(map[string]string{
		"saturday": "closed",
		"Friday":   "10:00-13:00",
	})
	require.NoError(t, err)

	assert.True(t, hours[time.Saturday].Closed)
	assert.Equal(t, DayHours{Open: 600, Close: 780}, hours[time.Friday])
	assert.Equal(t, DefaultWeeklyHours()[time.Monday], hours[time.Monday])

	svc := NewService(Config{Hours: hours}, nil, nil)
	assert.Equal(t, []string{"10:00", "11:00", "12:00"}, svc.StaticSlots(date(2025, 1, 17)))

	_, err = ParseWeeklyHours(map[string]string{"funday": "09:00-10:00"})
	assert.Error(t, err)

	_, err = ParseWeeklyHours(map[string]string{"monday": "17:00-09:00"})
	assert.Error(t, err)
}

func TestParseClock(t *testing.T) {
	c, err := ParseClock("09:30:00")
	require.NoError(t, err)
	assert.Equal(t, "09:30", c.String())

	_, err = ParseClock("25:00")
	assert.Error(t, err)
}
