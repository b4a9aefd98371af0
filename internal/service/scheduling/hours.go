package scheduling

import (
	"fmt"
	"strings"
	"time"
)

// Clock is a time of day in minutes since midnight.
type Clock int

// ParseClock reads "HH:MM" (seconds, if present, are ignored).
func ParseClock(s string) (Clock, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid clock %q: %w", s, err)
	}
	if h < 0 || h > 24 || m < 0 || m > 59 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("invalid clock %q", s)
	}
	return Clock(h*60 + m), nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// DayHours is the opening window of one weekday.
type DayHours struct {
	Closed bool
	Open   Clock
	Close  Clock
}

// WeeklyHours is indexed by time.Weekday.
type WeeklyHours [7]DayHours

// DefaultWeeklyHours: weekdays 09:00-17:00, Saturday 08:00-15:00, Sunday closed.
func DefaultWeeklyHours() WeeklyHours {
	weekday := DayHours{Open: 9 * 60, Close: 17 * 60}
	return WeeklyHours{
		time.Sunday:    {Closed: true},
		time.Monday:    weekday,
		time.Tuesday:   weekday,
		time.Wednesday: weekday,
		time.Thursday:  weekday,
		time.Friday:    weekday,
		time.Saturday:  {Open: 8 * 60, Close: 15 * 60},
	}
}

// ParseWeeklyHours overrides defaults from a map keyed by lower-case
// English day name. Values are "closed" or "HH:MM-HH:MM".
func ParseWeeklyHours(overrides map[string]string) (WeeklyHours, error) {
	hours := DefaultWeeklyHours()
	for name, value := range overrides {
		day, ok := weekdayByName(name)
		if !ok {
			return hours, fmt.Errorf("unknown weekday %q", name)
		}
		value = strings.TrimSpace(strings.ToLower(value))
		if value == "closed" || value == "" {
			hours[day] = DayHours{Closed: true}
			continue
		}
		open, closing, found := strings.Cut(value, "-")
		if !found {
			return hours, fmt.Errorf("invalid hours %q for %s", value, name)
		}
		o, err := ParseClock(strings.TrimSpace(open))
		if err != nil {
			return hours, err
		}
		c, err := ParseClock(strings.TrimSpace(closing))
		if err != nil {
			return hours, err
		}
		if c <= o {
			return hours, fmt.Errorf("closing time must be after opening time for %s", name)
		}
		hours[day] = DayHours{Open: o, Close: c}
	}
	return hours, nil
}

func weekdayByName(name string) (time.Weekday, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == name {
			return d, true
		}
	}
	return 0, false
}
