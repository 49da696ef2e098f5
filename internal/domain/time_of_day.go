package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is a local wall-clock time with minute precision and no date.
type TimeOfDay struct {
	hour   int
	minute int
}

const (
	maxHour   = 23
	maxMinute = 59
)

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > maxHour {
		return TimeOfDay{}, fmt.Errorf("%w: hour %d out of range 0-23", ErrInvalidTimeOfDay, hour)
	}

	if minute < 0 || minute > maxMinute {
		return TimeOfDay{}, fmt.Errorf("%w: minute %d out of range 0-59", ErrInvalidTimeOfDay, minute)
	}

	return TimeOfDay{hour: hour, minute: minute}, nil
}

func MustTimeOfDay(hour, minute int) TimeOfDay {
	t, err := NewTimeOfDay(hour, minute)
	if err != nil {
		panic(err)
	}

	return t
}

// ParseTimeOfDay accepts "HH:MM" or "HH:MM:SS". Seconds are validated and dropped.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return TimeOfDay{}, fmt.Errorf("%w: %q is not HH:MM", ErrInvalidTimeOfDay, s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: non-numeric hour in %q", ErrInvalidTimeOfDay, s)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: non-numeric minute in %q", ErrInvalidTimeOfDay, s)
	}

	if len(parts) == 3 {
		sec, err := strconv.Atoi(parts[2])
		if err != nil || sec < 0 || sec > 59 {
			return TimeOfDay{}, fmt.Errorf("%w: invalid seconds in %q", ErrInvalidTimeOfDay, s)
		}
	}

	return NewTimeOfDay(hour, minute)
}

// ClampTimeOfDay forces hour into 0-23 and minute into 0-59. The bool reports
// whether any component had to be changed.
func ClampTimeOfDay(hour, minute int) (TimeOfDay, bool) {
	clamped := false

	if hour < 0 {
		hour, clamped = 0, true
	} else if hour > maxHour {
		hour, clamped = maxHour, true
	}

	if minute < 0 {
		minute, clamped = 0, true
	} else if minute > maxMinute {
		minute, clamped = maxMinute, true
	}

	return TimeOfDay{hour: hour, minute: minute}, clamped
}

// ClampTimeOfDayString is the lenient counterpart of ParseTimeOfDay used for
// stored data: missing or non-numeric components read as 0 and out-of-range
// values are clamped. The bool reports whether the input was malformed.
func ClampTimeOfDayString(s string) (TimeOfDay, bool) {
	if t, err := ParseTimeOfDay(s); err == nil {
		return t, false
	}

	parts := strings.Split(strings.TrimSpace(s), ":")

	component := func(i int) int {
		if i >= len(parts) {
			return 0
		}

		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil {
			return 0
		}

		return n
	}

	t, _ := ClampTimeOfDay(component(0), component(1))

	return t, true
}

func (t TimeOfDay) Hour() int {
	return t.hour
}

func (t TimeOfDay) Minute() int {
	return t.minute
}

// On returns the instant at this wall-clock time on the calendar date of day,
// interpreted in loc. A wall time skipped by a forward offset change resolves
// to the instant the same distance past the start of the gap, so 02:30 on a
// spring-forward night in New York becomes 03:30 EDT.
func (t TimeOfDay) On(day time.Time, loc *time.Location) time.Time {
	local := day.In(loc)
	target := time.Date(local.Year(), local.Month(), local.Day(), t.hour, t.minute, 0, 0, loc)

	requested := time.Date(local.Year(), local.Month(), local.Day(), t.hour, t.minute, 0, 0, time.UTC)
	resolved := time.Date(target.Year(), target.Month(), target.Day(), target.Hour(), target.Minute(), 0, 0, time.UTC)

	if shortfall := requested.Sub(resolved); shortfall > 0 {
		target = target.Add(shortfall)
	}

	return target
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.hour, t.minute)
}
