package domain

import (
	"errors"
	"time"
)

// DueWindow is the tolerance W after a reminder's configured time during which
// a sweep still considers it due.
type DueWindow struct {
	duration time.Duration
}

const (
	MinDueWindow     = 1 * time.Minute
	MaxDueWindow     = 10 * time.Minute
	DefaultDueWindow = 2 * time.Minute
)

var (
	ErrDueWindowTooSmall = errors.New("due window must be at least 1 minute")
	ErrDueWindowTooLarge = errors.New("due window must not exceed 10 minutes")
)

func NewDueWindow(d time.Duration) (DueWindow, error) {
	if d < MinDueWindow {
		return DueWindow{}, ErrDueWindowTooSmall
	}

	if d > MaxDueWindow {
		return DueWindow{}, ErrDueWindowTooLarge
	}

	return DueWindow{duration: d}, nil
}

func MustDueWindow(d time.Duration) DueWindow {
	w, err := NewDueWindow(d)
	if err != nil {
		panic(err)
	}

	return w
}

func (w DueWindow) Duration() time.Duration {
	return w.duration
}

func (w DueWindow) IsZero() bool {
	return w.duration == 0
}
