package domain

import (
	"time"
)

// Reminder is a user's daily notification schedule. There is at most one per
// user; lastSent is only ever advanced by the dispatcher after a successful
// notification.
type Reminder struct {
	id        ReminderID
	userID    UserID
	timeOfDay TimeOfDay
	timezone  string
	frequency Frequency
	active    bool
	lastSent  *time.Time
	createdAt time.Time
	updatedAt time.Time
}

// NewReminder builds a reminder for an upsert. An empty timezone is kept
// empty so the store can preserve the previously saved zone.
func NewReminder(
	userID UserID,
	timeOfDay TimeOfDay,
	timezone string,
	frequency Frequency,
	active bool,
) (*Reminder, error) {
	if userID.IsZero() {
		return nil, ErrInvalidUserID
	}

	if timezone != "" {
		loc, err := LoadTimezone(timezone)
		if err != nil {
			return nil, err
		}

		timezone = loc.String()
	}

	if frequency == "" {
		frequency = FrequencyDaily
	}

	now := time.Now().UTC()

	return &Reminder{
		id:        NewReminderID(),
		userID:    userID,
		timeOfDay: timeOfDay,
		timezone:  timezone,
		frequency: frequency,
		active:    active,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func Reconstitute(
	id ReminderID,
	userID UserID,
	timeOfDay TimeOfDay,
	timezone string,
	frequency Frequency,
	active bool,
	lastSent *time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) *Reminder {
	return &Reminder{
		id:        id,
		userID:    userID,
		timeOfDay: timeOfDay,
		timezone:  timezone,
		frequency: frequency,
		active:    active,
		lastSent:  lastSent,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (r *Reminder) ID() ReminderID {
	return r.id
}

func (r *Reminder) UserID() UserID {
	return r.userID
}

func (r *Reminder) TimeOfDay() TimeOfDay {
	return r.timeOfDay
}

func (r *Reminder) Timezone() string {
	return r.timezone
}

func (r *Reminder) Frequency() Frequency {
	return r.frequency
}

func (r *Reminder) IsActive() bool {
	return r.active
}

func (r *Reminder) LastSent() *time.Time {
	return r.lastSent
}

func (r *Reminder) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Reminder) UpdatedAt() time.Time {
	return r.updatedAt
}
