package domain

import (
	"context"
	"time"
)

// ScheduledReminder is an active reminder joined with its owner's contact,
// as loaded once per sweep. TimeOfDay and Timezone are kept raw so that bad
// rows can be repaired per item instead of failing the whole load.
type ScheduledReminder struct {
	ReminderID ReminderID
	UserID     UserID
	TimeOfDay  string
	Timezone   string
	LastSent   *time.Time
	Contact    Contact

	// Invalid is set when the stored row could not be read; only RawID and
	// RawUserID are filled in then.
	Invalid   error
	RawID     string
	RawUserID string
}

func NewInvalidScheduledReminder(rawID, rawUserID string, err error) ScheduledReminder {
	return ScheduledReminder{
		Invalid:   err,
		RawID:     rawID,
		RawUserID: rawUserID,
	}
}

//go:generate mockgen -source=reminder_repository.go -destination=reminder_repository_mock.go -package=domain

type ReminderRepository interface {
	// LoadActiveReminders returns every active reminder with contact info in a single query.
	LoadActiveReminders(ctx context.Context) ([]ScheduledReminder, error)
	// MarkSent advances last_sent for one reminder.
	MarkSent(ctx context.Context, id ReminderID, when time.Time) error
	// Upsert creates or replaces the reminder of reminder.UserID(). last_sent is never touched.
	Upsert(ctx context.Context, reminder *Reminder) (*Reminder, error)
	FindByUserID(ctx context.Context, userID UserID) (*Reminder, error)
	// Deactivate sets active=false for the user's reminder. Missing rows are not an error.
	Deactivate(ctx context.Context, userID UserID) error
}
