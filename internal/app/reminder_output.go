package app

import (
	"time"

	"github.com/KasumiMercury/primind-reminder-dispatch/internal/domain"
)

type ReminderOutput struct {
	ID        string
	UserID    string
	TimeOfDay string
	Timezone  string
	Frequency string
	Active    bool
	LastSent  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

type UnsubscribeOutput struct {
	UserID string
}

func FromEntity(reminder *domain.Reminder) ReminderOutput {
	return ReminderOutput{
		ID:        reminder.ID().String(),
		UserID:    reminder.UserID().String(),
		TimeOfDay: reminder.TimeOfDay().String(),
		Timezone:  reminder.Timezone(),
		Frequency: string(reminder.Frequency()),
		Active:    reminder.IsActive(),
		LastSent:  reminder.LastSent(),
		CreatedAt: reminder.CreatedAt(),
		UpdatedAt: reminder.UpdatedAt(),
	}
}
