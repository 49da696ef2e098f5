package app

import (
	"context"
)

type ReminderUseCase interface {
	UpsertReminder(ctx context.Context, input UpsertReminderInput) (ReminderOutput, error)
	GetReminder(ctx context.Context, input GetReminderInput) (ReminderOutput, error)
	Unsubscribe(ctx context.Context, input UnsubscribeInput) (UnsubscribeOutput, error)
}
