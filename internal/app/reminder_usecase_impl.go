package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/KasumiMercury/primind-reminder-dispatch/internal/domain"
)

type reminderUseCaseImpl struct {
	repo   domain.ReminderRepository
	tokens TokenVerifier
}

func NewReminderUseCase(repo domain.ReminderRepository, tokens TokenVerifier) ReminderUseCase {
	return &reminderUseCaseImpl{
		repo:   repo,
		tokens: tokens,
	}
}

func (uc *reminderUseCaseImpl) UpsertReminder(ctx context.Context, input UpsertReminderInput) (ReminderOutput, error) {
	slog.DebugContext(ctx, "upserting reminder",
		"user_id", input.UserID,
		"time_of_day", input.TimeOfDay,
		"timezone", input.Timezone,
	)

	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return ReminderOutput{}, NewValidationError("user_id", err.Error())
	}

	tod, err := domain.ParseTimeOfDay(input.TimeOfDay)
	if err != nil {
		return ReminderOutput{}, NewValidationError("time_of_day", err.Error())
	}

	frequency, err := domain.NewFrequency(input.Frequency)
	if err != nil {
		return ReminderOutput{}, NewValidationError("frequency", err.Error())
	}

	active := true
	if input.Active != nil {
		active = *input.Active
	}

	reminder, err := domain.NewReminder(userID, tod, input.Timezone, frequency, active)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTimezone) {
			return ReminderOutput{}, NewValidationError("timezone", err.Error())
		}

		return ReminderOutput{}, NewValidationError("reminder", err.Error())
	}

	stored, err := uc.repo.Upsert(ctx, reminder)
	if err != nil {
		slog.ErrorContext(ctx, "failed to upsert reminder",
			"error", err,
			"user_id", input.UserID,
		)

		return ReminderOutput{}, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	slog.InfoContext(ctx, "reminder upserted",
		"reminder_id", stored.ID().String(),
		"user_id", input.UserID,
		"time_of_day", stored.TimeOfDay().String(),
		"timezone", stored.Timezone(),
		"active", stored.IsActive(),
	)

	return FromEntity(stored), nil
}

func (uc *reminderUseCaseImpl) GetReminder(ctx context.Context, input GetReminderInput) (ReminderOutput, error) {
	slog.DebugContext(ctx, "getting reminder",
		"user_id", input.UserID,
	)

	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return ReminderOutput{}, NewValidationError("user_id", err.Error())
	}

	reminder, err := uc.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrReminderNotFound) {
			return ReminderOutput{}, fmt.Errorf("%w: %v", ErrNotFound, err)
		}

		slog.ErrorContext(ctx, "failed to get reminder",
			"error", err,
			"user_id", input.UserID,
		)

		return ReminderOutput{}, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	return FromEntity(reminder), nil
}

func (uc *reminderUseCaseImpl) Unsubscribe(ctx context.Context, input UnsubscribeInput) (UnsubscribeOutput, error) {
	userID, err := uc.tokens.Verify(input.Token)
	if err != nil {
		slog.InfoContext(ctx, "unsubscribe token rejected",
			"error", err,
		)

		return UnsubscribeOutput{}, fmt.Errorf("%w: %v", ErrInvalidUnsubscribeToken, err)
	}

	if err := uc.repo.Deactivate(ctx, userID); err != nil {
		slog.ErrorContext(ctx, "failed to deactivate reminder",
			"error", err,
			"user_id", userID.String(),
		)

		return UnsubscribeOutput{}, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	slog.InfoContext(ctx, "reminder unsubscribed",
		"user_id", userID.String(),
	)

	return UnsubscribeOutput{UserID: userID.String()}, nil
}
