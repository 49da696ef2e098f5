package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/KasumiMercury/primind-reminder-dispatch/internal/domain"
)

type reminderRepositoryImpl struct {
	db *gorm.DB
}

func NewReminderRepository(db *gorm.DB) domain.ReminderRepository {
	return &reminderRepositoryImpl{
		db: db,
	}
}

func (r *reminderRepositoryImpl) LoadActiveReminders(ctx context.Context) ([]domain.ScheduledReminder, error) {
	slog.Debug("loading active reminders")

	var rows []scheduledRow

	result := r.db.WithContext(ctx).
		Table("user_reminders AS r").
		Select("r.id, r.user_id, r.time_of_day, r.timezone, r.last_sent, u.email, u.name").
		Joins("JOIN users AS u ON u.id = r.user_id").
		Where("r.active = ?", true).
		Scan(&rows)
	if result.Error != nil {
		slog.Error("failed to load active reminders",
			"error", result.Error,
		)

		return nil, result.Error
	}

	reminders := make([]domain.ScheduledReminder, 0, len(rows))
	invalid := 0

	for _, row := range rows {
		s, err := row.toScheduled()
		if err != nil {
			// Passed on so the sweep reports it instead of it vanishing.
			s = domain.NewInvalidScheduledReminder(row.ID, row.UserID, err)
			invalid++
		}

		reminders = append(reminders, s)
	}

	slog.Debug("active reminders loaded",
		"count", len(reminders),
		"invalid", invalid,
	)

	return reminders, nil
}

// MarkSent only moves the watermark forward; a write older than the stored
// value affects no rows and reports ErrReminderNotFound.
func (r *reminderRepositoryImpl) MarkSent(ctx context.Context, id domain.ReminderID, when time.Time) error {
	slog.Debug("marking reminder sent",
		"reminder_id", id.String(),
		"when", when,
	)

	result := r.db.WithContext(ctx).
		Model(&ReminderModel{}).
		Where("id = ? AND (last_sent IS NULL OR last_sent < ?)", id.String(), when.UTC()).
		UpdateColumn("last_sent", when.UTC())
	if result.Error != nil {
		slog.Error("failed to mark reminder sent",
			"reminder_id", id.String(),
			"error", result.Error,
		)

		return result.Error
	}

	if result.RowsAffected == 0 {
		slog.Debug("reminder not found or watermark already newer",
			"reminder_id", id.String(),
		)

		return domain.ErrReminderNotFound
	}

	return nil
}

func (r *reminderRepositoryImpl) Upsert(ctx context.Context, reminder *domain.Reminder) (*domain.Reminder, error) {
	slog.Debug("upserting reminder",
		"user_id", reminder.UserID().String(),
	)

	m := FromEntity(reminder)

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"time_of_day": gorm.Expr("EXCLUDED.time_of_day"),
			"timezone": gorm.Expr(
				"CASE WHEN ? = '' THEN user_reminders.timezone ELSE EXCLUDED.timezone END",
				reminder.Timezone(),
			),
			"frequency":  gorm.Expr("EXCLUDED.frequency"),
			"active":     gorm.Expr("EXCLUDED.active"),
			"updated_at": gorm.Expr("EXCLUDED.updated_at"),
		}),
	}).Create(m)
	if result.Error != nil {
		slog.Error("failed to upsert reminder",
			"user_id", reminder.UserID().String(),
			"error", result.Error,
		)

		return nil, result.Error
	}

	return r.FindByUserID(ctx, reminder.UserID())
}

func (r *reminderRepositoryImpl) FindByUserID(ctx context.Context, userID domain.UserID) (*domain.Reminder, error) {
	slog.Debug("finding reminder by user ID",
		"user_id", userID.String(),
	)

	var m ReminderModel

	result := r.db.WithContext(ctx).Where("user_id = ?", userID.String()).First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrReminderNotFound
		}

		slog.Error("failed to find reminder by user ID",
			"user_id", userID.String(),
			"error", result.Error,
		)

		return nil, result.Error
	}

	return m.ToEntity()
}

func (r *reminderRepositoryImpl) Deactivate(ctx context.Context, userID domain.UserID) error {
	slog.Debug("deactivating reminder",
		"user_id", userID.String(),
	)

	result := r.db.WithContext(ctx).
		Model(&ReminderModel{}).
		Where("user_id = ?", userID.String()).
		Updates(map[string]any{
			"active":     false,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		slog.Error("failed to deactivate reminder",
			"user_id", userID.String(),
			"error", result.Error,
		)

		return result.Error
	}

	if result.RowsAffected == 0 {
		slog.Debug("no reminder to deactivate",
			"user_id", userID.String(),
		)
	}

	return nil
}
