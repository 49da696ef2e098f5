package repository

import (
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-reminder-dispatch/internal/domain"
)

// ReminderModel stores time_of_day as "HH:MM" text; rows written outside this
// service may hold malformed values, which are clamped on read.
type ReminderModel struct {
	ID        string     `gorm:"column:id;type:uuid;primaryKey"`
	UserID    string     `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_user_reminders_user_id"`
	TimeOfDay string     `gorm:"column:time_of_day;type:varchar(8);not null"`
	Timezone  string     `gorm:"column:timezone;type:varchar(64);not null;default:'UTC'"`
	Frequency string     `gorm:"column:frequency;type:varchar(16);not null;default:'daily'"`
	Active    bool       `gorm:"column:active;type:boolean;not null;index:idx_user_reminders_active"`
	LastSent  *time.Time `gorm:"column:last_sent;type:timestamptz"`
	CreatedAt time.Time  `gorm:"column:created_at;type:timestamptz;not null"`
	UpdatedAt time.Time  `gorm:"column:updated_at;type:timestamptz;not null"`
}

func (ReminderModel) TableName() string {
	return "user_reminders"
}

// UserModel is the read-only view of the account subsystem's users table.
type UserModel struct {
	ID    string `gorm:"column:id;type:uuid;primaryKey"`
	Email string `gorm:"column:email;type:varchar(255);not null"`
	Name  string `gorm:"column:name;type:varchar(255)"`
}

func (UserModel) TableName() string {
	return "users"
}

func (m *ReminderModel) ToEntity() (*domain.Reminder, error) {
	reminderID, err := domain.ReminderIDFromString(m.ID)
	if err != nil {
		return nil, err
	}

	userID, err := domain.UserIDFromString(m.UserID)
	if err != nil {
		return nil, err
	}

	tod, malformed := domain.ClampTimeOfDayString(m.TimeOfDay)
	if malformed {
		slog.Warn("malformed stored time of day, clamped",
			"reminder_id", m.ID,
			"time_of_day", m.TimeOfDay,
			"clamped", tod.String(),
		)
	}

	frequency, err := domain.NewFrequency(m.Frequency)
	if err != nil {
		return nil, err
	}

	return domain.Reconstitute(
		reminderID,
		userID,
		tod,
		m.Timezone,
		frequency,
		m.Active,
		m.LastSent,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

// FromEntity maps a reminder for insertion. A new row without a zone is
// stored as UTC.
func FromEntity(e *domain.Reminder) *ReminderModel {
	timezone := e.Timezone()
	if timezone == "" {
		timezone = time.UTC.String()
	}

	return &ReminderModel{
		ID:        e.ID().String(),
		UserID:    e.UserID().String(),
		TimeOfDay: e.TimeOfDay().String(),
		Timezone:  timezone,
		Frequency: string(e.Frequency()),
		Active:    e.IsActive(),
		LastSent:  e.LastSent(),
		CreatedAt: e.CreatedAt(),
		UpdatedAt: e.UpdatedAt(),
	}
}

type scheduledRow struct {
	ID        string
	UserID    string
	TimeOfDay string
	Timezone  string
	LastSent  *time.Time
	Email     string
	Name      string
}

func (r scheduledRow) toScheduled() (domain.ScheduledReminder, error) {
	reminderID, err := domain.ReminderIDFromString(r.ID)
	if err != nil {
		return domain.ScheduledReminder{}, err
	}

	userID, err := domain.UserIDFromString(r.UserID)
	if err != nil {
		return domain.ScheduledReminder{}, err
	}

	contact, err := domain.NewContact(r.Email, r.Name)
	if err != nil {
		return domain.ScheduledReminder{}, err
	}

	return domain.ScheduledReminder{
		ReminderID: reminderID,
		UserID:     userID,
		TimeOfDay:  r.TimeOfDay,
		Timezone:   r.Timezone,
		LastSent:   r.LastSent,
		Contact:    contact,
	}, nil
}
