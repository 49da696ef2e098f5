package handler

import (
	"time"

	"github.com/KasumiMercury/primind-reminder-dispatch/internal/app"
)

type ReminderResponse struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	TimeOfDay string     `json:"time_of_day"`
	Timezone  string     `json:"timezone"`
	Frequency string     `json:"frequency"`
	Active    bool       `json:"active"`
	LastSent  *time.Time `json:"last_sent,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type SweepResponse struct {
	Attempted  int       `json:"attempted"`
	Sent       int       `json:"sent"`
	Failed     int       `json:"failed"`
	Skipped    int       `json:"skipped"`
	Unrecorded int       `json:"unrecorded"`
	Invalid    int       `json:"invalid"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func FromDTO(output app.ReminderOutput) ReminderResponse {
	return ReminderResponse{
		ID:        output.ID,
		UserID:    output.UserID,
		TimeOfDay: output.TimeOfDay,
		Timezone:  output.Timezone,
		Frequency: output.Frequency,
		Active:    output.Active,
		LastSent:  output.LastSent,
		CreatedAt: output.CreatedAt,
		UpdatedAt: output.UpdatedAt,
	}
}

func FromSweepReport(report app.SweepReport) SweepResponse {
	return SweepResponse{
		Attempted:  report.Attempted,
		Sent:       report.Sent,
		Failed:     report.Failed,
		Skipped:    report.Skipped,
		Unrecorded: report.Unrecorded,
		Invalid:    report.Invalid,
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
	}
}
