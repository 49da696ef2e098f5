package notify

import (
	"context"
	"log/slog"

	"github.com/KasumiMercury/primind-reminder-dispatch/internal/app"
)

// LogNotifier only logs the notification it would have sent.
type LogNotifier struct {
	links *Links
}

func NewLogNotifier(links *Links) *LogNotifier {
	return &LogNotifier{links: links}
}

func (n *LogNotifier) Notify(ctx context.Context, recipient app.Recipient, nctx app.NotificationContext) error {
	payload, err := buildPayload(recipient, nctx, n.links)
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "reminder notification (dry run)",
		slog.String("event", "notify.dry_run"),
		slog.String("reminder_id", payload.ReminderID),
		slog.String("user_id", payload.UserID),
		slog.String("email", payload.Email),
		slog.String("local_date", payload.LocalDate),
		slog.String("unsubscribe_url", payload.UnsubscribeURL),
	)

	return nil
}

func (n *LogNotifier) Close() error {
	return nil
}
