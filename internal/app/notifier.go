package app

import (
	"context"
	"time"

	"github.com/KasumiMercury/primind-reminder-dispatch/internal/domain"
)

//go:generate mockgen -source=notifier.go -destination=notifier_mock.go -package=app

type Recipient struct {
	Email       string
	DisplayName string
}

// NotificationContext carries the reminder details a notifier renders into
// the message. LocalDate is the recipient's calendar date (YYYY-MM-DD).
type NotificationContext struct {
	ReminderID  string
	UserID      string
	TimeOfDay   string
	Timezone    string
	LocalDate   string
	RequestedAt time.Time
}

// Notifier delivers one reminder to one recipient. A nil error means the
// transport accepted the message.
type Notifier interface {
	Notify(ctx context.Context, recipient Recipient, nctx NotificationContext) error
}

// TokenVerifier resolves an unsubscribe token to the user it was issued for.
type TokenVerifier interface {
	Verify(token string) (domain.UserID, error)
}
