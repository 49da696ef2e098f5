package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/KasumiMercury/primind-reminder-dispatch/internal/app"
	"github.com/KasumiMercury/primind-reminder-dispatch/internal/domain"
	"github.com/KasumiMercury/primind-reminder-dispatch/internal/observability/tracing"
)

const (
	EventTypeReminderDue = "reminder.due"

	DefaultTopic = "reminder.notify"
)

// LinkIssuer mints the unsubscribe capability embedded in each notification.
type LinkIssuer interface {
	Issue(userID domain.UserID) (string, error)
}

// Payload is the message body handed to the email transport.
type Payload struct {
	EventType      string    `json:"event_type"`
	ReminderID     string    `json:"reminder_id"`
	UserID         string    `json:"user_id"`
	Email          string    `json:"email"`
	DisplayName    string    `json:"display_name"`
	TimeOfDay      string    `json:"time_of_day"`
	Timezone       string    `json:"timezone"`
	LocalDate      string    `json:"local_date"`
	UnsubscribeURL string    `json:"unsubscribe_url"`
	RequestedAt    time.Time `json:"requested_at"`
}

// Links builds unsubscribe URLs of the form base?token=....
type Links struct {
	issuer  LinkIssuer
	baseURL string
}

func NewLinks(issuer LinkIssuer, baseURL string) *Links {
	return &Links{
		issuer:  issuer,
		baseURL: baseURL,
	}
}

func (l *Links) UnsubscribeURL(userID string) (string, error) {
	if l == nil || l.issuer == nil {
		return "", nil
	}

	uid, err := domain.UserIDFromString(userID)
	if err != nil {
		return "", err
	}

	token, err := l.issuer.Issue(uid)
	if err != nil {
		return "", err
	}

	u, err := url.Parse(l.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid unsubscribe base url: %w", err)
	}

	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func buildPayload(recipient app.Recipient, nctx app.NotificationContext, links *Links) (Payload, error) {
	unsubscribeURL, err := links.UnsubscribeURL(nctx.UserID)
	if err != nil {
		return Payload{}, fmt.Errorf("failed to build unsubscribe link: %w", err)
	}

	return Payload{
		EventType:      EventTypeReminderDue,
		ReminderID:     nctx.ReminderID,
		UserID:         nctx.UserID,
		Email:          recipient.Email,
		DisplayName:    recipient.DisplayName,
		TimeOfDay:      nctx.TimeOfDay,
		Timezone:       nctx.Timezone,
		LocalDate:      nctx.LocalDate,
		UnsubscribeURL: unsubscribeURL,
		RequestedAt:    nctx.RequestedAt.UTC(),
	}, nil
}

// MessageKey identifies one reminder's notification for one local date.
// Every transport stamps it on the outgoing message so consumers can drop
// a redelivery.
func MessageKey(payload Payload) string {
	return payload.ReminderID + ":" + payload.LocalDate
}

func newMessage(ctx context.Context, payload Payload) (*message.Message, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(MessageKey(payload), body)
	msg.Metadata.Set("event_type", payload.EventType)
	msg.Metadata.Set("reminder_id", payload.ReminderID)
	msg.Metadata.Set("user_id", payload.UserID)

	carrier := make(map[string]string)
	tracing.InjectToMap(ctx, carrier)

	for k, v := range carrier {
		msg.Metadata.Set(k, v)
	}

	msg.SetContext(ctx)

	return msg, nil
}
