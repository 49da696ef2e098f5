package notify_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KasumiMercury/primind-reminder-dispatch/internal/app"
	"github.com/KasumiMercury/primind-reminder-dispatch/internal/domain"
	"github.com/KasumiMercury/primind-reminder-dispatch/internal/infra/notify"
	"github.com/KasumiMercury/primind-reminder-dispatch/internal/infra/token"
)

const baseURL = "https://reminders.example.com/api/v1/reminders/unsubscribe"

func newTokens(t *testing.T) *token.UnsubscribeTokens {
	t.Helper()

	tokens, err := token.NewUnsubscribeTokens("notify-test-secret", time.Hour)
	require.NoError(t, err)

	return tokens
}

func sampleNotification(t *testing.T) (app.Recipient, app.NotificationContext) {
	t.Helper()

	return app.Recipient{Email: "ada@example.com", DisplayName: "Ada"},
		app.NotificationContext{
			ReminderID:  uuid.Must(uuid.NewV7()).String(),
			UserID:      uuid.Must(uuid.NewV7()).String(),
			TimeOfDay:   "09:00",
			Timezone:    "Asia/Tokyo",
			LocalDate:   "2025-06-10",
			RequestedAt: time.Date(2025, time.June, 10, 0, 0, 30, 0, time.UTC),
		}
}

func TestPublisherNotifierSuccess(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	messages, err := pubSub.Subscribe(context.Background(), notify.DefaultTopic)
	require.NoError(t, err)

	tokens := newTokens(t)
	notifier := notify.NewPublisherNotifier(pubSub, "", notify.NewLinks(tokens, baseURL))

	recipient, nctx := sampleNotification(t)

	require.NoError(t, notifier.Notify(context.Background(), recipient, nctx))

	var msg *message.Message
	select {
	case msg = <-messages:
		msg.Ack()
	case <-time.After(time.Second):
		t.Fatal("no message published")
	}

	assert.Equal(t, nctx.ReminderID+":2025-06-10", msg.UUID)
	assert.Equal(t, notify.EventTypeReminderDue, msg.Metadata.Get("event_type"))
	assert.Equal(t, nctx.ReminderID, msg.Metadata.Get("reminder_id"))
	assert.Equal(t, nctx.UserID, msg.Metadata.Get("user_id"))

	var payload notify.Payload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))

	assert.Equal(t, notify.EventTypeReminderDue, payload.EventType)
	assert.Equal(t, "ada@example.com", payload.Email)
	assert.Equal(t, "Ada", payload.DisplayName)
	assert.Equal(t, "09:00", payload.TimeOfDay)
	assert.Equal(t, "Asia/Tokyo", payload.Timezone)
	assert.Equal(t, "2025-06-10", payload.LocalDate)
	assert.True(t, nctx.RequestedAt.Equal(payload.RequestedAt))

	link, err := url.Parse(payload.UnsubscribeURL)
	require.NoError(t, err)
	assert.Equal(t, "reminders.example.com", link.Host)

	userID, err := tokens.Verify(link.Query().Get("token"))
	require.NoError(t, err)
	assert.Equal(t, nctx.UserID, userID.String())
}

func TestPublisherNotifierMessageKeySuccess(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 4}, watermill.NopLogger{})
	defer pubSub.Close()

	messages, err := pubSub.Subscribe(context.Background(), notify.DefaultTopic)
	require.NoError(t, err)

	notifier := notify.NewPublisherNotifier(pubSub, "", nil)
	recipient, nctx := sampleNotification(t)

	nextDay := nctx
	nextDay.LocalDate = "2025-06-11"

	// A retry of the same reminder and date must carry the same id.
	for _, n := range []app.NotificationContext{nctx, nctx, nextDay} {
		require.NoError(t, notifier.Notify(context.Background(), recipient, n))
	}

	var ids []string

	for range 3 {
		select {
		case msg := <-messages:
			msg.Ack()
			ids = append(ids, msg.UUID)
		case <-time.After(time.Second):
			t.Fatal("message not published")
		}
	}

	assert.Equal(t, []string{
		nctx.ReminderID + ":2025-06-10",
		nctx.ReminderID + ":2025-06-10",
		nctx.ReminderID + ":2025-06-11",
	}, ids)
}

type failingPublisher struct{}

func (failingPublisher) Publish(_ string, _ ...*message.Message) error {
	return errors.New("broker unavailable")
}

func (failingPublisher) Close() error {
	return nil
}

func TestPublisherNotifierError(t *testing.T) {
	recipient, nctx := sampleNotification(t)

	t.Run("publish failure", func(t *testing.T) {
		notifier := notify.NewPublisherNotifier(failingPublisher{}, "reminders", nil)

		err := notifier.Notify(context.Background(), recipient, nctx)

		assert.Error(t, err)
	})

	t.Run("bad user id for link", func(t *testing.T) {
		pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
		defer pubSub.Close()

		notifier := notify.NewPublisherNotifier(pubSub, "reminders", notify.NewLinks(newTokens(t), baseURL))

		bad := nctx
		bad.UserID = "nobody"

		err := notifier.Notify(context.Background(), recipient, bad)

		assert.ErrorIs(t, err, domain.ErrInvalidUserID)
	})
}

func TestLinksWithoutIssuer(t *testing.T) {
	var links *notify.Links

	got, err := links.UnsubscribeURL(uuid.Must(uuid.NewV7()).String())

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLinksKeepExistingQuery(t *testing.T) {
	links := notify.NewLinks(newTokens(t), baseURL+"?lang=en")

	got, err := links.UnsubscribeURL(uuid.Must(uuid.NewV7()).String())
	require.NoError(t, err)

	link, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "en", link.Query().Get("lang"))
	assert.NotEmpty(t, link.Query().Get("token"))
}

func TestLogNotifierSuccess(t *testing.T) {
	recipient, nctx := sampleNotification(t)
	notifier := notify.NewLogNotifier(notify.NewLinks(newTokens(t), baseURL))

	assert.NoError(t, notifier.Notify(context.Background(), recipient, nctx))
	assert.NoError(t, notifier.Close())
}
