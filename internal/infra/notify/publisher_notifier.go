package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/KasumiMercury/primind-reminder-dispatch/internal/app"
)

// PublisherNotifier publishes one reminder.due event per notification on a
// watermill publisher. The email worker consuming the topic owns delivery.
type PublisherNotifier struct {
	publisher message.Publisher
	topic     string
	links     *Links
}

func NewPublisherNotifier(publisher message.Publisher, topic string, links *Links) *PublisherNotifier {
	if topic == "" {
		topic = DefaultTopic
	}

	return &PublisherNotifier{
		publisher: publisher,
		topic:     topic,
		links:     links,
	}
}

func (n *PublisherNotifier) Notify(ctx context.Context, recipient app.Recipient, nctx app.NotificationContext) error {
	payload, err := buildPayload(recipient, nctx, n.links)
	if err != nil {
		return err
	}

	msg, err := newMessage(ctx, payload)
	if err != nil {
		return err
	}

	if err := n.publisher.Publish(n.topic, msg); err != nil {
		slog.ErrorContext(ctx, "failed to publish reminder due event",
			slog.String("reminder_id", nctx.ReminderID),
			slog.String("error", err.Error()),
		)

		return fmt.Errorf("failed to publish event: %w", err)
	}

	slog.DebugContext(ctx, "published reminder due event",
		slog.String("reminder_id", nctx.ReminderID),
		slog.String("message_id", msg.UUID),
	)

	return nil
}

func (n *PublisherNotifier) Close() error {
	return n.publisher.Close()
}
