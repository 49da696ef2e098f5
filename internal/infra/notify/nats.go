//go:build !gcloud

package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	nc "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const streamName = "REMINDER_EVENTS"

type NATSConfig struct {
	URL   string
	Topic string
}

// NewNATSNotifier ensures the JetStream stream for the topic exists and
// returns a notifier publishing to it.
func NewNATSNotifier(ctx context.Context, cfg NATSConfig, links *Links) (*PublisherNotifier, error) {
	topic := cfg.Topic
	if topic == "" {
		topic = DefaultTopic
	}

	if err := ensureStream(ctx, cfg.URL, topic); err != nil {
		return nil, err
	}

	logger := watermill.NewSlogLogger(slog.Default())

	publisher, err := nats.NewPublisher(
		nats.PublisherConfig{
			URL:         cfg.URL,
			NatsOptions: []nc.Option{nc.Timeout(10 * time.Second)},
			JetStream: nats.JetStreamConfig{
				Disabled:      false,
				AutoProvision: false,
				// Nats-Msg-Id carries the message key, so the stream drops
				// a republished notification inside its duplicate window.
				TrackMsgId: true,
			},
			Marshaler: &nats.NATSMarshaler{},
		},
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create NATS publisher: %w", err)
	}

	return NewPublisherNotifier(publisher, topic, links), nil
}

func ensureStream(ctx context.Context, url, topic string) error {
	conn, err := nc.Connect(url, nc.Timeout(10*time.Second))
	if err != nil {
		return fmt.Errorf("failed to connect to NATS: %w", err)
	}
	defer conn.Close()

	js, err := jetstream.New(conn)
	if err != nil {
		return fmt.Errorf("failed to create JetStream context: %w", err)
	}

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:        streamName,
		Description: "Stream for reminder notification events",
		Subjects:    []string{topic},
		Retention:   jetstream.WorkQueuePolicy,
		MaxAge:      24 * time.Hour,
		MaxBytes:    100 * 1024 * 1024, // 100MB
		Storage:     jetstream.FileStorage,
		Replicas:    1,
	})
	if err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}

	slog.Info("NATS JetStream stream configured",
		slog.String("stream", streamName),
		slog.String("subject", topic),
	)

	return nil
}
