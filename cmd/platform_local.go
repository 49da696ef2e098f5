//go:build !gcloud

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/KasumiMercury/primind-reminder-dispatch/internal/config"
	"github.com/KasumiMercury/primind-reminder-dispatch/internal/infra/notify"
	"github.com/KasumiMercury/primind-reminder-dispatch/internal/observability"
	"github.com/KasumiMercury/primind-reminder-dispatch/internal/observability/logging"
)

func initNotifier(ctx context.Context, cfg *config.Config, links *notify.Links) (closableNotifier, error) {
	switch cfg.Notify.Transport {
	case config.TransportAMQP:
		notifier, err := notify.NewAMQPNotifier(notify.AMQPConfig{
			URL:   cfg.Notify.AMQPURL,
			Queue: cfg.Notify.Topic,
		}, links)
		if err != nil {
			return nil, err
		}

		slog.Info("AMQP notifier initialized", "queue", cfg.Notify.Topic)

		return notifier, nil
	case config.TransportLog:
		slog.Warn("log notifier selected, reminders are logged and not delivered")

		return notify.NewLogNotifier(links), nil
	default:
		notifier, err := notify.NewNATSNotifier(ctx, notify.NATSConfig{
			URL:   cfg.Notify.NatsURL,
			Topic: cfg.Notify.Topic,
		}, links)
		if err != nil {
			return nil, err
		}

		slog.Info("NATS notifier initialized", "url", cfg.Notify.NatsURL, "topic", cfg.Notify.Topic)

		return notifier, nil
	}
}

func initObservability(ctx context.Context, cfg *config.Config) (*observability.Resources, error) {
	env := logging.EnvDev
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	return observability.Init(ctx, observabilityConfig(cfg, env, ""))
}
