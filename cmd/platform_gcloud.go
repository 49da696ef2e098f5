//go:build gcloud

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

func initNotifier(_ context.Context, cfg *config.Config, links *notify.Links) (closableNotifier, error) {
	notifier, err := notify.NewGCloudNotifier(notify.GCloudConfig{
		ProjectID: cfg.Notify.GCloudProjectID,
		Topic:     cfg.Notify.Topic,
	}, links)
	if err != nil {
		return nil, err
	}

	slog.Info("Google Cloud Pub/Sub notifier initialized",
		"project_id", cfg.Notify.GCloudProjectID,
		"topic", cfg.Notify.Topic,
	)

	return notifier, nil
}

func initObservability(ctx context.Context, cfg *config.Config) (*observability.Resources, error) {
	env := logging.EnvProd
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if projectID == "" {
		projectID = cfg.Notify.GCloudProjectID
	}

	return observability.Init(ctx, observabilityConfig(cfg, env, projectID))
}
