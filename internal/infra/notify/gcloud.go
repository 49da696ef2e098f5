//go:build gcloud

package notify

import (
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-googlecloud/pkg/googlecloud"
)

type GCloudConfig struct {
	ProjectID string
	Topic     string
}

func NewGCloudNotifier(cfg GCloudConfig, links *Links) (*PublisherNotifier, error) {
	logger := watermill.NewSlogLogger(slog.Default())

	publisher, err := googlecloud.NewPublisher(
		googlecloud.PublisherConfig{
			ProjectID: cfg.ProjectID,
		},
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Cloud publisher: %w", err)
	}

	return NewPublisherNotifier(publisher, cfg.Topic, links), nil
}
