package testutil

import (
	"context"
	"testing"

	tcrabbitmq "github.com/testcontainers/testcontainers-go/modules/rabbitmq"
)

type TestRabbitMQ struct {
	Container *tcrabbitmq.RabbitMQContainer
	URL       string
}

func SetupTestRabbitMQ(t *testing.T) *TestRabbitMQ {
	t.Helper()

	ctx := context.Background()

	container, err := tcrabbitmq.Run(ctx, "rabbitmq:3.13-management-alpine")
	if err != nil {
		t.Fatalf("failed to start rabbitmq container: %v", err)
	}

	url, err := container.AmqpURL(ctx)
	if err != nil {
		t.Fatalf("failed to get amqp url: %v", err)
	}

	return &TestRabbitMQ{
		Container: container,
		URL:       url,
	}
}

func (tr *TestRabbitMQ) Teardown(t *testing.T) {
	t.Helper()

	if err := tr.Container.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}
