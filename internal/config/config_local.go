//go:build !gcloud

package config

import "fmt"

func (c *NotifyConfig) Validate() error {
	switch c.Transport {
	case TransportNATS:
		if c.NatsURL == "" {
			return fmt.Errorf("NATS_URL is required for transport %q", c.Transport)
		}
	case TransportAMQP:
		if c.AMQPURL == "" {
			return fmt.Errorf("AMQP_URL is required for transport %q", c.Transport)
		}
	case TransportLog:
	default:
		return fmt.Errorf("invalid NOTIFY_TRANSPORT: %q", c.Transport)
	}

	return nil
}
