//go:build !gcloud

package metrics

import "context"

// NewProvider keeps instruments live without exporting them outside GCP.
func NewProvider(_ context.Context, cfg Config) (*Provider, error) {
	return newNoopProvider(cfg), nil
}
