//go:build gcloud

package config

import "errors"

// Validate ignores NOTIFY_TRANSPORT: the gcloud build always publishes to
// Pub/Sub.
func (c *NotifyConfig) Validate() error {
	if c.GCloudProjectID == "" {
		return errors.New("GCLOUD_PROJECT_ID is required for reminder publishing")
	}

	return nil
}
