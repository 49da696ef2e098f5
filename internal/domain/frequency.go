package domain

import "fmt"

type Frequency string

const (
	FrequencyDaily Frequency = "daily"
)

// NewFrequency maps an empty value to FrequencyDaily.
func NewFrequency(f string) (Frequency, error) {
	switch f {
	case "", string(FrequencyDaily):
		return FrequencyDaily, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidFrequency, f)
	}
}
