package app_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KasumiMercury/primind-reminder-dispatch/internal/app"
)

func TestNewValidationErrorSuccess(t *testing.T) {
	tests := []struct {
		name            string
		field           string
		message         string
		expectedError   string
		expectedField   string
		expectedMessage string
	}{
		{
			name:            "user_id validation error",
			field:           "user_id",
			message:         "must be a valid UUID",
			expectedError:   "validation error: user_id - must be a valid UUID",
			expectedField:   "user_id",
			expectedMessage: "must be a valid UUID",
		},
		{
			name:            "time_of_day validation error",
			field:           "time_of_day",
			message:         "hour out of range",
			expectedError:   "validation error: time_of_day - hour out of range",
			expectedField:   "time_of_day",
			expectedMessage: "hour out of range",
		},
		{
			name:            "timezone validation error",
			field:           "timezone",
			message:         "unknown zone Mars/Olympus",
			expectedError:   "validation error: timezone - unknown zone Mars/Olympus",
			expectedField:   "timezone",
			expectedMessage: "unknown zone Mars/Olympus",
		},
		{
			name:            "frequency validation error",
			field:           "frequency",
			message:         "only daily is supported",
			expectedError:   "validation error: frequency - only daily is supported",
			expectedField:   "frequency",
			expectedMessage: "only daily is supported",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := app.NewValidationError(tt.field, tt.message)

			assert.Equal(t, tt.expectedField, err.Field)
			assert.Equal(t, tt.expectedMessage, err.Message)
			assert.Equal(t, tt.expectedError, err.Error())
		})
	}
}

func TestIsValidationErrorSuccess(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "is ValidationError",
			err:      app.NewValidationError("field", "message"),
			expected: true,
		},
		{
			name:     "wrapped ValidationError",
			err:      fmt.Errorf("wrapped: %w", app.NewValidationError("field", "message")),
			expected: true,
		},
		{
			name:     "double wrapped ValidationError",
			err:      fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", app.NewValidationError("field", "message"))),
			expected: true,
		},
		{
			name:     "not ValidationError - generic error",
			err:      errors.New("generic error"),
			expected: false,
		},
		{
			name:     "not ValidationError - nil",
			err:      nil,
			expected: false,
		},
		{
			name:     "not ValidationError - wrapped generic error",
			err:      fmt.Errorf("wrapped: %w", errors.New("generic error")),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := app.IsValidationError(tt.err)

			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestValidationErrorTypeAssertionSuccess(t *testing.T) {
	tests := []struct {
		name string
	}{
		{
			name: "can be type asserted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := app.NewValidationError("field", "message")

			var validationErr *app.ValidationError
			assert.True(t, errors.As(err, &validationErr))
			assert.Equal(t, "field", validationErr.Field)
			assert.Equal(t, "message", validationErr.Message)
		})
	}
}

func TestSentinelErrorsSuccess(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		expected bool
	}{
		{
			name:     "validation error matches ErrValidation",
			err:      app.NewValidationError("timezone", "unknown zone"),
			sentinel: app.ErrValidation,
			expected: true,
		},
		{
			name:     "wrapped validation error matches ErrValidation",
			err:      fmt.Errorf("upsert: %w", app.NewValidationError("time_of_day", "bad")),
			sentinel: app.ErrValidation,
			expected: true,
		},
		{
			name:     "store failure keeps its sentinel",
			err:      fmt.Errorf("%w: %v", app.ErrStoreUnavailable, errors.New("connection refused")),
			sentinel: app.ErrStoreUnavailable,
			expected: true,
		},
		{
			name:     "not found is not a validation error",
			err:      app.ErrNotFound,
			sentinel: app.ErrValidation,
			expected: false,
		},
		{
			name:     "token error is distinct from internal error",
			err:      app.ErrInvalidUnsubscribeToken,
			sentinel: app.ErrInternalError,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errors.Is(tt.err, tt.sentinel))
		})
	}
}
