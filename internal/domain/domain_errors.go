package domain

import "errors"

var (
	ErrReminderNotFound = errors.New("reminder not found")

	ErrInvalidReminderID = errors.New("invalid reminder ID")
	ErrInvalidUserID     = errors.New("invalid user ID: must be a valid UUID")

	ErrInvalidTimeOfDay = errors.New("invalid time of day")
	ErrInvalidTimezone  = errors.New("invalid timezone")
	ErrInvalidFrequency = errors.New("invalid frequency")

	ErrInvalidContact = errors.New("invalid contact")
)
