package timesession

import "errors"

var (
	ErrAlreadyClockedIn    = errors.New("worker already has an active session")
	ErrNotClockedIn        = errors.New("worker has no active session")
	ErrTimeSessionNotFound = errors.New("time session not found")
	ErrInvalidDateRange    = errors.New("end date must not be before start date")
)
