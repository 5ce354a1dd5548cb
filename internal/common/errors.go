package common

import "errors"

// Business logic errors
var (
	// Lookup errors
	ErrContentNotFound = errors.New("content not found")
	ErrVersionNotFound = errors.New("content version not found")

	// Validation errors
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrInvalidState        = errors.New("operation not applicable to current status")
	ErrInvalidScheduleTime = errors.New("schedule time must be in the future")

	// Concurrency errors
	ErrVersionConflict = errors.New("content was modified concurrently")

	// Auth errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")

	// ErrServiceFailure wraps unexpected internal failures so callers can
	// distinguish them from validation errors.
	ErrServiceFailure = errors.New("service failure")
)
