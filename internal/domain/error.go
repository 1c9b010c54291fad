package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound           = errors.New("entity not found")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrProviderFailure    = errors.New("provider call failed")
	ErrStageTimeout       = errors.New("stage timed out")
	ErrMissingCredentials = errors.New("provider credentials not configured")
	ErrQueueFull          = errors.New("run queue full")
)
