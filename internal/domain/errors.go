package domain

import "errors"

var (
	// ErrSearchUnavailable signals that the full-text index could not answer.
	ErrSearchUnavailable = errors.New("search unavailable")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidConfig signals an unusable runtime configuration value.
	ErrInvalidConfig = errors.New("invalid config")
)
