package engine

import "errors"

var (
	// ErrNotInitialized is returned when an engine runs without a
	// network attached.
	ErrNotInitialized = errors.New("engine not initialized: no network attached")

	// ErrInvalidParameter is returned for unusable configuration values.
	ErrInvalidParameter = errors.New("invalid parameter")
)
