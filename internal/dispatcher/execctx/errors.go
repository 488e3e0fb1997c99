package execctx

import "errors"

// Context validation errors.
var (
	// ErrMissingWM indicates the window manager is required but not set.
	ErrMissingWM = errors.New("execution context: window manager is required")

	// ErrMissingSeat indicates the seat is required but not set.
	ErrMissingSeat = errors.New("execution context: seat is required")

	// ErrMissingSpawner indicates a spawner is required but not set.
	ErrMissingSpawner = errors.New("execution context: spawner is required")

	// ErrMissingLifecycle indicates a lifecycle controller is required but not set.
	ErrMissingLifecycle = errors.New("execution context: lifecycle is required")
)
