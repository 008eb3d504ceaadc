package engine

import "github.com/pkg/errors"

// Domain errors for hosting effects.
var (
	// ErrInvalidConfig indicates a run configuration that cannot be driven.
	ErrInvalidConfig = errors.New("engine: invalid run configuration")

	// ErrUnknownEffect indicates an effect name with no registered constructor.
	ErrUnknownEffect = errors.New("engine: unknown effect")

	// ErrUnknownBackend indicates a host backend name that is not supported.
	ErrUnknownBackend = errors.New("engine: unknown backend")

	// ErrNoSurface indicates a host was started without a draw surface.
	ErrNoSurface = errors.New("engine: no surface")
)
