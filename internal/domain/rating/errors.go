package rating

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrUnknownSurface marks a configuration error: a surface outside the
	// recognized set reached the engine. Defaulting it would silently
	// corrupt surface-specific tracking, so the batch halts instead.
	ErrUnknownSurface = errors.New("unknown surface")
)
