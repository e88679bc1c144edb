package repository

import "errors"

// Sentinel kinds for rating store errors.
var (
	ErrNotFound         = errors.New("player not found")
	ErrInvalidLimit     = errors.New("invalid rankings limit")
	ErrUnknownDimension = errors.New("unknown rating dimension")
)
