package feed

import "errors"

// Sentinel kinds for match feed errors.
var (
	ErrMissingInput  = errors.New("match table missing")
	ErrMissingColumn = errors.New("required column missing")
	ErrBadRecord     = errors.New("bad match record")
)
