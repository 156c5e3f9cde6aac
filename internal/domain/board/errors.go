package board

import "errors"

// Sentinel kinds for lookups.
var (
	ErrUnknownBoard = errors.New("unknown board")
	ErrUnknownChart = errors.New("unknown chart")
)
