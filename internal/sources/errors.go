package sources

import "errors"

// Sentinel kinds for decoding errors.
var (
	ErrMalformedPage = errors.New("malformed page")
	ErrEmptyPage     = errors.New("page has no records")
	ErrUnknownSport  = errors.New("unknown sport")
)
