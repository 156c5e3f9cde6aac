package repository

import "errors"

// Sentinel kinds for snapshot errors.
var (
	ErrNotFound     = errors.New("snapshot not found")
	ErrUnknownSport = errors.New("no snapshot path configured for sport")
	ErrMalformedCSV = errors.New("malformed csv snapshot")
)
