package service

import "errors"

// Sentinel kinds for dataset lookups.
var (
	ErrUnknownSport = errors.New("unknown sport")
	ErrNotLoaded    = errors.New("dataset not loaded")
)
