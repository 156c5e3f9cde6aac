package ingest

import "errors"

// Sentinel kinds for run errors.
var (
	ErrNilSource = errors.New("nil source")
	ErrPersist   = errors.New("persist snapshot")
)
