package upstream

import (
	"errors"
	"fmt"
)

// Sentinel kinds for upstream errors.
var (
	ErrUnavailable  = errors.New("upstream unavailable")
	ErrBodyTooLarge = errors.New("upstream body too large")
)

// StatusError is returned for any non-200 response. It matches
// ErrUnavailable under errors.Is.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream status %d for %s", e.StatusCode, e.URL)
}

// Is reports ErrUnavailable as the kind of every status error.
func (e *StatusError) Is(target error) bool {
	return target == ErrUnavailable
}
