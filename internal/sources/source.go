// Package sources describes the upstream stats APIs ingestion reads from:
// which pages to request and how to turn a page body into a table.
package sources

import (
	"github.com/okian/statsboard/internal/domain/dataset"
)

// Sport keys shared by ingestion, storage and the dashboard.
const (
	SportMLB = "mlb"
	SportNBA = "nba"
	SportNFL = "nfl"
)

// PageRequest is one parameter combination of an ingestion run.
type PageRequest struct {
	URL string
	// Label identifies the page in logs, e.g. "year=2013 offset=50".
	Label string
	// Params holds the varying parameters of this page.
	Params map[string]string
}

// Source is the pluggable description of one sport's upstream.
type Source interface {
	// Sport returns the sport key, e.g. "mlb".
	Sport() string
	// DisplayName returns a human label, e.g. "MLB".
	DisplayName() string
	// Headers returns extra request headers the upstream expects.
	Headers() map[string]string
	// Pages enumerates every request of a run, in request order. The set is
	// static and never depends on response data.
	Pages() []PageRequest
	// Decode turns a 200 body into rows. A body without the expected
	// envelope is an ErrMalformedPage error.
	Decode(body []byte, req PageRequest) (*dataset.Table, error)
}
