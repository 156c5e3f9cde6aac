package chart

import "errors"

// Sentinel kinds for rendering errors.
var (
	ErrNoChart         = errors.New("no chart to render")
	ErrUnsupportedKind = errors.New("unsupported chart kind")
)
