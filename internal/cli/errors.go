package cli

import "errors"

var (
	// ErrNoDataPath is returned when a sport has neither a configured path
	// nor an --out override.
	ErrNoDataPath = errors.New("no data path configured")
	// ErrOutput is returned for an unsupported --output format.
	ErrOutput = errors.New("unsupported output format")
	// ErrSchedule is returned for an unparsable --cron expression.
	ErrSchedule = errors.New("invalid schedule")
)
