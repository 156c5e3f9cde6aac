package dataset

import "errors"

// Sentinel kinds for table errors.
var (
	ErrUnknownColumn   = errors.New("unknown column")
	ErrDuplicateColumn = errors.New("duplicate column")
	ErrRowWidth        = errors.New("row width does not match header")
	ErrNotNumeric      = errors.New("value is not numeric")
)
