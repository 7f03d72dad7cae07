package dataset

import "errors"

// Sentinel kinds for dataset errors.
var (
	ErrSourceConfig  = errors.New("invalid dataset source configuration")
	ErrMissingColumn = errors.New("missing required column")
	ErrBadRow        = errors.New("malformed dataset row")
)
