package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest      = errors.New("bad request")
	ErrInvalidUserID   = errors.New("user_id must be a non-negative integer")
	ErrInvalidTrackID  = errors.New("track_id must be a non-negative integer")
	ErrInvalidCount    = errors.New("n must be an integer in range")
	ErrMissingUserID   = errors.New("missing user_id")
	ErrNegativeUserID  = errors.New("user_id must not be negative")
	ErrNegativeTrackID = errors.New("track_ids must not contain negative ids")
)
