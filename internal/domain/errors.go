package domain

import "errors"

var (
	// ErrEmptyFeed means the payload had no non-blank lines.
	ErrEmptyFeed = errors.New("feed is empty")
	// ErrNotFound is returned when no catalog has been loaded yet.
	ErrNotFound = errors.New("not found")
	// ErrFeedUnavailable wraps failures of the external feed fetch.
	ErrFeedUnavailable = errors.New("feed unavailable")
)
