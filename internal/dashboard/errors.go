package dashboard

import "errors"

var (
	// ErrNoAdvisories rejects an empty advisory message sequence.
	ErrNoAdvisories = errors.New("dashboard: advisory messages required")
	// ErrInvalidInterval rejects a non-positive rotation interval or reveal delay.
	ErrInvalidInterval = errors.New("dashboard: timer interval must be positive")
	// ErrUnknownView is returned for a view selection outside {user, company}.
	ErrUnknownView = errors.New("dashboard: unknown view")
	// ErrScoreOutOfRange rejects reveal values outside 0..100.
	ErrScoreOutOfRange = errors.New("dashboard: score must be within 0..100")
	// ErrClosed is returned when a torn-down composer receives a selection.
	ErrClosed = errors.New("dashboard: composer closed")
)
