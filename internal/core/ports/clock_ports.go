package ports

import "time"

// Clock supplies the current calendar date and wall-clock time.
// Injectable so vote cutoff rules can be tested with a frozen time.
type Clock interface {
	// Today returns the current calendar date at midnight.
	Today() time.Time
	// TimeNow returns the current instant. Only its time-of-day part is
	// significant for the vote cutoff.
	TimeNow() time.Time
}
