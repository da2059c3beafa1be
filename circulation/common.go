package circulation

import (
	"time"
)

// Instead of implementing full value objects, I'm using some alias types and helper methods here ...

// OccurredAtTS represents when a lifecycle operation happened.
type OccurredAtTS = time.Time

// ToOccurredAt converts a time to OccurredAtTS with UTC normalization and microsecond precision.
func ToOccurredAt(t time.Time) OccurredAtTS {
	return t.UTC().Truncate(time.Microsecond)
}

// ToDate truncates a timestamp to its UTC calendar date (midnight).
// Due dates and overdue day counts are computed on dates, not instants.
func ToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
