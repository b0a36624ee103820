package utils

import (
	"time"
)

// TruncateToDay strips the time-of-day component, returning midnight UTC of the
// same calendar date. Rental billing works in date-only terms.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// RentalDays returns the number of chargeable days between pickup and return.
// Time-of-day is ignored and the result is floored at 1, so same-day (or
// inverted) ranges still count as a one-day rental.
func RentalDays(start, end time.Time) int {
	days := DaysBetween(start, end)
	if days < 1 {
		return 1
	}
	return days
}

// DaysBetween returns whole calendar days from start to end, negative if end
// precedes start. Both arguments are truncated to their calendar date first.
func DaysBetween(start, end time.Time) int {
	return int(TruncateToDay(end).Sub(TruncateToDay(start)).Hours() / 24)
}
