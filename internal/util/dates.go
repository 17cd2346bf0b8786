package util

import "time"

// MonthLabel formats a date as its chart grouping label, e.g. "January 2025".
func MonthLabel(t time.Time) string {
	return t.Format("January 2006")
}

// DateOnly normalizes a timestamp to a pure calendar date at UTC midnight.
// All stored dates go through this so month membership never depends on
// timezone or time of day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ValidMonth reports whether m is a calendar month number.
func ValidMonth(m int) bool {
	return m >= 1 && m <= 12
}
