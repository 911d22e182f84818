package types

import (
	"regexp"
	"time"
)

// Ledger rows store dates as text so that both bare dates ("2024-03-01") and
// date-times ("2024-03-01T14:05:00Z") round-trip unchanged. Range filters
// compare only the first ten characters.

const dateKeyLen = 10

var datePrefixRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// DateKey returns the comparable YYYY-MM-DD prefix of a stored date string.
func DateKey(date string) string {
	if len(date) <= dateKeyLen {
		return date
	}
	return date[:dateKeyLen]
}

// ValidDate reports whether the string starts with a YYYY-MM-DD prefix.
func ValidDate(date string) bool {
	return datePrefixRe.MatchString(date)
}

// InDateRange reports whether a stored date falls in the inclusive range,
// comparing YYYY-MM-DD prefixes lexicographically.
func InDateRange(date, start, end string) bool {
	key := DateKey(date)
	return key >= DateKey(start) && key <= DateKey(end)
}

// Today returns the current date in storage format.
func Today() string {
	return time.Now().Format("2006-01-02")
}
