package util

import "time"

// DateLayout is the calendar-day format used by every dated log.
const DateLayout = "2006-01-02"

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseDate reads a YYYY-MM-DD string, also accepting a full RFC3339 timestamp
// whose calendar day is used.
func ParseDate(value string) (time.Time, bool) {
	if len(value) >= len(DateLayout) {
		if ts, err := time.Parse(DateLayout, value[:len(DateLayout)]); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// ParseReference reads a YYYY-MM-DD date or an RFC3339 timestamp. A
// timestamp keeps the wall clock of its own offset, relabelled as UTC, so
// the calendar day never shifts.
func ParseReference(value string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return time.Date(ts.Year(), ts.Month(), ts.Day(), ts.Hour(), ts.Minute(), ts.Second(), ts.Nanosecond(), time.UTC), nil
	}
	return time.Parse(DateLayout, value)
}

// DayKey normalizes a date string to its YYYY-MM-DD prefix.
func DayKey(value string) string {
	if len(value) >= len(DateLayout) {
		return value[:len(DateLayout)]
	}
	return value
}

// DaysBetween returns the whole-day distance b-a between two calendar dates.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
