package utils

import (
	"strings"
	"time"
)

const (
	layoutDate       = "2006-01-02"
	layoutDateTime   = "2006-01-02 15:04:05"
	layoutDateMinute = "2006-01-02 15:04"
)

// ParseDate parses YYYY-MM-DD in the given location.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), loc)
}

// ParseDateTime parses "YYYY-MM-DD HH:MM" or "YYYY-MM-DD HH:MM:SS"
// in the given location.
func ParseDateTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(layoutDateTime, s, loc); err == nil {
		return t, nil
	}
	return time.ParseInLocation(layoutDateMinute, s, loc)
}

// FormatDate formats time to YYYY-MM-DD in its own location.
func FormatDate(t time.Time) string {
	return t.Format(layoutDate)
}

// FormatDateTime formats time to "YYYY-MM-DD HH:MM:SS" in its own location.
func FormatDateTime(t time.Time) string {
	return t.Format(layoutDateTime)
}

// TruncateToMinute drops sub-minute precision in the given location.
// Reservation timestamps are stored and compared at minute granularity only.
func TruncateToMinute(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, loc)
}

// DayBounds returns midnight-to-midnight of t's calendar day in loc.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	t = t.In(loc)
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
