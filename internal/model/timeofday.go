package model

import (
	"fmt"
	"strings"
	"time"
)

// TimeOfDay is a clock time expressed as minutes from midnight.  It is the
// in-memory form of the "HH:MM" strings stored for court opening hours,
// tier boundaries and reservation slot times.  All parsing and formatting
// happens here so that malformed values are rejected in one place instead
// of being null-checked throughout the business logic.
type TimeOfDay int

// MinutesPerDay bounds a valid TimeOfDay.  24:00 itself is not a valid
// value; closing times use 23:00 plus a one-hour slot at most.
const MinutesPerDay = 24 * 60

// ParseTimeOfDay converts an "HH:MM" string into a TimeOfDay.  It rejects
// anything that is not a zero-padded 24h clock value.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

// Valid reports whether the value lies within a single day.
func (t TimeOfDay) Valid() bool { return t >= 0 && t < MinutesPerDay }

// Hour returns the hour component (0-23).
func (t TimeOfDay) Hour() int { return int(t) / 60 }

// Minute returns the minute component (0-59).
func (t TimeOfDay) Minute() int { return int(t) % 60 }

// String renders the canonical "HH:MM" wire form.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// On combines a calendar date in "YYYY-MM-DD" form with this time of day
// and returns the resulting instant in UTC.
func (t TimeOfDay) On(date string) (time.Time, error) {
	d, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	return d.Add(time.Duration(t) * time.Minute), nil
}

// ParseDate parses a "YYYY-MM-DD" calendar date and returns midnight UTC of
// that day.  It is the single entry point for date validation.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return d, nil
}

// FormatDate renders a time as its "YYYY-MM-DD" calendar date in UTC.
func FormatDate(t time.Time) string { return t.UTC().Format("2006-01-02") }
