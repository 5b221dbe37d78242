package model

import (
	"fmt"
	"time"
)

// MonthKeyLayout is the canonical month key format, e.g. "2026-08".
const MonthKeyLayout = "2006-01"

// MonthKey formats a time as a canonical month key.
func MonthKey(t time.Time) string {
	return t.Format(MonthKeyLayout)
}

// ParseMonthKey parses a YYYY-MM month key.
func ParseMonthKey(key string) (time.Time, error) {
	t, err := time.Parse(MonthKeyLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month key %q: %w", key, err)
	}
	return t, nil
}

// MonthBounds returns the first and last day of the month named by key.
// Both bounds are inclusive and date-only (midnight UTC).
func MonthBounds(key string) (start, end time.Time, err error) {
	start, err = ParseMonthKey(key)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end = start.AddDate(0, 1, -1)
	return start, end, nil
}

// NextMonthKey returns the key of the month following key.
func NextMonthKey(key string) (string, error) {
	t, err := ParseMonthKey(key)
	if err != nil {
		return "", err
	}
	return MonthKey(t.AddDate(0, 1, 0)), nil
}

// DateOnly truncates a time to its calendar day, discarding the time of
// day and normalizing to UTC so comparisons are date-only.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
