// Copyright (c) 2026 Fitlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package date parses the calendar values clients send for workout dates and
goal deadlines.

Two layouts are accepted:
  - Calendar date: "2026-03-14" (midnight UTC).
  - RFC 3339 timestamp: "2026-03-14T07:30:00+02:00" (converted to UTC).
*/
package date

import (
	"errors"
	"strings"
	"time"
)

// LayoutDay is the calendar-date layout.
const LayoutDay = time.DateOnly

// ErrFormat is returned when a value matches neither accepted layout.
var ErrFormat = errors.New("date: expected YYYY-MM-DD or RFC 3339")

// Parse converts s into a UTC instant.
func Parse(s string) (time.Time, error) {
	value := strings.TrimSpace(s)
	if value == "" {
		return time.Time{}, ErrFormat
	}

	if parsed, err := time.Parse(LayoutDay, value); err == nil {
		return parsed.UTC(), nil
	}

	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, ErrFormat
	}
	return parsed.UTC(), nil
}

// Day truncates t to midnight of its UTC calendar day.
func Day(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}
