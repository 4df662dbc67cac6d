// Package dateutil provides date parsing and calendar-day arithmetic.
package dateutil

import (
	"errors"
	"strings"
	"time"
)

// Validation errors.
var (
	ErrInvalidDateFormat  = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidWeekday     = errors.New("unknown weekday name")
	ErrEndDateBeforeStart = errors.New("end date must be on or after start date")
)

// weekdayMap maps weekday names to time.Weekday values.
var weekdayMap = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseDate parses a date string in YYYY-MM-DD format.
// If the string is empty, returns today's date.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return TruncateToDay(time.Now()), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// ParseWeekday parses a weekday name ("monday" .. "sunday"), case-insensitive.
func ParseWeekday(s string) (time.Weekday, error) {
	if d, ok := weekdayMap[strings.ToLower(strings.TrimSpace(s))]; ok {
		return d, nil
	}
	return time.Sunday, ErrInvalidWeekday
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns t with time set to 23:59:59.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar date.
// Timestamps within the day are ignored.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// AlignToWeekday returns the most recent date on or before t whose weekday
// equals start. The result is truncated to midnight.
func AlignToWeekday(t time.Time, start time.Weekday) time.Time {
	t = TruncateToDay(t)
	back := (int(t.Weekday()) - int(start) + 7) % 7
	return t.AddDate(0, 0, -back)
}

// WeekdayShortName returns the three-letter name of the weekday.
func WeekdayShortName(d time.Weekday) string {
	return d.String()[:3]
}
