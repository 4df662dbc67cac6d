package schedule

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidClock is returned when a clock string is not in HH:MM format.
var ErrInvalidClock = errors.New("time must be in HH:MM format")

// FormatOpts controls time-of-day formatting.
type FormatOpts struct {
	Use24HourTime            bool
	OmitMinutesForWholeHours bool
	OmitMeridianSuffix       bool
}

// FormatMinutes renders minutes-from-midnight as a display time, e.g.
// 540 -> "9:00" (24-hour) or "9:00am". Non-24-hour mode appends an am/pm
// suffix unless suppressed.
func FormatMinutes(mins int, opts FormatOpts) string {
	hour := mins / 60
	minute := mins % 60

	if opts.Use24HourTime {
		if opts.OmitMinutesForWholeHours && minute == 0 {
			return fmt.Sprintf("%d", hour)
		}
		return fmt.Sprintf("%d:%02d", hour, minute)
	}

	suffix := "am"
	if hour%24 >= 12 {
		suffix = "pm"
	}
	if opts.OmitMeridianSuffix {
		suffix = ""
	}
	h12 := hour % 12
	if h12 == 0 {
		h12 = 12
	}
	if opts.OmitMinutesForWholeHours && minute == 0 {
		return fmt.Sprintf("%d%s", h12, suffix)
	}
	return fmt.Sprintf("%d:%02d%s", h12, minute, suffix)
}

// ParseClock converts an "HH:MM" string to minutes from midnight.
func ParseClock(s string) (int, error) {
	if len(s) != 5 {
		return 0, ErrInvalidClock
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, ErrInvalidClock
	}
	return t.Hour()*60 + t.Minute(), nil
}
