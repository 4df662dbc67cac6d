package schedule

import (
	"errors"
	"testing"
)

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		name string
		mins int
		opts FormatOpts
		want string
	}{
		{"24h morning", 540, FormatOpts{Use24HourTime: true}, "9:00"},
		{"24h afternoon", 1020, FormatOpts{Use24HourTime: true}, "17:00"},
		{"24h with minutes", 585, FormatOpts{Use24HourTime: true}, "9:45"},
		{"24h midnight", 0, FormatOpts{Use24HourTime: true}, "0:00"},
		{"24h whole hour omitted", 540, FormatOpts{Use24HourTime: true, OmitMinutesForWholeHours: true}, "9"},
		{"24h non-whole hour keeps minutes", 570, FormatOpts{Use24HourTime: true, OmitMinutesForWholeHours: true}, "9:30"},
		{"12h morning", 540, FormatOpts{}, "9:00am"},
		{"12h afternoon", 1020, FormatOpts{}, "5:00pm"},
		{"12h midnight", 0, FormatOpts{}, "12:00am"},
		{"12h noon", 720, FormatOpts{}, "12:00pm"},
		{"12h suffix suppressed", 540, FormatOpts{OmitMeridianSuffix: true}, "9:00"},
		{"12h whole hour omitted", 540, FormatOpts{OmitMinutesForWholeHours: true}, "9am"},
		{"12h whole hour omitted and no suffix", 540, FormatOpts{OmitMinutesForWholeHours: true, OmitMeridianSuffix: true}, "9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatMinutes(tt.mins, tt.opts); got != tt.want {
				t.Errorf("FormatMinutes(%d, %+v) = %q, want %q", tt.mins, tt.opts, got, tt.want)
			}
		})
	}
}

func TestParseClock(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		mins, err := ParseClock("09:45")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if mins != 585 {
			t.Errorf("expected 585, got %d", mins)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		for _, s := range []string{"", "9:45", "0945", "25:00", "09:61"} {
			if _, err := ParseClock(s); !errors.Is(err, ErrInvalidClock) {
				t.Errorf("ParseClock(%q): expected ErrInvalidClock, got %v", s, err)
			}
		}
	})
}
