package schedule

import (
	"errors"
	"testing"
	"time"
)

// fixedNow returns a Now function pinned to the given date.
func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestWindow(t *testing.T, store *Store) *Window {
	t.Helper()
	cfg := DefaultWindowConfig()
	cfg.Now = fixedNow(time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)) // a Wednesday
	w, err := NewWindow(store, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return w
}

func TestNewWindow_RejectsGranularity(t *testing.T) {
	cfg := DefaultWindowConfig()
	cfg.GranularityMins = 15
	_, err := NewWindow(NewStore(), cfg)
	if !errors.Is(err, ErrUnsupportedGranularity) {
		t.Errorf("expected ErrUnsupportedGranularity, got %v", err)
	}
}

func TestWindow_SetGranularityMins(t *testing.T) {
	w := newTestWindow(t, NewStore())
	if err := w.SetGranularityMins(60); !errors.Is(err, ErrUnsupportedGranularity) {
		t.Errorf("expected ErrUnsupportedGranularity, got %v", err)
	}
	if err := w.SetGranularityMins(DefaultGranularityMins); err != nil {
		t.Errorf("default granularity must be accepted, got %v", err)
	}
}

func TestWindow_EffectiveDates(t *testing.T) {
	t.Run("empty store falls back to today", func(t *testing.T) {
		w := newTestWindow(t, NewStore())
		today := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
		if !w.EffectiveStartDate().Equal(today) {
			t.Errorf("expected today %v, got %v", today, w.EffectiveStartDate())
		}
		if !w.EffectiveEndDate().Equal(today) {
			t.Errorf("expected today %v, got %v", today, w.EffectiveEndDate())
		}
	})

	t.Run("derived from bucket range", func(t *testing.T) {
		s := NewStore()
		first := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)
		last := time.Date(2025, 1, 24, 0, 0, 0, 0, time.UTC)
		_, _ = s.AddItem(ItemSpec{Day: last, StartMins: 540, DurationMins: 30})
		_, _ = s.AddItem(ItemSpec{Day: first, StartMins: 540, DurationMins: 30})

		w := newTestWindow(t, s)
		if !w.EffectiveStartDate().Equal(first) {
			t.Errorf("expected %v, got %v", first, w.EffectiveStartDate())
		}
		if !w.EffectiveEndDate().Equal(last) {
			t.Errorf("expected %v, got %v", last, w.EffectiveEndDate())
		}
	})

	t.Run("explicit pin wins", func(t *testing.T) {
		w := newTestWindow(t, NewStore())
		pinned := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)
		w.SetEffectiveStartDate(pinned)
		if !w.EffectiveStartDate().Equal(pinned) {
			t.Errorf("expected pinned %v, got %v", pinned, w.EffectiveStartDate())
		}
	})
}

func TestWindow_ViewStartAlignment(t *testing.T) {
	s := NewStore()
	// Wednesday Jan 15 2025; Monday of that week is Jan 13.
	_, _ = s.AddItem(ItemSpec{
		Day:          time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		StartMins:    540,
		DurationMins: 30,
	})
	w := newTestWindow(t, s)

	want := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)
	if got := w.ViewStartDate(); !got.Equal(want) {
		t.Errorf("expected Monday %v, got %v", want, got)
	}
	if got := w.ViewStartDate().Weekday(); got != time.Monday {
		t.Errorf("view start must fall on Monday, got %s", got)
	}
}

func TestWindow_ViewStartAlignment_AlreadyAligned(t *testing.T) {
	s := NewStore()
	// A Monday aligns to itself.
	_, _ = s.AddItem(ItemSpec{
		Day:          time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC),
		StartMins:    540,
		DurationMins: 30,
	})
	w := newTestWindow(t, s)
	want := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)
	if got := w.ViewStartDate(); !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestWindow_SetViewStartDate(t *testing.T) {
	w := newTestWindow(t, NewStore())

	t.Run("weekday mismatch fails and leaves window unchanged", func(t *testing.T) {
		before := w.ViewStartDate()
		err := w.SetViewStartDate(time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC)) // Tuesday
		if !errors.Is(err, ErrInvalidStartDate) {
			t.Fatalf("expected ErrInvalidStartDate, got %v", err)
		}
		if !w.ViewStartDate().Equal(before) {
			t.Errorf("window changed on failed set: %v -> %v", before, w.ViewStartDate())
		}
	})

	t.Run("matching weekday succeeds", func(t *testing.T) {
		monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
		if err := w.SetViewStartDate(monday); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !w.ViewStartDate().Equal(monday) {
			t.Errorf("expected %v, got %v", monday, w.ViewStartDate())
		}
	})
}

func TestWindow_ChangeViewPage(t *testing.T) {
	w := newTestWindow(t, NewStore())
	origin := w.ViewStartDate()

	t.Run("round trip", func(t *testing.T) {
		w.ChangeViewPage(1)
		w.ChangeViewPage(-1)
		if !w.ViewStartDate().Equal(origin) {
			t.Errorf("expected round trip back to %v, got %v", origin, w.ViewStartDate())
		}
	})

	t.Run("moves whole weeks regardless of width", func(t *testing.T) {
		w.SetViewNumDays(3)
		w.ChangeViewPage(2)
		want := origin.AddDate(0, 0, 14)
		if !w.ViewStartDate().Equal(want) {
			t.Errorf("expected %v, got %v", want, w.ViewStartDate())
		}
		w.ChangeViewPage(-2)
	})

	t.Run("zero is a no-op", func(t *testing.T) {
		before := w.ViewStartDate()
		w.ChangeViewPage(0)
		if !w.ViewStartDate().Equal(before) {
			t.Errorf("expected no-op, got %v", w.ViewStartDate())
		}
	})

	t.Run("weekday invariant holds after paging", func(t *testing.T) {
		w.ChangeViewPage(-3)
		if got := w.ViewStartDate().Weekday(); got != w.ViewStartDay() {
			t.Errorf("view start drifted to %s", got)
		}
	})
}

func TestWindow_ViewEndDate(t *testing.T) {
	w := newTestWindow(t, NewStore())
	monday := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)
	if err := w.SetViewStartDate(monday); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, 1, 19, 23, 59, 59, 0, time.UTC) // start + 6 days, end-of-day
	if got := w.ViewEndDate(); !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestWindow_SetViewStartDay_Realigns(t *testing.T) {
	s := NewStore()
	_, _ = s.AddItem(ItemSpec{
		Day:          time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), // Wednesday
		StartMins:    540,
		DurationMins: 30,
	})
	w := newTestWindow(t, s)

	w.SetViewStartDay(time.Sunday)
	want := time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC)
	if got := w.ViewStartDate(); !got.Equal(want) {
		t.Errorf("expected realignment to Sunday %v, got %v", want, got)
	}
}

func TestWindow_TimeBounds(t *testing.T) {
	t.Run("defaults when window is empty", func(t *testing.T) {
		w := newTestWindow(t, NewStore())
		if w.ViewStartTimeMins() != DefaultViewStartTimeMins {
			t.Errorf("expected %d, got %d", DefaultViewStartTimeMins, w.ViewStartTimeMins())
		}
		if w.ViewEndTimeMins() != DefaultViewEndTimeMins {
			t.Errorf("expected %d, got %d", DefaultViewEndTimeMins, w.ViewEndTimeMins())
		}
	})

	t.Run("derived from in-window items", func(t *testing.T) {
		s := NewStore()
		day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
		_, _ = s.AddItem(ItemSpec{Day: day, StartMins: 480, DurationMins: 60})
		_, _ = s.AddItem(ItemSpec{Day: day, StartMins: 900, DurationMins: 90})

		w := newTestWindow(t, s)
		if w.ViewStartTimeMins() != 480 {
			t.Errorf("expected 480, got %d", w.ViewStartTimeMins())
		}
		if w.ViewEndTimeMins() != 990 {
			t.Errorf("expected 990, got %d", w.ViewEndTimeMins())
		}
	})

	t.Run("items outside the window are ignored", func(t *testing.T) {
		s := NewStore()
		// In-window item (Wednesday Jan 15, window Mon 13 .. Sat 18).
		_, _ = s.AddItem(ItemSpec{
			Day:          time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			StartMins:    600,
			DurationMins: 60,
		})
		w := newTestWindow(t, s)
		if err := w.SetViewStartDate(time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Next week's extreme item must not widen this page's bounds.
		_, _ = s.AddItem(ItemSpec{
			Day:          time.Date(2025, 1, 22, 0, 0, 0, 0, time.UTC),
			StartMins:    60,
			DurationMins: 1200,
		})
		if w.ViewStartTimeMins() != 600 {
			t.Errorf("expected 600, got %d", w.ViewStartTimeMins())
		}
		if w.ViewEndTimeMins() != 660 {
			t.Errorf("expected 660, got %d", w.ViewEndTimeMins())
		}
	})

	t.Run("explicit pins win over derivation", func(t *testing.T) {
		s := NewStore()
		_, _ = s.AddItem(ItemSpec{
			Day:          time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			StartMins:    600,
			DurationMins: 60,
		})
		w := newTestWindow(t, s)
		w.SetViewStartTimeMins(480)
		w.SetViewEndTimeMins(1080)
		if w.ViewStartTimeMins() != 480 || w.ViewEndTimeMins() != 1080 {
			t.Errorf("expected pinned 480/1080, got %d/%d", w.ViewStartTimeMins(), w.ViewEndTimeMins())
		}
	})
}

func TestWindow_CacheInvalidation(t *testing.T) {
	s := NewStore()
	w := newTestWindow(t, s)

	// Prime the cache with the empty-window defaults.
	if w.ViewStartTimeMins() != DefaultViewStartTimeMins {
		t.Fatalf("expected defaults, got %d", w.ViewStartTimeMins())
	}

	// A mutation after the read must be picked up on the next read.
	_, _ = s.AddItem(ItemSpec{
		Day:          time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		StartMins:    420,
		DurationMins: 60,
	})
	if w.ViewStartTimeMins() != 420 {
		t.Errorf("stale cache: expected 420, got %d", w.ViewStartTimeMins())
	}
}

func TestWindow_DateEnabled(t *testing.T) {
	w := newTestWindow(t, NewStore())

	t.Run("unbounded by default", func(t *testing.T) {
		if !w.DateEnabled(time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)) {
			t.Error("expected all dates enabled without bounds")
		}
	})

	t.Run("bounds applied", func(t *testing.T) {
		w.SetEnabledRange(
			time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 19, 0, 0, 0, 0, time.UTC),
		)
		if w.DateEnabled(time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC)) {
			t.Error("date before range should be disabled")
		}
		if !w.DateEnabled(time.Date(2025, 1, 13, 10, 0, 0, 0, time.UTC)) {
			t.Error("range start should be enabled regardless of time of day")
		}
		if w.DateEnabled(time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)) {
			t.Error("date after range should be disabled")
		}
	})
}

func TestWindow_VisibleDays(t *testing.T) {
	w := newTestWindow(t, NewStore())
	days := w.VisibleDays()
	if len(days) != DefaultViewNumDays {
		t.Fatalf("expected %d days, got %d", DefaultViewNumDays, len(days))
	}
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) != 24*time.Hour {
			t.Errorf("days not consecutive at %d", i)
		}
	}
}

// The end-to-end law: a lone 9:00/60-min item drives the bounds to 540/600
// and places with span 2 at granularity 30.
func TestWindow_EndToEnd(t *testing.T) {
	s := NewStore()
	day := time.Date(2024, 12, 28, 0, 0, 0, 0, time.UTC)
	item, err := s.AddItem(ItemSpec{Day: day, StartMins: 540, DurationMins: 60})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := DefaultWindowConfig()
	cfg.Now = fixedNow(day)
	w, err := NewWindow(s, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := w.ViewStartTimeMins(); got != 540 {
		t.Errorf("expected view start 540, got %d", got)
	}
	if got := w.ViewEndTimeMins(); got != 600 {
		t.Errorf("expected view end 600, got %d", got)
	}

	var placed *Placement
	for _, p := range w.PlaceDay(day) {
		if p.Item != nil {
			if placed != nil {
				t.Fatal("expected exactly one placed item")
			}
			q := p
			placed = &q
		}
	}
	if placed == nil {
		t.Fatal("item was not placed")
	}
	if placed.Item.ID != item.ID {
		t.Errorf("placed wrong item: %s", placed.Item.ID)
	}
	if placed.Span != 2 {
		t.Errorf("expected span 2, got %d", placed.Span)
	}
}
