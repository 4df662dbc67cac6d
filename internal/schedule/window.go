package schedule

import (
	"fmt"
	"time"

	"github.com/javiermolinar/gridcal/internal/dateutil"
)

// Configuration defaults.
const (
	DefaultViewStartDay      = time.Monday
	DefaultViewNumDays       = 6
	DefaultGranularityMins   = 30
	DefaultRenderOffMins     = 60
	DefaultViewStartTimeMins = 540  // 9:00
	DefaultViewEndTimeMins   = 1020 // 17:00
	DefaultMaxSelectedItems  = 2
)

// WindowConfig holds the view window settings.
type WindowConfig struct {
	ViewStartDay    time.Weekday
	ViewNumDays     int
	GranularityMins int
	RenderOffMins   int
	Now             func() time.Time // injectable for testing
}

// DefaultWindowConfig returns the default window configuration.
func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		ViewStartDay:    DefaultViewStartDay,
		ViewNumDays:     DefaultViewNumDays,
		GranularityMins: DefaultGranularityMins,
		RenderOffMins:   DefaultRenderOffMins,
		Now:             time.Now,
	}
}

// Window derives the visible date range and the shared time-slot axis from a
// Store and its configuration. Derived state is cached and recomputed on the
// next read after any item mutation or configuration change.
type Window struct {
	store *Store
	now   func() time.Time

	viewStartDay time.Weekday
	viewNumDays  int
	granularity  int
	renderOff    int

	// Enabled range restricts interactive selection only; it never affects
	// the rendered window. Zero values mean unbounded.
	enabledStart time.Time
	enabledEnd   time.Time

	// Explicit pins override derivation until cleared.
	pinnedEffStart  *time.Time
	pinnedEffEnd    *time.Time
	pinnedViewStart *time.Time
	pinnedStartMins *int
	pinnedEndMins   *int

	cache windowCache
}

// windowCache holds every derived field, valid for a single store generation.
type windowCache struct {
	valid     bool
	gen       uint64
	effStart  time.Time
	effEnd    time.Time
	viewStart time.Time
	startMins int
	endMins   int
	slots     []Slot
}

// NewWindow creates a Window over store. The granularity is fixed: any value
// other than DefaultGranularityMins fails with ErrUnsupportedGranularity
// (other granularities are a known unbounded-loop hazard in slot generation
// and are deliberately rejected rather than worked around).
func NewWindow(store *Store, cfg WindowConfig) (*Window, error) {
	if cfg.GranularityMins != DefaultGranularityMins {
		return nil, fmt.Errorf("%w: got %d, only %d is supported",
			ErrUnsupportedGranularity, cfg.GranularityMins, DefaultGranularityMins)
	}
	if cfg.ViewNumDays < 1 {
		return nil, fmt.Errorf("view must span at least one day, got %d", cfg.ViewNumDays)
	}
	if cfg.RenderOffMins < 0 {
		return nil, fmt.Errorf("render offset cannot be negative, got %d", cfg.RenderOffMins)
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Window{
		store:        store,
		now:          now,
		viewStartDay: cfg.ViewStartDay,
		viewNumDays:  cfg.ViewNumDays,
		granularity:  cfg.GranularityMins,
		renderOff:    cfg.RenderOffMins,
	}, nil
}

// Store returns the underlying item store.
func (w *Window) Store() *Store {
	return w.store
}

// EffectiveStartDate returns the earliest bucket date, or today when the
// store is empty, unless explicitly pinned.
func (w *Window) EffectiveStartDate() time.Time {
	w.ensure()
	return w.cache.effStart
}

// EffectiveEndDate returns the latest bucket date, or today when the store
// is empty, unless explicitly pinned.
func (w *Window) EffectiveEndDate() time.Time {
	w.ensure()
	return w.cache.effEnd
}

// SetEffectiveStartDate pins the effective start date.
func (w *Window) SetEffectiveStartDate(d time.Time) {
	d = dateutil.TruncateToDay(d)
	w.pinnedEffStart = &d
	w.invalidate()
}

// SetEffectiveEndDate pins the effective end date.
func (w *Window) SetEffectiveEndDate(d time.Time) {
	d = dateutil.TruncateToDay(d)
	w.pinnedEffEnd = &d
	w.invalidate()
}

// ViewStartDate returns the first date of the rendering window. Its weekday
// always equals the configured view start day.
func (w *Window) ViewStartDate() time.Time {
	w.ensure()
	return w.cache.viewStart
}

// SetViewStartDate pins the window start to d. Fails with ErrInvalidStartDate
// when d's weekday differs from the configured view start day; the window is
// left unchanged.
func (w *Window) SetViewStartDate(d time.Time) error {
	d = dateutil.TruncateToDay(d)
	if d.Weekday() != w.viewStartDay {
		return fmt.Errorf("%w: %s falls on a %s, view weeks start on %s",
			ErrInvalidStartDate, d.Format("2006-01-02"), d.Weekday(), w.viewStartDay)
	}
	w.pinnedViewStart = &d
	w.invalidate()
	return nil
}

// ChangeViewPage shifts the window by count whole weeks; negative counts page
// backward and zero is a no-op. Pagination moves by weeks regardless of the
// window width in days.
func (w *Window) ChangeViewPage(count int) {
	if count == 0 {
		return
	}
	next := w.ViewStartDate().AddDate(0, 0, 7*count)
	w.pinnedViewStart = &next
	w.invalidate()
}

// ViewEndDate returns the end of the rendering window, at end-of-day.
func (w *Window) ViewEndDate() time.Time {
	return dateutil.EndOfDay(w.ViewStartDate().AddDate(0, 0, w.viewNumDays))
}

// ViewNumDays returns the window width in days.
func (w *Window) ViewNumDays() int {
	return w.viewNumDays
}

// SetViewNumDays changes the window width. Values below 1 are ignored.
func (w *Window) SetViewNumDays(n int) {
	if n < 1 || n == w.viewNumDays {
		return
	}
	w.viewNumDays = n
	w.invalidate()
}

// ViewStartDay returns the configured first weekday of a view page.
func (w *Window) ViewStartDay() time.Weekday {
	return w.viewStartDay
}

// SetViewStartDay changes the first weekday of a view page. Any explicit
// window start is dropped so the window realigns to the new weekday.
func (w *Window) SetViewStartDay(d time.Weekday) {
	if d == w.viewStartDay {
		return
	}
	w.viewStartDay = d
	w.pinnedViewStart = nil
	w.invalidate()
}

// GranularityMins returns the slot size in minutes.
func (w *Window) GranularityMins() int {
	return w.granularity
}

// SetGranularityMins rejects any value other than DefaultGranularityMins.
func (w *Window) SetGranularityMins(v int) error {
	if v != DefaultGranularityMins {
		return fmt.Errorf("%w: got %d, only %d is supported",
			ErrUnsupportedGranularity, v, DefaultGranularityMins)
	}
	return nil
}

// RenderOffMins returns the rendering padding around the time bounds.
func (w *Window) RenderOffMins() int {
	return w.renderOff
}

// SetRenderOffMins changes the rendering padding. Negative values are ignored.
func (w *Window) SetRenderOffMins(v int) {
	if v < 0 || v == w.renderOff {
		return
	}
	w.renderOff = v
	w.invalidate()
}

// ViewStartTimeMins returns the lower time-of-day bound of the window,
// derived from in-window items unless pinned.
func (w *Window) ViewStartTimeMins() int {
	w.ensure()
	return w.cache.startMins
}

// ViewEndTimeMins returns the upper time-of-day bound of the window,
// derived from in-window items unless pinned.
func (w *Window) ViewEndTimeMins() int {
	w.ensure()
	return w.cache.endMins
}

// SetViewStartTimeMins pins the lower time bound.
func (w *Window) SetViewStartTimeMins(m int) {
	w.pinnedStartMins = &m
	w.invalidate()
}

// SetViewEndTimeMins pins the upper time bound.
func (w *Window) SetViewEndTimeMins(m int) {
	w.pinnedEndMins = &m
	w.invalidate()
}

// SetEnabledRange sets the caller-supplied bounds restricting interactive
// selection. Zero times leave the corresponding side unbounded.
func (w *Window) SetEnabledRange(start, end time.Time) {
	w.enabledStart = start
	w.enabledEnd = end
}

// DateEnabled reports whether the given date may be interactively selected.
// The enabled range is independent of the rendered window.
func (w *Window) DateEnabled(day time.Time) bool {
	day = dateutil.TruncateToDay(day)
	if !w.enabledStart.IsZero() && day.Before(dateutil.TruncateToDay(w.enabledStart)) {
		return false
	}
	if !w.enabledEnd.IsZero() && day.After(dateutil.TruncateToDay(w.enabledEnd)) {
		return false
	}
	return true
}

// Slots returns the shared time-slot axis. The same axis applies to every
// visible day.
func (w *Window) Slots() []Slot {
	w.ensure()
	return w.cache.slots
}

// VisibleDays returns the dates of the rendering window in order.
func (w *Window) VisibleDays() []time.Time {
	start := w.ViewStartDate()
	days := make([]time.Time, w.viewNumDays)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// PlaceDay maps the given day's items onto the shared slot axis.
func (w *Window) PlaceDay(day time.Time) []Placement {
	w.ensure()
	return PlaceItems(w.store.Lookup(day), w.cache.slots, w.granularity)
}

// invalidate marks every derived field stale.
func (w *Window) invalidate() {
	w.cache.valid = false
}

// ensure recomputes the cache when stale. The cache is keyed to the store
// generation, so item mutations (batched or not) are picked up on the next
// read without the store knowing about the window.
func (w *Window) ensure() {
	if w.cache.valid && w.cache.gen == w.store.Generation() {
		return
	}

	c := windowCache{valid: true, gen: w.store.Generation()}
	today := dateutil.TruncateToDay(w.now())

	switch {
	case w.pinnedEffStart != nil:
		c.effStart = *w.pinnedEffStart
	default:
		if d, ok := w.store.FirstDay(); ok {
			c.effStart = d
		} else {
			c.effStart = today
		}
	}
	switch {
	case w.pinnedEffEnd != nil:
		c.effEnd = *w.pinnedEffEnd
	default:
		if d, ok := w.store.LastDay(); ok {
			c.effEnd = d
		} else {
			c.effEnd = today
		}
	}

	if w.pinnedViewStart != nil {
		c.viewStart = *w.pinnedViewStart
	} else {
		c.viewStart = dateutil.AlignToWeekday(c.effStart, w.viewStartDay)
	}

	c.startMins, c.endMins = w.deriveTimeBounds(c.viewStart)
	c.slots = BuildSlots(c.startMins, c.endMins, w.granularity, w.renderOff)

	w.cache = c
}

// deriveTimeBounds scans the items inside the rendering window for the
// minimum start and maximum end minute. Days without items contribute
// nothing; an empty window falls back to the 9:00-17:00 defaults.
func (w *Window) deriveTimeBounds(viewStart time.Time) (startMins, endMins int) {
	startMins = DefaultViewStartTimeMins
	endMins = DefaultViewEndTimeMins

	items := w.store.ItemsInRange(viewStart, viewStart.AddDate(0, 0, w.viewNumDays))
	if len(items) > 0 {
		startMins = items[0].StartMins
		endMins = items[0].StartMins + items[0].DurationMins
		for _, it := range items[1:] {
			startMins = min(startMins, it.StartMins)
			endMins = max(endMins, it.StartMins+it.DurationMins)
		}
	}

	if w.pinnedStartMins != nil {
		startMins = *w.pinnedStartMins
	}
	if w.pinnedEndMins != nil {
		endMins = *w.pinnedEndMins
	}
	return startMins, endMins
}
