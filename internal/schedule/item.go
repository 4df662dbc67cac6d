// Package schedule implements the calendar view-windowing and time-grid
// placement engine behind the weekly scheduler: day-bucketed item storage,
// visible window derivation, the shared time-slot axis, grid placement and
// the bounded selection set.
package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/javiermolinar/gridcal/internal/dateutil"
)

// Validation errors.
var (
	ErrInvalidItemSpec        = errors.New("invalid item spec")
	ErrInvalidStartDate       = errors.New("view start date does not fall on the configured start weekday")
	ErrUnsupportedGranularity = errors.New("unsupported granularity")
)

// MinutesPerDay is 24 hours * 60 minutes.
const MinutesPerDay = 1440

// captionKind discriminates the caption variants.
type captionKind int

const (
	captionNone captionKind = iota
	captionLiteral
	captionComputed
)

// Caption is the display text of an item: absent, a literal string, or a
// function of the formatted start and end times.
type Caption struct {
	kind captionKind
	text string
	fn   func(start, end string) string
}

// LiteralCaption returns a caption with fixed text.
func LiteralCaption(text string) Caption {
	return Caption{kind: captionLiteral, text: text}
}

// ComputedCaption returns a caption derived from the formatted start and end
// times at render time.
func ComputedCaption(fn func(start, end string) string) Caption {
	return Caption{kind: captionComputed, fn: fn}
}

// IsZero reports whether no caption was supplied.
func (c Caption) IsZero() bool {
	return c.kind == captionNone
}

// Literal returns the fixed caption text. ok is false for absent and
// computed captions; computed captions cannot be represented as plain text.
func (c Caption) Literal() (text string, ok bool) {
	if c.kind != captionLiteral {
		return "", false
	}
	return c.text, true
}

// Resolve returns the caption text for the given formatted times.
// The second return value is false when no caption was supplied.
func (c Caption) Resolve(start, end string) (string, bool) {
	switch c.kind {
	case captionLiteral:
		return c.text, true
	case captionComputed:
		return c.fn(start, end), true
	default:
		return "", false
	}
}

// ItemSpec describes a new item for Store.AddItem.
type ItemSpec struct {
	ID           string // optional, assigned by the store when empty
	Day          time.Time
	StartMins    int // minutes from midnight, [0, 1440)
	DurationMins int // > 0
	Caption      Caption
	Data         any // opaque caller payload
}

// Item is a scheduled entry on the grid. Items are immutable after creation:
// to move one, remove it and add a replacement through the store.
type Item struct {
	ID           string
	Day          time.Time // truncated to midnight
	StartMins    int
	DurationMins int
	Caption      Caption
	Data         any
}

// newItem validates spec and builds an Item. The store assigns the ID.
func newItem(spec ItemSpec) (*Item, error) {
	if spec.Day.IsZero() {
		return nil, fmt.Errorf("%w: day is required", ErrInvalidItemSpec)
	}
	if spec.StartMins < 0 || spec.StartMins >= MinutesPerDay {
		return nil, fmt.Errorf("%w: start must be in [0, %d), got %d", ErrInvalidItemSpec, MinutesPerDay, spec.StartMins)
	}
	if spec.DurationMins <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidItemSpec, spec.DurationMins)
	}
	return &Item{
		ID:           spec.ID,
		Day:          dateutil.TruncateToDay(spec.Day),
		StartMins:    spec.StartMins,
		DurationMins: spec.DurationMins,
		Caption:      spec.Caption,
		Data:         spec.Data,
	}, nil
}

// EndMins returns the last occupied minute of the item, inclusive.
func (i *Item) EndMins() int {
	return i.StartMins + i.DurationMins - 1
}

// CaptionText resolves the item caption using formatted start and end times.
// Returns "" when the item has no caption.
func (i *Item) CaptionText(opts FormatOpts) string {
	start := FormatMinutes(i.StartMins, opts)
	end := FormatMinutes(i.StartMins+i.DurationMins, opts)
	text, ok := i.Caption.Resolve(start, end)
	if !ok {
		return ""
	}
	return text
}

// TimeRange returns the formatted "start-end" range of the item.
func (i *Item) TimeRange(opts FormatOpts) string {
	return FormatMinutes(i.StartMins, opts) + "-" + FormatMinutes(i.StartMins+i.DurationMins, opts)
}
