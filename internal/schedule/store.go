package schedule

import (
	"fmt"
	"slices"
	"time"

	"github.com/javiermolinar/gridcal/internal/dateutil"
)

// DayBucket holds all items for a single calendar date in insertion order.
type DayBucket struct {
	Day   time.Time // truncated to midnight
	items []*Item
}

// Items returns a copy of the bucket's item slice.
func (b *DayBucket) Items() []*Item {
	result := make([]*Item, len(b.items))
	copy(result, b.items)
	return result
}

// Len returns the number of items in the bucket.
func (b *DayBucket) Len() int {
	return len(b.items)
}

// Store is the day-bucketed item collection. Buckets are kept sorted
// ascending by date; each bucket preserves insertion order.
//
// A Store belongs to exactly one scheduler instance and is not safe for
// concurrent use.
type Store struct {
	buckets []*DayBucket

	nextID int64 // per-store counter for assigned IDs

	batchDepth   int
	batchPending bool
	gen          uint64 // bumped when derived caches must be recomputed
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Generation returns the invalidation counter. Derived caches compare it
// against the value they were computed at; during a BeginChanges bracket it
// only advances at the outermost EndChanges.
func (s *Store) Generation() uint64 {
	return s.gen
}

// AddItem validates spec, creates the item and appends it to the bucket for
// its calendar date, creating the bucket if needed. Returns the created item.
func (s *Store) AddItem(spec ItemSpec) (*Item, error) {
	item, err := newItem(spec)
	if err != nil {
		return nil, err
	}
	if item.ID == "" {
		item.ID = s.assignID()
	}

	bucket := s.bucketFor(item.Day)
	if bucket == nil {
		bucket = &DayBucket{Day: item.Day}
		s.buckets = append(s.buckets, bucket)
		slices.SortFunc(s.buckets, func(a, b *DayBucket) int {
			return a.Day.Compare(b.Day)
		})
	}
	bucket.items = append(bucket.items, item)

	s.touch()
	return item, nil
}

// Lookup returns the items for the given calendar date in insertion order,
// or nil when the date has no bucket.
func (s *Store) Lookup(day time.Time) []*Item {
	if b := s.bucketFor(day); b != nil {
		return b.Items()
	}
	return nil
}

// Buckets returns the bucket collection, sorted ascending by date.
func (s *Store) Buckets() []*DayBucket {
	result := make([]*DayBucket, len(s.buckets))
	copy(result, s.buckets)
	return result
}

// ItemsInRange returns all items whose day falls in [start, end), in bucket
// order. Both bounds are compared by calendar date.
func (s *Store) ItemsInRange(start, end time.Time) []*Item {
	start = dateutil.TruncateToDay(start)
	end = dateutil.TruncateToDay(end)
	var result []*Item
	for _, b := range s.buckets {
		if b.Day.Before(start) {
			continue
		}
		if !b.Day.Before(end) {
			break
		}
		result = append(result, b.items...)
	}
	return result
}

// Len returns the total number of stored items.
func (s *Store) Len() int {
	n := 0
	for _, b := range s.buckets {
		n += len(b.items)
	}
	return n
}

// FirstDay returns the earliest bucket date. ok is false when the store is
// empty.
func (s *Store) FirstDay() (day time.Time, ok bool) {
	if len(s.buckets) == 0 {
		return time.Time{}, false
	}
	return s.buckets[0].Day, true
}

// LastDay returns the latest bucket date. ok is false when the store is
// empty.
func (s *Store) LastDay() (day time.Time, ok bool) {
	if len(s.buckets) == 0 {
		return time.Time{}, false
	}
	return s.buckets[len(s.buckets)-1].Day, true
}

// Purge removes all buckets and resets derived caches to the empty state.
// The ID counter is not reset, so purged IDs are never reissued.
func (s *Store) Purge() {
	s.buckets = nil
	s.touch()
}

// BeginChanges opens a change bracket. Brackets nest: cache invalidation is
// deferred until the outermost EndChanges, making bulk loads of N items
// amortized O(N). Prefer Batch, which pairs the calls on every exit path.
func (s *Store) BeginChanges() {
	s.batchDepth++
}

// EndChanges closes a change bracket. At the outermost exit any deferred
// invalidation is flushed exactly once. Unbalanced calls are ignored.
func (s *Store) EndChanges() {
	if s.batchDepth == 0 {
		return
	}
	s.batchDepth--
	if s.batchDepth == 0 && s.batchPending {
		s.batchPending = false
		s.gen++
	}
}

// Batch runs fn inside a BeginChanges/EndChanges bracket. The bracket is
// closed on every exit path, including errors and panics, so the depth
// counter never leaks.
func (s *Store) Batch(fn func() error) error {
	s.BeginChanges()
	defer s.EndChanges()
	return fn()
}

// touch records a mutation, deferring the flush while a bracket is open.
func (s *Store) touch() {
	if s.batchDepth > 0 {
		s.batchPending = true
		return
	}
	s.gen++
}

// assignID returns the next free generated ID. Caller-supplied IDs may
// share the "itm-" prefix, so taken values are skipped rather than reissued.
func (s *Store) assignID() string {
	for {
		s.nextID++
		id := fmt.Sprintf("itm-%d", s.nextID)
		if !s.hasID(id) {
			return id
		}
	}
}

func (s *Store) hasID(id string) bool {
	for _, b := range s.buckets {
		for _, it := range b.items {
			if it.ID == id {
				return true
			}
		}
	}
	return false
}

func (s *Store) bucketFor(day time.Time) *DayBucket {
	for _, b := range s.buckets {
		if dateutil.SameDay(b.Day, day) {
			return b
		}
	}
	return nil
}
