package schedule

import (
	"testing"
	"time"
)

func testItems(t *testing.T, specs ...ItemSpec) []*Item {
	t.Helper()
	s := NewStore()
	items := make([]*Item, 0, len(specs))
	for _, spec := range specs {
		item, err := s.AddItem(spec)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		items = append(items, item)
	}
	return items
}

func TestPlaceItems_SpanAndSkipAhead(t *testing.T) {
	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	items := testItems(t, ItemSpec{ID: "a", Day: day, StartMins: 540, DurationMins: 90})
	slots := BuildSlots(540, 660, 30, 0) // 540, 570, 600, 630

	placements := PlaceItems(items, slots, 30)
	if len(placements) != 2 {
		t.Fatalf("expected 2 records (item + trailing empty), got %d", len(placements))
	}

	p := placements[0]
	if p.Item == nil || p.Item.ID != "a" {
		t.Fatal("expected item in first record")
	}
	if p.Span != 3 {
		t.Errorf("90 minutes at granularity 30 must span 3, got %d", p.Span)
	}
	if p.SlotIndex != 0 {
		t.Errorf("expected slot index 0, got %d", p.SlotIndex)
	}

	// Slots 570 and 600 were consumed; 630 comes back as empty.
	empty := placements[1]
	if empty.Item != nil {
		t.Error("expected empty record after the span")
	}
	if empty.SlotIndex != 3 {
		t.Errorf("expected skip-ahead to slot 3, got %d", empty.SlotIndex)
	}
}

func TestPlaceItems_ExactStartMatchOnly(t *testing.T) {
	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	// Starts at 550, between slot boundaries: never placed.
	items := testItems(t, ItemSpec{Day: day, StartMins: 550, DurationMins: 60})
	slots := BuildSlots(540, 660, 30, 0)

	for _, p := range PlaceItems(items, slots, 30) {
		if p.Item != nil {
			t.Errorf("off-grid item must not be placed (slot %d)", p.SlotIndex)
		}
	}
}

func TestPlaceItems_PartialDurationTruncates(t *testing.T) {
	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	// 80 minutes at granularity 30 truncates to 2 rows, not an error.
	items := testItems(t, ItemSpec{Day: day, StartMins: 540, DurationMins: 80})
	slots := BuildSlots(540, 660, 30, 0)

	placements := PlaceItems(items, slots, 30)
	if placements[0].Span != 2 {
		t.Errorf("expected floor span 2, got %d", placements[0].Span)
	}
}

func TestPlaceItems_OutOfViewSlotsStayEmpty(t *testing.T) {
	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	// Item starts inside the render padding, before the view bounds.
	items := testItems(t, ItemSpec{Day: day, StartMins: 480, DurationMins: 60})
	slots := BuildSlots(540, 660, 30, 60) // padding slots 480, 510 out of view

	for _, p := range PlaceItems(items, slots, 30) {
		if p.Item != nil {
			t.Errorf("item on an out-of-view slot must not be placed (slot %d)", p.SlotIndex)
		}
	}
}

func TestPlaceItems_SameStartFirstWins(t *testing.T) {
	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	items := testItems(t,
		ItemSpec{ID: "first", Day: day, StartMins: 540, DurationMins: 30},
		ItemSpec{ID: "second", Day: day, StartMins: 540, DurationMins: 30},
	)
	slots := BuildSlots(540, 600, 30, 0)

	var placed []string
	for _, p := range PlaceItems(items, slots, 30) {
		if p.Item != nil {
			placed = append(placed, p.Item.ID)
		}
	}
	if len(placed) != 1 || placed[0] != "first" {
		t.Errorf("expected only the first item in bucket order, got %v", placed)
	}
}

func TestPlaceItems_EmptyDay(t *testing.T) {
	slots := BuildSlots(540, 1020, 30, 60)
	placements := PlaceItems(nil, slots, 30)
	if len(placements) != len(slots) {
		t.Fatalf("expected one empty record per slot, got %d of %d", len(placements), len(slots))
	}
	for _, p := range placements {
		if p.Item != nil || p.Span != 1 {
			t.Errorf("slot %d: expected empty single-row record", p.SlotIndex)
		}
	}
}
