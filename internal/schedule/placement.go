package schedule

// Placement is one renderable cell of a day column. Item is nil for an empty
// slot. Span is the number of consecutive rows the cell occupies.
type Placement struct {
	Item      *Item
	Span      int
	SlotIndex int
}

// PlaceItems maps a single day's items onto the shared slot axis.
//
// For each in-view slot the day's items are searched for one whose start
// minute equals the slot exactly; there is no tolerance or overlap test. A
// match emits a placement spanning duration/granularity rows (a duration that
// is not an exact multiple truncates to the floor) and the consumed rows are
// skipped rather than re-evaluated as empty. Everything else, including
// out-of-view slots, emits an empty single-row cell.
//
// When two items share a start minute only the first in bucket order is
// placed; the engine performs no overlap validation. Known limitation.
func PlaceItems(items []*Item, slots []Slot, granularityMins int) []Placement {
	if granularityMins <= 0 {
		return nil
	}
	placements := make([]Placement, 0, len(slots))
	for i := 0; i < len(slots); i++ {
		var found *Item
		if slots[i].InView {
			for _, it := range items {
				if it.StartMins == slots[i].MinuteOfDay {
					found = it
					break
				}
			}
		}
		if found == nil {
			placements = append(placements, Placement{Span: 1, SlotIndex: i})
			continue
		}
		span := found.DurationMins / granularityMins
		placements = append(placements, Placement{Item: found, Span: span, SlotIndex: i})
		if span > 1 {
			i += span - 1
		}
	}
	return placements
}
