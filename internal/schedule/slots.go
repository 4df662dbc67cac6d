package schedule

// Slot is one row of the shared time axis. InView marks rows inside the
// derived time bounds; rows outside are rendering context added by the
// render offset.
type Slot struct {
	MinuteOfDay int
	InView      bool
}

// BuildSlots generates the time axis: starting at startMins-renderOffMins,
// stepping by granularityMins, stopping before endMins+renderOffMins.
// A non-positive granularity yields no slots rather than looping forever.
func BuildSlots(startMins, endMins, granularityMins, renderOffMins int) []Slot {
	if granularityMins <= 0 {
		return nil
	}
	var slots []Slot
	for m := startMins - renderOffMins; m < endMins+renderOffMins; m += granularityMins {
		slots = append(slots, Slot{
			MinuteOfDay: m,
			InView:      m >= startMins && m < endMins,
		})
	}
	return slots
}
