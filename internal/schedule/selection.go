package schedule

// Selection maintains the capped, order-significant set of selected items.
// Order is significant: each selected item has a 1-based rank used for UI
// numbering, owned entirely by this controller.
type Selection struct {
	max   int
	items []*Item
}

// NewSelection creates a Selection capped at maxItems.
func NewSelection(maxItems int) *Selection {
	return &Selection{max: maxItems}
}

// Toggle flips the selection state of item.
//
// An already-selected item is removed and later ranks shift down. At the cap,
// multi-select rejects silently while single-select (cap <= 1) replaces the
// whole selection with item. Otherwise the item is appended.
func (s *Selection) Toggle(item *Item) {
	if item == nil {
		return
	}
	if idx := s.indexOf(item); idx >= 0 {
		s.items = append(s.items[:idx], s.items[idx+1:]...)
		return
	}
	if len(s.items) >= s.max {
		if s.max > 1 {
			return
		}
		s.items = s.items[:0]
	}
	s.items = append(s.items, item)
}

// Rank returns the 1-based position of item in the selection, or 0 when the
// item is not selected.
func (s *Selection) Rank(item *Item) int {
	return s.indexOf(item) + 1
}

// IsSelected reports whether item is currently selected.
func (s *Selection) IsSelected(item *Item) bool {
	return s.indexOf(item) >= 0
}

// Items returns a copy of the selected items in selection order.
func (s *Selection) Items() []*Item {
	result := make([]*Item, len(s.items))
	copy(result, s.items)
	return result
}

// Len returns the number of selected items.
func (s *Selection) Len() int {
	return len(s.items)
}

// MaxItems returns the selection cap.
func (s *Selection) MaxItems() int {
	return s.max
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.items = s.items[:0]
}

func (s *Selection) indexOf(item *Item) int {
	if item == nil {
		return -1
	}
	for i, it := range s.items {
		if it.ID == item.ID {
			return i
		}
	}
	return -1
}
