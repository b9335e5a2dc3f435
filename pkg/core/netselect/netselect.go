// Package netselect tracks which connected component ("network") is the
// active view filter. The filter survives graph reloads as long as it can:
// it resets to "all" when the component count drops to one or zero, and
// snaps to the first component when the selected index disappears.
package netselect

// FilterAll selects every component at once.
const FilterAll = -1

// State holds the active network filter. The zero value selects all
// components.
type State struct {
	active int
	count  int
}

// New returns a state filtering nothing ("all"), with no components known.
func New() *State {
	return &State{active: FilterAll}
}

// Apply reconciles the filter with a freshly computed component count.
// Call it after every layout pass.
func (s *State) Apply(count int) {
	if count < 0 {
		count = 0
	}
	s.count = count
	switch {
	case count <= 1:
		// A single network needs no filter.
		s.active = FilterAll
	case s.active != FilterAll && s.active >= count:
		// The selected component vanished; snap to the first one.
		s.active = 0
	}
}

// Select sets the active filter. Returns false and leaves the state
// untouched when the index is out of range.
func (s *State) Select(index int) bool {
	if index == FilterAll {
		s.active = FilterAll
		return true
	}
	if index < 0 || index >= s.count {
		return false
	}
	if s.count <= 1 {
		// With one network the filter stays "all".
		s.active = FilterAll
		return true
	}
	s.active = index
	return true
}

// Active returns the current filter: FilterAll or a component index.
func (s *State) Active() int { return s.active }

// All reports whether every component is visible.
func (s *State) All() bool { return s.active == FilterAll }

// Count returns the component count last applied.
func (s *State) Count() int { return s.count }

// Valid returns the selectable component indices, in order.
func (s *State) Valid() []int {
	if s.count <= 1 {
		return nil
	}
	indices := make([]int, s.count)
	for i := range indices {
		indices[i] = i
	}
	return indices
}

// Visible reports whether a component index passes the current filter.
func (s *State) Visible(component int) bool {
	return s.active == FilterAll || s.active == component
}
