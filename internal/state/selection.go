// Package state holds the selection cursor used by list-style components.
//
// A BoundedSelection tracks which row of a collection is highlighted. It never
// lets the selection leave the collection's boundary and decides, through its
// WrapPolicy, whether stepping past an edge wraps to the other end or stays put.
// It does no rendering and no I/O; callers push the collection size in and read
// the selection out.
package state

import "math"

// BoundedSelection is a selection index confined to a Boundary.
//
// The zero value is usable: it has no boundary (an empty collection), no
// selection and the Wrap policy.
type BoundedSelection struct {
	bounds    Boundary
	hasBounds bool

	wrap WrapPolicy

	selected    int
	hasSelected bool
}

// New returns a selection over b with nothing selected.
func New(b Boundary, wrap WrapPolicy) *BoundedSelection {
	return &BoundedSelection{bounds: b, hasBounds: true, wrap: wrap}
}

// NewFromLen returns a selection over a collection of length n. For n == 0 the
// selection starts in the empty state and every navigation call is a no-op
// until the boundary is resynchronised.
func NewFromLen(n int, wrap WrapPolicy) *BoundedSelection {
	s := &BoundedSelection{wrap: wrap}
	s.bounds, s.hasBounds = BoundaryFromLen(n)
	return s
}

// WithSelection returns a selection over b with initial selected. It fails with
// an *OutOfBoundsError if initial is outside b.
func WithSelection(b Boundary, wrap WrapPolicy, initial int) (*BoundedSelection, error) {
	s := New(b, wrap)
	if err := s.Select(initial); err != nil {
		return nil, err
	}
	return s, nil
}

// Selected returns the selected index, if any.
func (s *BoundedSelection) Selected() (int, bool) {
	return s.selected, s.hasSelected
}

// IsSelected reports whether i is the selected index.
func (s *BoundedSelection) IsSelected(i int) bool {
	return s.hasSelected && s.selected == i
}

// Boundary returns the current boundary. ok is false while the backing
// collection is empty.
func (s *BoundedSelection) Boundary() (b Boundary, ok bool) {
	return s.bounds, s.hasBounds
}

func (s *BoundedSelection) Wrap() WrapPolicy { return s.wrap }

func (s *BoundedSelection) SetWrap(w WrapPolicy) { s.wrap = w }

// Select sets the selection to i if it lies within the boundary.
func (s *BoundedSelection) Select(i int) error {
	if !s.hasBounds {
		return &OutOfBoundsError{Actual: i, Empty: true}
	}
	if !s.bounds.Contains(i) {
		return &OutOfBoundsError{Bounds: s.bounds, Actual: i}
	}
	s.set(i)
	return nil
}

func (s *BoundedSelection) Next() { s.NextN(1) }

func (s *BoundedSelection) Prev() { s.PrevN(1) }

// NextN steps forward n rows. At the upper edge it wraps to the lower edge or
// stays, depending on the policy. Otherwise it saturates at the upper edge.
// With nothing selected it selects the lower edge. Negative n steps backward.
func (s *BoundedSelection) NextN(n int) {
	if n < 0 {
		s.PrevN(negate(n))
		return
	}
	if !s.hasBounds {
		return
	}
	lo, hi := s.bounds.Lower, s.bounds.Upper
	i, ok := s.Selected()
	if !ok {
		s.set(lo)
		return
	}

	var next int
	switch {
	case i == hi:
		next = s.edge(lo, hi)
	case n >= hi-i:
		next = hi
	default:
		next = i + n
	}
	s.set(clamp(next, lo, hi))
}

// PrevN steps backward n rows, mirroring NextN.
func (s *BoundedSelection) PrevN(n int) {
	if n < 0 {
		s.NextN(negate(n))
		return
	}
	if !s.hasBounds {
		return
	}
	lo, hi := s.bounds.Lower, s.bounds.Upper
	i, ok := s.Selected()
	if !ok {
		s.set(lo)
		return
	}

	var prev int
	switch {
	case i == lo:
		prev = s.edge(hi, lo)
	case n >= i-lo:
		prev = lo
	default:
		prev = i - n
	}
	s.set(clamp(prev, lo, hi))
}

// First selects the lower edge.
func (s *BoundedSelection) First() {
	if s.hasBounds {
		s.set(s.bounds.Lower)
	}
}

// Last selects the upper edge.
func (s *BoundedSelection) Last() {
	if s.hasBounds {
		s.set(s.bounds.Upper)
	}
}

func (s *BoundedSelection) Deselect() {
	s.selected, s.hasSelected = 0, false
}

// UpdateBoundary replaces the boundary without revalidating the selection.
// Callers that may have shrunk the collection should use UpdateBoundaryFromLen.
func (s *BoundedSelection) UpdateBoundary(b Boundary) {
	s.bounds, s.hasBounds = b, true
}

// UpdateBoundaryFromLen resets the boundary to (0, n-1) and pulls an existing
// selection back inside it. A selection that still fits is left alone. For
// n == 0 the selection is cleared and navigation is disabled.
func (s *BoundedSelection) UpdateBoundaryFromLen(n int) {
	s.bounds, s.hasBounds = BoundaryFromLen(n)
	if !s.hasBounds {
		s.Deselect()
		return
	}
	if i, ok := s.Selected(); ok {
		s.set(clamp(i, s.bounds.Lower, s.bounds.Upper))
	}
}

// UpdateUpperAndSelect moves the upper edge to upper and selects it, e.g. to
// follow an item that was just appended.
func (s *BoundedSelection) UpdateUpperAndSelect(upper int) {
	if upper < 0 {
		s.UpdateBoundaryFromLen(0)
		return
	}
	if !s.hasBounds {
		s.bounds = Boundary{Lower: 0, Upper: upper}
		s.hasBounds = true
	}
	s.bounds.Upper = upper
	if s.bounds.Lower > upper {
		s.bounds.Lower = upper
	}
	s.set(upper)
}

func (s *BoundedSelection) set(i int) {
	s.selected, s.hasSelected = i, true
}

// edge picks where a step past an edge lands.
func (s *BoundedSelection) edge(opposite, same int) int {
	switch s.wrap {
	case Clamp:
		return same
	default:
		return opposite
	}
}

func clamp(i, lo, hi int) int {
	if i < lo {
		return lo
	}
	if i > hi {
		return hi
	}
	return i
}

func negate(n int) int {
	if n == math.MinInt {
		return math.MaxInt
	}
	return -n
}
