package state

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func mustSelected(t *testing.T, s *BoundedSelection, want int) {
	t.Helper()
	got, ok := s.Selected()
	if !ok {
		t.Fatalf("expected selection %d; got none", want)
	}
	if got != want {
		t.Fatalf("expected selection %d; got %d", want, got)
	}
}

func TestSelect_OutOfBounds(t *testing.T) {
	s := New(Boundary{0, 10}, Wrap)
	err := s.Select(11)
	if err == nil {
		t.Fatalf("expected select(11) to fail")
	}
	var oob *OutOfBoundsError
	if !errors.As(err, &oob) {
		t.Fatalf("expected *OutOfBoundsError; got %T", err)
	}
	if oob.Bounds != (Boundary{0, 10}) || oob.Actual != 11 || oob.Empty {
		t.Fatalf("unexpected error fields: %+v", *oob)
	}
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected errors.Is(err, ErrOutOfBounds)")
	}
	if _, ok := s.Selected(); ok {
		t.Fatalf("failed select must not change the selection")
	}
}

func TestSelect_OnEdgeAndWithin(t *testing.T) {
	s := New(Boundary{0, 10}, Wrap)
	if err := s.Select(10); err != nil {
		t.Fatalf("select(10): %v", err)
	}
	mustSelected(t, s, 10)
	if err := s.Select(5); err != nil {
		t.Fatalf("select(5): %v", err)
	}
	mustSelected(t, s, 5)
	if err := s.Select(0); err != nil {
		t.Fatalf("select(0): %v", err)
	}
	mustSelected(t, s, 0)
}

func TestSelect_BelowLower(t *testing.T) {
	s := New(Boundary{3, 6}, Clamp)
	if err := s.Select(2); err == nil {
		t.Fatalf("expected select below lower to fail")
	}
	if err := s.Select(-1); err == nil {
		t.Fatalf("expected negative select to fail")
	}
}

func TestWithSelection(t *testing.T) {
	s, err := WithSelection(Boundary{0, 4}, Wrap, 2)
	if err != nil {
		t.Fatalf("WithSelection: %v", err)
	}
	mustSelected(t, s, 2)

	s, err = WithSelection(Boundary{0, 4}, Wrap, 5)
	if err == nil || s != nil {
		t.Fatalf("expected WithSelection(5) to fail; got %v, %v", s, err)
	}
	var oob *OutOfBoundsError
	if !errors.As(err, &oob) || oob.Actual != 5 {
		t.Fatalf("expected OutOfBounds{actual:5}; got %v", err)
	}
}

func TestWrapEnabled_ScenarioLastNextPrev(t *testing.T) {
	s := New(Boundary{0, 10}, Wrap)
	s.Last()
	mustSelected(t, s, 10)
	s.Next()
	mustSelected(t, s, 0)
	s.Prev()
	mustSelected(t, s, 10)
}

func TestWrapDisabled_StaysAtEdges(t *testing.T) {
	s := New(Boundary{0, 10}, Clamp)
	s.Last()
	mustSelected(t, s, 10)
	for i := 0; i < 3; i++ {
		s.Next()
		mustSelected(t, s, 10)
	}
	s.First()
	for i := 0; i < 3; i++ {
		s.Prev()
		mustSelected(t, s, 0)
	}
}

func TestWrap_NonZeroLower(t *testing.T) {
	s := New(Boundary{2, 5}, Wrap)
	s.First()
	mustSelected(t, s, 2)
	s.Prev()
	mustSelected(t, s, 5)
	s.Next()
	mustSelected(t, s, 2)
}

func TestStepN_Saturates(t *testing.T) {
	tests := []struct {
		name  string
		wrap  WrapPolicy
		start int
		next  bool
		n     int
		want  int
	}{
		{"next by 3", Wrap, 2, true, 3, 5},
		{"next lands on upper", Wrap, 7, true, 3, 10},
		{"next past upper clamps", Wrap, 8, true, 5, 10},
		{"next huge", Clamp, 1, true, math.MaxInt, 10},
		{"prev by 3", Wrap, 8, false, 3, 5},
		{"prev past lower clamps", Wrap, 2, false, 5, 0},
		{"prev huge", Clamp, 9, false, math.MaxInt, 0},
		{"negative next steps back", Wrap, 5, true, -2, 3},
		{"negative prev steps forward", Wrap, 5, false, -2, 7},
		{"min int", Wrap, 5, true, math.MinInt, 0},
		{"wrap at upper ignores n", Wrap, 10, true, 4, 0},
		{"clamp at lower ignores n", Clamp, 0, false, 4, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := WithSelection(Boundary{0, 10}, tc.wrap, tc.start)
			if err != nil {
				t.Fatalf("WithSelection: %v", err)
			}
			if tc.next {
				s.NextN(tc.n)
			} else {
				s.PrevN(tc.n)
			}
			mustSelected(t, s, tc.want)
		})
	}
}

func TestStep_FromUnselectedSelectsLower(t *testing.T) {
	s := New(Boundary{0, 10}, Wrap)
	s.Next()
	mustSelected(t, s, 0)

	s = New(Boundary{0, 10}, Wrap)
	s.Prev()
	mustSelected(t, s, 0)

	// A non-zero lower edge is honoured rather than jumping to 0.
	s = New(Boundary{4, 8}, Clamp)
	s.Next()
	mustSelected(t, s, 4)
}

func TestDeselect(t *testing.T) {
	s := New(Boundary{0, 3}, Wrap)
	s.Last()
	s.Deselect()
	if _, ok := s.Selected(); ok {
		t.Fatalf("expected no selection after Deselect")
	}
	if s.IsSelected(3) {
		t.Fatalf("IsSelected must be false after Deselect")
	}
}

func TestUpdateBoundaryFromLen_Shrink(t *testing.T) {
	s := New(Boundary{0, 5}, Wrap)
	if err := s.Select(5); err != nil {
		t.Fatalf("select: %v", err)
	}
	s.UpdateBoundaryFromLen(4)
	mustSelected(t, s, 3)
	if b, ok := s.Boundary(); !ok || b != (Boundary{0, 3}) {
		t.Fatalf("expected boundary 0..3; got %v ok=%v", b, ok)
	}
}

func TestUpdateBoundaryFromLen_GrowPreservesSelection(t *testing.T) {
	s := New(Boundary{0, 5}, Wrap)
	if err := s.Select(3); err != nil {
		t.Fatalf("select: %v", err)
	}
	s.UpdateBoundaryFromLen(10)
	mustSelected(t, s, 3)
	s.Last()
	mustSelected(t, s, 9)
}

func TestUpdateBoundaryFromLen_UnselectedStaysUnselected(t *testing.T) {
	s := New(Boundary{0, 5}, Wrap)
	s.UpdateBoundaryFromLen(2)
	if _, ok := s.Selected(); ok {
		t.Fatalf("resync must not create a selection")
	}
}

func TestEmptyCollection(t *testing.T) {
	s := NewFromLen(0, Wrap)
	if _, ok := s.Boundary(); ok {
		t.Fatalf("expected no boundary for an empty collection")
	}

	s.Next()
	s.Prev()
	s.NextN(3)
	s.PrevN(3)
	s.First()
	s.Last()
	if _, ok := s.Selected(); ok {
		t.Fatalf("navigation on an empty collection must not select anything")
	}

	err := s.Select(0)
	var oob *OutOfBoundsError
	if !errors.As(err, &oob) || !oob.Empty {
		t.Fatalf("expected empty OutOfBounds; got %v", err)
	}

	// Grow from empty: navigation works again.
	s.UpdateBoundaryFromLen(3)
	s.Next()
	mustSelected(t, s, 0)

	// Shrink to empty clears the selection.
	s.UpdateBoundaryFromLen(0)
	if _, ok := s.Selected(); ok {
		t.Fatalf("expected selection cleared when collection empties")
	}
}

func TestZeroValueIsEmpty(t *testing.T) {
	var s BoundedSelection
	s.Next()
	if _, ok := s.Selected(); ok {
		t.Fatalf("zero value must behave as an empty collection")
	}
	if s.Wrap() != Wrap {
		t.Fatalf("zero value policy should be Wrap; got %v", s.Wrap())
	}
}

func TestUpdateBoundary_NoRevalidation(t *testing.T) {
	s := New(Boundary{0, 10}, Wrap)
	if err := s.Select(8); err != nil {
		t.Fatalf("select: %v", err)
	}
	s.UpdateBoundary(Boundary{0, 4})
	mustSelected(t, s, 8)

	// The next step pulls the stale selection back inside.
	s.Next()
	mustSelected(t, s, 4)
}

func TestUpdateUpperAndSelect(t *testing.T) {
	s := New(Boundary{0, 10}, Wrap)
	if _, ok := s.Selected(); ok {
		t.Fatalf("expected no initial selection")
	}
	s.UpdateUpperAndSelect(20)
	mustSelected(t, s, 20)
	if b, _ := s.Boundary(); b != (Boundary{0, 20}) {
		t.Fatalf("expected boundary 0..20; got %v", b)
	}

	empty := NewFromLen(0, Clamp)
	empty.UpdateUpperAndSelect(0)
	mustSelected(t, empty, 0)

	low := New(Boundary{5, 9}, Wrap)
	low.UpdateUpperAndSelect(2)
	mustSelected(t, low, 2)
	if b, _ := low.Boundary(); b != (Boundary{2, 2}) {
		t.Fatalf("expected lower pulled down to 2; got %v", b)
	}
	for _, u := range []int{0, 3, 7} {
		low.UpdateUpperAndSelect(u)
		b, _ := low.Boundary()
		i, ok := low.Selected()
		if !ok || i != u || !b.Contains(i) {
			t.Fatalf("UpdateUpperAndSelect(%d): selection %d (ok=%v) outside %v", u, i, ok, b)
		}
	}

	low.UpdateUpperAndSelect(-1)
	if _, ok := low.Boundary(); ok {
		t.Fatalf("negative upper should empty the boundary")
	}
}

func TestUpdateBoundsFromGrowingCollection(t *testing.T) {
	v := []int{1, 2, 3, 4, 5, 6}
	s := NewFromLen(len(v), Wrap)
	s.Last()
	mustSelected(t, s, 5)

	v = append(v, 7, 8, 9, 10)
	s.UpdateBoundaryFromLen(len(v))
	s.Last()
	mustSelected(t, s, 9)

	v = v[:len(v)-1]
	s.UpdateBoundaryFromLen(len(v))
	if i, _ := s.Selected(); i > len(v)-1 {
		t.Fatalf("selection %d past end of %d items", i, len(v))
	}
}

func TestSetWrap(t *testing.T) {
	s := New(Boundary{0, 2}, Wrap)
	s.Last()
	s.SetWrap(Clamp)
	s.Next()
	mustSelected(t, s, 2)
	s.SetWrap(Wrap)
	s.Next()
	mustSelected(t, s, 0)
}

func TestSelectionStaysInBounds_RandomOps(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, wrap := range []WrapPolicy{Wrap, Clamp} {
		s := NewFromLen(5, wrap)
		n := 5
		for step := 0; step < 5000; step++ {
			switch rng.Intn(10) {
			case 0:
				s.Next()
			case 1:
				s.Prev()
			case 2:
				s.NextN(rng.Intn(20))
			case 3:
				s.PrevN(rng.Intn(20))
			case 4:
				s.First()
			case 5:
				s.Last()
			case 6:
				_ = s.Select(rng.Intn(n+3) - 1)
			case 7:
				s.Deselect()
			case 8:
				n = rng.Intn(12)
				s.UpdateBoundaryFromLen(n)
			case 9:
				n++
				s.UpdateUpperAndSelect(n - 1)
			}
			i, ok := s.Selected()
			if !ok {
				continue
			}
			b, hasBounds := s.Boundary()
			if !hasBounds {
				t.Fatalf("step %d: selection %d without a boundary", step, i)
			}
			if !b.Contains(i) {
				t.Fatalf("step %d (%v): selection %d outside %v", step, wrap, i, b)
			}
		}
	}
}

func TestParseWrapPolicy(t *testing.T) {
	tests := map[string]WrapPolicy{
		"":        Wrap,
		"wrap":    Wrap,
		"Enable":  Wrap,
		"clamp":   Clamp,
		"disable": Clamp,
		" off ":   Clamp,
	}
	for in, want := range tests {
		got, err := ParseWrapPolicy(in)
		if err != nil {
			t.Fatalf("ParseWrapPolicy(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseWrapPolicy(%q) = %v; want %v", in, got, want)
		}
	}
	if _, err := ParseWrapPolicy("sideways"); err == nil {
		t.Fatalf("expected error for unknown policy")
	}
}

func TestOutOfBoundsError_Message(t *testing.T) {
	err := &OutOfBoundsError{Bounds: Boundary{0, 10}, Actual: 11}
	want := "out of bounds: selection not within boundary range 0..10 (is: 11)"
	if err.Error() != want {
		t.Fatalf("got %q; want %q", err.Error(), want)
	}
}
