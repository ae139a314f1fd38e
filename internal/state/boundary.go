package state

import (
	"fmt"
	"strings"
)

// Boundary is an inclusive range of valid indices into a collection.
type Boundary struct {
	Lower int
	Upper int
}

// BoundaryFromLen returns the boundary (0, n-1) of a collection of length n.
// ok is false for an empty collection, which has no valid index at all.
func BoundaryFromLen(n int) (b Boundary, ok bool) {
	if n <= 0 {
		return Boundary{}, false
	}
	return Boundary{Lower: 0, Upper: n - 1}, true
}

// Contains reports whether i lies within the boundary.
func (b Boundary) Contains(i int) bool {
	return i >= b.Lower && i <= b.Upper
}

// Len is the number of indices covered by the boundary.
func (b Boundary) Len() int {
	if b.Upper < b.Lower {
		return 0
	}
	return b.Upper - b.Lower + 1
}

func (b Boundary) String() string {
	return fmt.Sprintf("%d..%d", b.Lower, b.Upper)
}

// WrapPolicy decides what stepping past an edge of the boundary does.
type WrapPolicy int

const (
	// Wrap jumps to the opposite edge.
	Wrap WrapPolicy = iota
	// Clamp stays pinned at the edge.
	Clamp
)

func (w WrapPolicy) String() string {
	switch w {
	case Wrap:
		return "wrap"
	case Clamp:
		return "clamp"
	default:
		return fmt.Sprintf("WrapPolicy(%d)", int(w))
	}
}

// ParseWrapPolicy accepts the names used in config files and flags.
func ParseWrapPolicy(s string) (WrapPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "wrap", "enable", "enabled", "true", "on":
		return Wrap, nil
	case "clamp", "disable", "disabled", "false", "off":
		return Clamp, nil
	default:
		return Wrap, fmt.Errorf("unknown wrap policy %q (want wrap|clamp)", s)
	}
}
