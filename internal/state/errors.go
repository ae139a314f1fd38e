package state

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds matches every *OutOfBoundsError via errors.Is.
var ErrOutOfBounds = errors.New("selection out of bounds")

// OutOfBoundsError is returned when a selection falls outside the current
// boundary. Empty is set when there was no boundary to select into.
type OutOfBoundsError struct {
	Bounds Boundary
	Actual int
	Empty  bool
}

func (e *OutOfBoundsError) Error() string {
	if e.Empty {
		return fmt.Sprintf("out of bounds: nothing to select in an empty collection (is: %d)", e.Actual)
	}
	return fmt.Sprintf("out of bounds: selection not within boundary range %d..%d (is: %d)", e.Bounds.Lower, e.Bounds.Upper, e.Actual)
}

func (e *OutOfBoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}
