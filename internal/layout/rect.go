// Package layout splits terminal areas into panes and composes rendered
// panes back into a frame.
package layout

// Rect is a cell area of the terminal.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Area returns a rect of the given size anchored at the origin.
func Area(width, height int) Rect {
	return Rect{Width: max(width, 0), Height: max(height, 0)}
}

// Centered returns a rect half the width and half the height of size,
// offset by a quarter in each direction.
func Centered(size Rect) Rect {
	width := size.Width / 2
	height := size.Height / 2
	return Rect{
		X:      size.X + width/2,
		Y:      size.Y + height/2,
		Width:  width,
		Height: height,
	}
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Inner shrinks r by a one-cell border on every side.
func (r Rect) Inner() Rect {
	if r.Width < 2 || r.Height < 2 {
		return Rect{X: r.X, Y: r.Y}
	}
	return Rect{X: r.X + 1, Y: r.Y + 1, Width: r.Width - 2, Height: r.Height - 2}
}
