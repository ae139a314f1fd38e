package layout

import "fmt"

// Ratio is a pair of percentages for a two-way split.
type Ratio struct {
	First  int
	Second int
}

func DefaultRatio() Ratio { return Ratio{First: 50, Second: 50} }

// NewRatio returns first/second as percentages. Pairs summing to 100 or less
// are kept as given; larger pairs are scaled down to sum to exactly 100.
func NewRatio(first, second int) Ratio {
	first, second = max(first, 0), max(second, 0)
	if first+second <= 100 {
		return Ratio{First: first, Second: second}
	}
	total := first + second
	return Ratio{
		First:  (first*100 + total - 1) / total,
		Second: second * 100 / total,
	}
}

// ParseRatio reads "70:30" or "70/30".
func ParseRatio(s string) (Ratio, error) {
	var a, b int
	if _, err := fmt.Sscanf(s, "%d:%d", &a, &b); err == nil {
		return NewRatio(a, b), nil
	}
	if _, err := fmt.Sscanf(s, "%d/%d", &a, &b); err == nil {
		return NewRatio(a, b), nil
	}
	return Ratio{}, fmt.Errorf("invalid ratio %q (want A:B)", s)
}

func (r Ratio) String() string { return fmt.Sprintf("%d:%d", r.First, r.Second) }

// Grow moves delta percentage points from the second pane to the first,
// keeping both panes at least 10. Ratios totalling less than 20 cannot keep
// that floor and are returned unchanged.
func (r Ratio) Grow(delta int) Ratio {
	total := r.First + r.Second
	if total == 0 {
		r = DefaultRatio()
		total = 100
	}
	if total < 20 {
		return r
	}
	first := min(max(r.First+delta, 10), total-10)
	return Ratio{First: first, Second: total - first}
}

// VSplit places two panes side by side.
func VSplit(r Rect, ratio Ratio) [2]Rect {
	a, b := splitLen(r.Width, ratio)
	return [2]Rect{
		{X: r.X, Y: r.Y, Width: a, Height: r.Height},
		{X: r.X + a, Y: r.Y, Width: b, Height: r.Height},
	}
}

// HSplit stacks two panes on top of each other.
func HSplit(r Rect, ratio Ratio) [2]Rect {
	a, b := splitLen(r.Height, ratio)
	return [2]Rect{
		{X: r.X, Y: r.Y, Width: r.Width, Height: a},
		{X: r.X, Y: r.Y + a, Width: r.Width, Height: b},
	}
}

// splitLen divides n cells by percentage. When the ratio covers 100% the
// rounding remainder goes to the second pane so no cell is lost.
func splitLen(n int, ratio Ratio) (int, int) {
	if n <= 0 {
		return 0, 0
	}
	a := n * ratio.First / 100
	b := n * ratio.Second / 100
	if ratio.First+ratio.Second >= 100 {
		b = n - a
	}
	return a, b
}
