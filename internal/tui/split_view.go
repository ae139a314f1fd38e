package tui

import (
	"tuikit/internal/blocks"
	"tuikit/internal/component"
	"tuikit/internal/keys"
	"tuikit/internal/layout"
	"tuikit/internal/style"

	tea "github.com/charmbracelet/bubbletea"
)

// SplitView shows two titled panes. The focus key flips between a side by
// side and a stacked split; grow and shrink move the divider.
type SplitView struct {
	Left, Right string

	keys    *keys.Keymap
	grow    keys.Keybind
	shrink  keys.Keybind
	ratio   layout.Ratio
	stacked bool
}

func NewSplitView(left, right string, ratio layout.Ratio, km *keys.Keymap) *SplitView {
	return &SplitView{
		Left:   left,
		Right:  right,
		keys:   km,
		grow:   keys.New("grow left pane", "+", "="),
		shrink: keys.New("shrink left pane", "-"),
		ratio:  ratio,
	}
}

func (v *SplitView) Ratio() layout.Ratio { return v.ratio }

func (v *SplitView) Stacked() bool { return v.stacked }

func (v *SplitView) HandleKey(msg tea.KeyMsg) (component.Message, error) {
	switch {
	case v.keys.Quit.Matches(msg):
		return component.Exit, nil
	case v.keys.Focus.Matches(msg):
		v.stacked = !v.stacked
	case v.grow.Matches(msg):
		v.ratio = v.ratio.Grow(10)
	case v.shrink.Matches(msg):
		v.ratio = v.ratio.Grow(-10)
	}
	return component.Idle, nil
}

func (v *SplitView) View(width, height int, dim bool) string {
	area := layout.Area(width, height)
	first, second := "Left", "Right"
	if v.stacked {
		first, second = "Top", "Bottom"
		panes := layout.HSplit(area, v.ratio)
		return layout.JoinHSplit(panes,
			v.pane(first, v.Left, panes[0], dim),
			v.pane(second, v.Right, panes[1], dim))
	}
	panes := layout.VSplit(area, v.ratio)
	return layout.JoinVSplit(panes,
		v.pane(first, v.Left, panes[0], dim),
		v.pane(second, v.Right, panes[1], dim))
}

func (v *SplitView) pane(title, text string, r layout.Rect, dim bool) string {
	return blocks.Default(title+" "+v.ratio.String(), style.ColorBorder).Dim(dim).Render(text, r.Width, r.Height)
}
