package layout

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// NormalizePane forces s to be exactly width columns wide (ANSI-aware) and
// height lines tall. This keeps split panes stable when joined side by side.
func NormalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	lines := strings.Split(s, "\n")

	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}

	for i := range lines {
		ln := lines[i]
		// Cut absurdly long lines before measuring them.
		if width > 0 && len(ln) > 8192 {
			ln = cutWithEllipsis(ln, width)
		}

		w := xansi.StringWidth(ln)
		if w > width {
			ln = cutWithEllipsis(ln, width)
			w = xansi.StringWidth(ln)
		}
		if w < width {
			ln += strings.Repeat(" ", width-w)
		}
		lines[i] = ln
	}

	return strings.Join(lines, "\n")
}

func cutWithEllipsis(ln string, width int) string {
	switch {
	case width <= 0:
		return ""
	case width == 1:
		return xansi.Cut(ln, 0, 1)
	default:
		return xansi.Cut(ln, 0, width-1) + "…"
	}
}

// Overlay draws top over base with top's first cell at (at.X, at.Y). Both
// are rendered frames; base keeps its styling outside the covered area.
func Overlay(base, top string, at Rect) string {
	baseLines := strings.Split(base, "\n")
	topLines := strings.Split(top, "\n")
	if at.Height > 0 && len(topLines) > at.Height {
		topLines = topLines[:at.Height]
	}

	for i, tl := range topLines {
		y := at.Y + i
		if y < 0 {
			continue
		}
		for len(baseLines) <= y {
			baseLines = append(baseLines, "")
		}
		bl := baseLines[y]
		tw := xansi.StringWidth(tl)
		if at.Width > 0 && tw > at.Width {
			tl = xansi.Cut(tl, 0, at.Width)
			tw = at.Width
		}

		bw := xansi.StringWidth(bl)
		if bw < at.X {
			bl += strings.Repeat(" ", at.X-bw)
			bw = at.X
		}
		left := xansi.Cut(bl, 0, at.X)
		right := ""
		if bw > at.X+tw {
			right = xansi.Cut(bl, at.X+tw, bw)
		}
		baseLines[y] = left + tl + right
	}
	return strings.Join(baseLines, "\n")
}

// JoinVSplit places rendered panes produced for a VSplit next to each other.
// Each pane is normalised to its rect first so lines align.
func JoinVSplit(panes [2]Rect, left, right string) string {
	l := strings.Split(NormalizePane(left, panes[0].Width, panes[0].Height), "\n")
	r := strings.Split(NormalizePane(right, panes[1].Width, panes[1].Height), "\n")
	n := max(len(l), len(r))
	out := make([]string, n)
	for i := 0; i < n; i++ {
		var a, b string
		if i < len(l) {
			a = l[i]
		} else {
			a = strings.Repeat(" ", panes[0].Width)
		}
		if i < len(r) {
			b = r[i]
		}
		out[i] = a + b
	}
	return strings.Join(out, "\n")
}

// JoinHSplit stacks rendered panes produced for an HSplit.
func JoinHSplit(panes [2]Rect, top, bottom string) string {
	return NormalizePane(top, panes[0].Width, panes[0].Height) + "\n" +
		NormalizePane(bottom, panes[1].Width, panes[1].Height)
}
