// Package blocks draws titled, bordered boxes around component content.
package blocks

import (
	"strings"

	"tuikit/internal/layout"
	"tuikit/internal/style"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// Block is a bordered box with a title in its top edge.
type Block struct {
	Title       string
	BorderColor lipgloss.TerminalColor
	Border      lipgloss.Border
	Bold        bool
	Dimmed      bool
}

// Default returns a block with a plain border in color.
func Default(title string, color lipgloss.TerminalColor) Block {
	return Block{Title: title, BorderColor: color, Border: lipgloss.NormalBorder()}
}

// Bold returns a block with a bold border in color.
func Bold(title string, color lipgloss.TerminalColor) Block {
	b := Default(title, color)
	b.Bold = true
	return b
}

// Dim grays out the border and the content when dim is set.
func (b Block) Dim(dim bool) Block {
	b.Dimmed = dim
	return b
}

func (b Block) borderStyle() lipgloss.Style {
	if b.Dimmed {
		return style.Dimmed()
	}
	st := lipgloss.NewStyle().Bold(b.Bold)
	if b.BorderColor != nil {
		st = st.Foreground(b.BorderColor)
	}
	return st
}

// Render draws content inside the block, sized to exactly width x height
// cells including the border.
func (b Block) Render(content string, width, height int) string {
	if width < 2 || height < 2 {
		return layout.NormalizePane("", max(width, 0), max(height, 0))
	}
	border := b.Border
	if border == (lipgloss.Border{}) {
		border = lipgloss.NormalBorder()
	}
	bs := b.borderStyle()
	innerW, innerH := width-2, height-2

	if b.Dimmed {
		content = style.Dimmed().Render(xansi.Strip(content))
	}
	body := layout.NormalizePane(content, innerW, innerH)

	lines := make([]string, 0, height)
	lines = append(lines, bs.Render(topEdge(border, b.Title, innerW)))
	if innerH > 0 {
		for _, ln := range strings.Split(body, "\n") {
			lines = append(lines, bs.Render(border.Left)+ln+bs.Render(border.Right))
		}
	}
	lines = append(lines, bs.Render(border.BottomLeft+strings.Repeat(border.Bottom, innerW)+border.BottomRight))
	return strings.Join(lines, "\n")
}

func topEdge(border lipgloss.Border, title string, innerW int) string {
	title = strings.TrimSpace(title)
	if title != "" && innerW > 0 {
		if xansi.StringWidth(title) > innerW {
			title = xansi.Cut(title, 0, innerW)
		}
	}
	fill := innerW - xansi.StringWidth(title)
	return border.TopLeft + title + strings.Repeat(border.Top, max(fill, 0)) + border.TopRight
}
