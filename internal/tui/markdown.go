package tui

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"tuikit/internal/style"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

var (
	mdRendererMu sync.Mutex
	// Keyed by style and wrap width. glamour.WithAutoStyle queries the
	// terminal and can block, so the style is picked here instead.
	mdRenderers = map[string]*glamour.TermRenderer{}
)

// renderMarkdown renders md for a pane width cells wide. On any renderer
// failure the source text is returned unchanged.
func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	width = max(width, 10)

	name := markdownStyle()
	key := name + ":" + strconv.Itoa(width)

	mdRendererMu.Lock()
	r := mdRenderers[key]
	mdRendererMu.Unlock()

	if r == nil {
		cfg := markdownStyleConfig(name)
		zero := uint(0)
		cfg.Document.Margin = &zero
		rr, err := glamour.NewTermRenderer(
			glamour.WithStyles(cfg),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		mdRendererMu.Lock()
		if existing := mdRenderers[key]; existing != nil {
			r = existing
		} else {
			mdRenderers[key] = rr
			r = rr
		}
		mdRendererMu.Unlock()
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func markdownStyleConfig(name string) ansi.StyleConfig {
	cfg := styles.DarkStyleConfig
	if name == "light" {
		cfg = styles.LightStyleConfig
	}
	accent := mdColor(style.ColorAccent, name)
	cfg.H1.Color = accent
	cfg.H2.Color = accent
	cfg.Table.Color = mdColor(style.ColorBorder, name)
	return cfg
}

// markdownStyle follows TUIKIT_THEME and falls back to lipgloss's
// background detection.
func markdownStyle() string {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("TUIKIT_THEME"))) {
	case "light":
		return "light"
	case "dark":
		return "dark"
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

func mdColor(c lipgloss.TerminalColor, name string) *string {
	var s string
	switch v := c.(type) {
	case lipgloss.AdaptiveColor:
		s = v.Dark
		if name == "light" {
			s = v.Light
		}
	case lipgloss.Color:
		s = string(v)
	default:
		return nil
	}
	return &s
}
