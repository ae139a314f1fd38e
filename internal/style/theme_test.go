package style

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestProfileFromEnv(t *testing.T) {
	t.Setenv("COLORTERM", "truecolor")
	t.Setenv("TERM", "xterm")
	if got := profileFromEnv(termenv.ANSI256); got != termenv.TrueColor {
		t.Fatalf("expected TrueColor; got %v", got)
	}
	if got := profileFromEnv(termenv.Ascii); got != termenv.Ascii {
		t.Fatalf("expected Ascii kept; got %v", got)
	}

	t.Setenv("COLORTERM", "")
	t.Setenv("TERM", "xterm-256color")
	if got := profileFromEnv(termenv.ANSI); got != termenv.ANSI256 {
		t.Fatalf("expected ANSI256; got %v", got)
	}
}

func TestApplyThemePreference(t *testing.T) {
	prev := lipgloss.HasDarkBackground()
	t.Cleanup(func() { lipgloss.SetHasDarkBackground(prev) })

	ApplyThemePreference("light")
	if lipgloss.HasDarkBackground() {
		t.Fatalf("expected light background")
	}

	t.Setenv("TUIKIT_THEME", "dark")
	ApplyThemePreference("")
	if !lipgloss.HasDarkBackground() {
		t.Fatalf("expected dark background from env")
	}

	t.Setenv("TUIKIT_THEME", "auto")
	t.Setenv("COLORFGBG", "0;15")
	ApplyThemePreference("")
	if lipgloss.HasDarkBackground() {
		t.Fatalf("expected COLORFGBG bg=15 to mean light")
	}
}
