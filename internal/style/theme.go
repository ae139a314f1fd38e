// Package style holds the palette and the shared styles for list rows,
// borders and dimmed (unfocused) components.
//
// The palette must stay readable on both light and dark terminal backgrounds,
// so colors are lipgloss.AdaptiveColor and faint text is only used on dark
// backgrounds (faint text on light terminals often becomes illegible).
package style

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	ColorMuted    lipgloss.TerminalColor = ac("240", "243")
	ColorBorder   lipgloss.TerminalColor = ac("238", "252")
	ColorAccent   lipgloss.TerminalColor = ac("27", "62")
	ColorError    lipgloss.TerminalColor = ac("160", "203")
	ColorStatusBg lipgloss.TerminalColor = ac("252", "236")

	// Indexed 8 is the "bright black" slot; terminals map it to a gray that
	// reads as inactive on both themes.
	ColorDim lipgloss.TerminalColor = lipgloss.Color("8")

	ColorSelectedBg lipgloss.TerminalColor = lipgloss.Color("8")
	ColorSelectedFg lipgloss.TerminalColor = ac("255", "255")
)

// HighlightSymbol prefixes the selected row of a list.
const HighlightSymbol = "> "

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

// Highlight is the style of the selected row in a list.
func Highlight() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(ColorSelectedBg).
		Foreground(ColorSelectedFg).
		Bold(true)
}

func Muted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(ColorMuted))
}

// Dimmed grays out text of a component that does not have focus.
func Dimmed() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorDim)
}

func Error() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorError).Bold(true)
}

func StatusLine() lipgloss.Style {
	return lipgloss.NewStyle().Background(ColorStatusBg).Padding(0, 1)
}

// ApplyColorProfilePreference sets Lip Gloss's color profile for the TUI.
//
// termenv.EnvColorProfile respects CLICOLOR/CLICOLOR_FORCE, which can disable
// colors in a TUI by accident, so only NO_COLOR is honoured and otherwise the
// terminal's capabilities are followed.
func ApplyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(profileFromEnv(termenv.ColorProfile()))
}

// profileFromEnv upgrades the detected profile when TERM/COLORTERM advertise
// more than the detector reports (macOS Terminal.app under-reports).
func profileFromEnv(profile termenv.Profile) termenv.Profile {
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			return termenv.TrueColor
		}
		return profile
	}
	if strings.Contains(term, "256color") && (profile == termenv.Ascii || profile == termenv.ANSI) {
		return termenv.ANSI256
	}
	return profile
}

// ApplyThemePreference configures background detection.
//
// Priority:
// 1) theme argument or TUIKIT_THEME: light|dark|auto
// 2) COLORFGBG heuristic ("fg;bg")
func ApplyThemePreference(theme string) {
	if strings.TrimSpace(theme) == "" {
		theme = os.Getenv("TUIKIT_THEME")
	}
	switch strings.ToLower(strings.TrimSpace(theme)) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}

	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
		}
	}
}
