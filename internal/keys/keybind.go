// Package keys describes key bindings and matches them against key events.
//
// Chords are written in bubbletea's textual form ("ctrl+c", "up", "t", " ").
// The same chords are produced for tcell events through FromTcell, so a
// component can be driven by either event loop.
package keys

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Keybind is one action's set of chords.
type Keybind struct {
	binding key.Binding
}

// New returns a binding for chords. desc is shown in help views.
func New(desc string, chords ...string) Keybind {
	chords = normalizeChords(chords)
	help := ""
	if len(chords) > 0 {
		help = Glyph(chords[0])
	}
	return Keybind{binding: key.NewBinding(
		key.WithKeys(chords...),
		key.WithHelp(help, desc),
	)}
}

// Matches reports whether msg is one of the bound chords.
func (k Keybind) Matches(msg tea.KeyMsg) bool {
	return key.Matches(msg, k.binding)
}

// MatchesString matches a chord given in textual form.
func (k Keybind) MatchesString(chord string) bool {
	if !k.binding.Enabled() {
		return false
	}
	return slices.Contains(k.binding.Keys(), normalizeChord(chord))
}

func (k Keybind) Chords() []string { return k.binding.Keys() }

func (k Keybind) Desc() string { return k.binding.Help().Desc }

func (k Keybind) Binding() key.Binding { return k.binding }

// withChords returns a copy bound to chords, keeping the description.
func (k Keybind) withChords(chords ...string) Keybind {
	return New(k.Desc(), chords...)
}

// String renders the first chord as a glyph, e.g. "^c" or "⏎".
func (k Keybind) String() string {
	chords := k.binding.Keys()
	if len(chords) == 0 {
		return ""
	}
	return Glyph(chords[0])
}

// Equal reports whether both bindings accept the same chords.
func (k Keybind) Equal(other Keybind) bool {
	a := slices.Clone(k.binding.Keys())
	b := slices.Clone(other.binding.Keys())
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(a, b)
}

func normalizeChords(chords []string) []string {
	out := make([]string, 0, len(chords))
	for _, c := range chords {
		c = normalizeChord(c)
		if c == "" || slices.Contains(out, c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// normalizeChord maps config spellings onto bubbletea's key names.
func normalizeChord(c string) string {
	if c == " " {
		return c
	}
	c = strings.TrimSpace(c)
	lower := strings.ToLower(c)
	switch lower {
	case "space", "spacebar":
		return " "
	case "escape":
		return "esc"
	case "return":
		return "enter"
	case "pageup":
		return "pgup"
	case "pagedown":
		return "pgdown"
	case "backtab":
		return "shift+tab"
	}
	// Modifier prefixes are case-insensitive, the key itself is not ("G" != "g").
	mods, base := splitMods(c)
	if len(mods) == 0 {
		if len([]rune(base)) == 1 {
			return base
		}
		return strings.ToLower(base)
	}
	if len([]rune(base)) > 1 {
		base = strings.ToLower(base)
	}
	return strings.Join(mods, "+") + "+" + base
}

func splitMods(c string) (mods []string, base string) {
	base = c
	for {
		i := strings.Index(base, "+")
		if i <= 0 || i == len(base)-1 {
			return mods, base
		}
		m := strings.ToLower(base[:i])
		switch m {
		case "ctrl", "alt", "shift":
			mods = append(mods, m)
			base = base[i+1:]
		default:
			return mods, base
		}
	}
}

// UnknownActionError is returned when a keymap override names an action
// the keymap does not have.
type UnknownActionError struct {
	Action string
}

func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("unknown key action %q", e.Action)
}
