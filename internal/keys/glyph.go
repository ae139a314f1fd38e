package keys

import (
	"os"
	"strings"
	"sync"
)

// GlyphSet selects how chords are drawn in help views. Some fonts render the
// arrow glyphs poorly, so an ASCII set is available.
type GlyphSet int

const (
	GlyphsUnicode GlyphSet = iota
	GlyphsASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = GlyphsUnicode
)

func SetGlyphs(gs GlyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func Glyphs() GlyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

// ParseGlyphSet reads "unicode" or "ascii"; anything else is ok=false.
func ParseGlyphSet(s string) (GlyphSet, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unicode", "utf8":
		return GlyphsUnicode, true
	case "ascii":
		return GlyphsASCII, true
	default:
		return GlyphsUnicode, false
	}
}

// ApplyGlyphPreference honours TUIKIT_GLYPHS. Unknown values are ignored.
func ApplyGlyphPreference() {
	if gs, ok := ParseGlyphSet(os.Getenv("TUIKIT_GLYPHS")); ok {
		SetGlyphs(gs)
	}
}

type glyphPair struct{ unicode, ascii string }

var namedGlyphs = map[string]glyphPair{
	" ":         {"˽", "spc"},
	"tab":       {"⇥", "tab"},
	"shift+tab": {"⇤", "btab"},
	"esc":       {"⎋", "esc"},
	"enter":     {"⏎", "ret"},
	"up":        {"🡹", "up"},
	"down":      {"🡻", "down"},
	"left":      {"🡸", "left"},
	"right":     {"🡺", "right"},
	"backspace": {"⌫", "bs"},
	"pgup":      {"⇞", "pgup"},
	"pgdown":    {"⇟", "pgdn"},
	"home":      {"⇱", "home"},
	"end":       {"⇲", "end"},
}

const unsupportedGlyph = "ⓧ"

// Glyph renders a chord compactly: "⏎" for enter, "^c" for ctrl+c,
// "⇪x" for shift+x. Named keys without a glyph render as "ⓧ".
func Glyph(chord string) string {
	chord = normalizeChord(chord)
	ascii := Glyphs() == GlyphsASCII

	if g, ok := namedGlyphs[chord]; ok {
		if ascii {
			return g.ascii
		}
		return g.unicode
	}

	mods, base := splitMods(chord)
	var k string
	if g, ok := namedGlyphs[base]; ok {
		k = g.unicode
		if ascii {
			k = g.ascii
		}
	} else if len([]rune(base)) == 1 {
		k = base
	} else if ascii {
		k = base
	} else {
		k = unsupportedGlyph
	}

	var prefix strings.Builder
	for _, m := range mods {
		switch m {
		case "ctrl":
			prefix.WriteString("^")
		case "shift":
			if ascii {
				prefix.WriteString("S-")
			} else {
				prefix.WriteString("⇪")
			}
		case "alt":
			if ascii {
				prefix.WriteString("M-")
			} else {
				prefix.WriteString("⌥")
			}
		}
	}
	return prefix.String() + k
}
