package tui

import (
	"fmt"
	"strings"

	"tuikit/internal/blocks"
	"tuikit/internal/component"
	"tuikit/internal/keys"
	"tuikit/internal/style"

	tea "github.com/charmbracelet/bubbletea"
)

// HelpView lists every binding of a keymap. It is meant to be shown as a
// modal and returns component.Back on quit, back or help.
type HelpView struct {
	keys *keys.Keymap
}

func NewHelpView(km *keys.Keymap) *HelpView { return &HelpView{keys: km} }

func (v *HelpView) HandleKey(msg tea.KeyMsg) (component.Message, error) {
	if v.keys.Quit.Matches(msg) || v.keys.Back.Matches(msg) || v.keys.Help.Matches(msg) {
		return component.Back, nil
	}
	return component.Idle, nil
}

func (v *HelpView) View(width, height int, dim bool) string {
	body := renderMarkdown(KeymapMarkdown(v.keys), max(width-2, 10))
	return blocks.Bold("Help", style.ColorAccent).Dim(dim).Render(body, width, height)
}

// KeymapMarkdown renders km as a markdown table of actions and chords.
func KeymapMarkdown(km *keys.Keymap) string {
	var b strings.Builder
	b.WriteString("| Action | Keys |\n|---|---|\n")
	for _, a := range keys.Actions() {
		kb, ok := km.Lookup(a)
		if !ok {
			continue
		}
		chords := kb.Chords()
		glyphs := make([]string, 0, len(chords))
		for _, c := range chords {
			glyphs = append(glyphs, "`"+keys.Glyph(c)+"`")
		}
		keysCol := strings.Join(glyphs, " ")
		if keysCol == "" {
			keysCol = "(unbound)"
		}
		fmt.Fprintf(&b, "| %s | %s |\n", kb.Desc(), keysCol)
	}
	return b.String()
}

// RenderKeymap renders km for a terminal width cells wide.
func RenderKeymap(km *keys.Keymap, width int) string {
	return renderMarkdown(KeymapMarkdown(km), width)
}
