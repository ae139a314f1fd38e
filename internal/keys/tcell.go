package keys

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gdamore/tcell/v2"
)

var tcellNamed = map[tcell.Key]tea.KeyType{
	tcell.KeyEnter:      tea.KeyEnter,
	tcell.KeyEsc:        tea.KeyEsc,
	tcell.KeyTab:        tea.KeyTab,
	tcell.KeyBacktab:    tea.KeyShiftTab,
	tcell.KeyBackspace:  tea.KeyBackspace,
	tcell.KeyBackspace2: tea.KeyBackspace,
	tcell.KeyDelete:     tea.KeyDelete,
	tcell.KeyInsert:     tea.KeyInsert,
	tcell.KeyHome:       tea.KeyHome,
	tcell.KeyEnd:        tea.KeyEnd,
	tcell.KeyPgUp:       tea.KeyPgUp,
	tcell.KeyPgDn:       tea.KeyPgDown,
}

type arrowTypes struct{ plain, shift, ctrl tea.KeyType }

var tcellArrows = map[tcell.Key]arrowTypes{
	tcell.KeyUp:    {tea.KeyUp, tea.KeyShiftUp, tea.KeyCtrlUp},
	tcell.KeyDown:  {tea.KeyDown, tea.KeyShiftDown, tea.KeyCtrlDown},
	tcell.KeyLeft:  {tea.KeyLeft, tea.KeyShiftLeft, tea.KeyCtrlLeft},
	tcell.KeyRight: {tea.KeyRight, tea.KeyShiftRight, tea.KeyCtrlRight},
}

// FromTcell translates a tcell key event into the bubbletea key message a
// component expects. ok is false for keys with no bubbletea equivalent.
func FromTcell(ev *tcell.EventKey) (msg tea.KeyMsg, ok bool) {
	mods := ev.Modifiers()
	alt := mods&tcell.ModAlt != 0

	if t, found := tcellNamed[ev.Key()]; found {
		return tea.KeyMsg{Type: t, Alt: alt}, true
	}
	if a, found := tcellArrows[ev.Key()]; found {
		t := a.plain
		switch {
		case mods&tcell.ModCtrl != 0:
			t = a.ctrl
		case mods&tcell.ModShift != 0:
			t = a.shift
		}
		return tea.KeyMsg{Type: t, Alt: alt}, true
	}

	// tcell reports ctrl+letter as the uppercase letter key ('A'..'Z') with
	// ModCtrl; bubbletea numbers them from the C0 codes.
	if k := ev.Key(); k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return tea.KeyMsg{Type: tea.KeyCtrlA + tea.KeyType(k-tcell.KeyCtrlA), Alt: alt}, true
	}

	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if mods&tcell.ModCtrl != 0 && r >= 'a' && r <= 'z' {
			return tea.KeyMsg{Type: tea.KeyCtrlA + tea.KeyType(r-'a'), Alt: alt}, true
		}
		if r == ' ' {
			return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}, Alt: alt}, true
		}
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: alt}, true
	}
	return tea.KeyMsg{}, false
}
