package tui

import (
	"log/slog"
	"strings"

	"tuikit/internal/component"
	"tuikit/internal/keys"
	"tuikit/internal/layout"
	"tuikit/internal/term"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// RunTcellList drives list with a tcell session instead of bubbletea: draw,
// poll with a timeout, dispatch. It returns when the list asks to exit or
// on the first terminal error; component errors are shown in the status
// row.
func RunTcellList(sess *term.Session, list *ListView, km *keys.Keymap, log *slog.Logger) error {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	help := NewHelpView(km)
	helpOpen := false
	status := ""
	screen := sess.Screen()

	for {
		screen.Clear()
		w, h := screen.Size()
		body := layout.Area(w, max(h-1, 0))
		drawList(screen, list, body)
		if helpOpen {
			drawHelp(screen, km, layout.Centered(body))
		}
		drawStatus(screen, h-1, w, status, km)
		screen.Show()

		ev, err := sess.PollEvent(term.EventTimeout)
		if err != nil {
			return err
		}
		var (
			out  component.Message
			herr error
		)
		switch ev := ev.(type) {
		case nil:
			continue
		case *tcell.EventResize:
			screen.Sync()
			continue
		case *tcell.EventKey:
			msg, ok := keys.FromTcell(ev)
			if !ok {
				continue
			}
			status = ""
			if helpOpen {
				out, herr = help.HandleKey(msg)
			} else {
				out, herr = list.HandleKey(msg)
			}
			log.Debug("tcell key", "key", msg.String(), "msg", out)
		case *tcell.EventMouse:
			if helpOpen {
				continue
			}
			x, y := ev.Position()
			mm, ok := mouseFromTcell(ev.Buttons())
			if !ok || !body.Contains(x, y) {
				continue
			}
			mm.X, mm.Y = x, y
			out, herr = list.HandleMouse(mm, x-body.X, y-body.Y)
		default:
			continue
		}

		if herr != nil {
			status = herr.Error()
			continue
		}
		switch out {
		case component.Exit:
			return nil
		case component.ShowModal:
			helpOpen = true
		case component.Back:
			helpOpen = false
		}
	}
}

func mouseFromTcell(b tcell.ButtonMask) (tea.MouseMsg, bool) {
	switch {
	case b&tcell.WheelUp != 0:
		return tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress}, true
	case b&tcell.WheelDown != 0:
		return tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress}, true
	case b&tcell.Button1 != 0:
		return tea.MouseMsg{Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}, true
	}
	return tea.MouseMsg{}, false
}

// drawText writes s from x, stopping before it would pass limit. It returns
// the column after the last cell written.
func drawText(s tcell.Screen, x, y, limit int, text string, st tcell.Style) int {
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > limit {
			break
		}
		s.SetContent(x, y, r, nil, st)
		x += w
	}
	return x
}

func drawBox(s tcell.Screen, r layout.Rect, title string, st tcell.Style) {
	if r.Width < 2 || r.Height < 2 {
		return
	}
	right, bottom := r.X+r.Width-1, r.Y+r.Height-1
	for x := r.X + 1; x < right; x++ {
		s.SetContent(x, r.Y, tcell.RuneHLine, nil, st)
		s.SetContent(x, bottom, tcell.RuneHLine, nil, st)
	}
	for y := r.Y + 1; y < bottom; y++ {
		s.SetContent(r.X, y, tcell.RuneVLine, nil, st)
		s.SetContent(right, y, tcell.RuneVLine, nil, st)
	}
	s.SetContent(r.X, r.Y, tcell.RuneULCorner, nil, st)
	s.SetContent(right, r.Y, tcell.RuneURCorner, nil, st)
	s.SetContent(r.X, bottom, tcell.RuneLLCorner, nil, st)
	s.SetContent(right, bottom, tcell.RuneLRCorner, nil, st)
	drawText(s, r.X+1, r.Y, right, title, st)
}

func fill(s tcell.Screen, r layout.Rect) {
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			s.SetContent(x, y, ' ', nil, tcell.StyleDefault)
		}
	}
}

func drawList(s tcell.Screen, list *ListView, r layout.Rect) {
	drawBox(s, r, list.title, tcell.StyleDefault)
	inner := r.Inner()
	listH := inner.Height
	if list.prompting && listH > 0 {
		listH--
		drawText(s, inner.X, inner.Y+listH, inner.X+inner.Width, list.prompt.Prompt+list.prompt.Value()+"_", tcell.StyleDefault.Bold(true))
	}
	rows := list.VisibleRows(listH)
	if len(list.items) == 0 && inner.Height > 0 {
		drawText(s, inner.X, inner.Y, inner.X+inner.Width, "(empty)", tcell.StyleDefault.Dim(true))
	}
	highlight := tcell.StyleDefault.Background(tcell.PaletteColor(8)).Foreground(tcell.ColorWhite).Bold(true)
	for i, row := range rows {
		y := inner.Y + i
		if row.Selected {
			end := drawText(s, inner.X, y, inner.X+inner.Width, "> "+row.Text, highlight)
			for x := end; x < inner.X+inner.Width; x++ {
				s.SetContent(x, y, ' ', nil, highlight)
			}
			continue
		}
		drawText(s, inner.X, y, inner.X+inner.Width, "  "+row.Text, tcell.StyleDefault)
	}
}

func drawHelp(s tcell.Screen, km *keys.Keymap, r layout.Rect) {
	fill(s, r)
	drawBox(s, r, "Help", tcell.StyleDefault.Bold(true))
	inner := r.Inner()
	for i, a := range keys.Actions() {
		if i >= inner.Height {
			break
		}
		kb, _ := km.Lookup(a)
		glyphs := make([]string, 0, len(kb.Chords()))
		for _, c := range kb.Chords() {
			glyphs = append(glyphs, keys.Glyph(c))
		}
		drawText(s, inner.X, inner.Y+i, inner.X+inner.Width, kb.Desc()+": "+strings.Join(glyphs, " "), tcell.StyleDefault)
	}
}

func drawStatus(s tcell.Screen, y, width int, status string, km *keys.Keymap) {
	if y < 0 {
		return
	}
	if status != "" {
		drawText(s, 0, y, width, "error: "+status, tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true))
		return
	}
	hint := km.Quit.String() + " quit  " + km.Help.String() + " help  " + km.Add.String() + " add"
	drawText(s, 0, y, width, hint, tcell.StyleDefault.Dim(true))
}
