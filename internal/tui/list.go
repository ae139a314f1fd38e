package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"tuikit/internal/blocks"
	"tuikit/internal/component"
	"tuikit/internal/keys"
	"tuikit/internal/state"
	"tuikit/internal/store"
	"tuikit/internal/style"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Items is the collection behind a ListView. *store.DB implements it.
type Items interface {
	List(ctx context.Context) ([]store.Item, error)
	Add(ctx context.Context, title string) (store.Item, error)
	Remove(ctx context.Context, id string) error
	Move(ctx context.Context, id string, delta int) (int, error)
}

// Row is one visible line of a list.
type Row struct {
	Index    int
	Text     string
	Selected bool
}

// ListView is a scrolling, selectable list of items.
type ListView struct {
	ctx   context.Context
	title string
	src   Items
	items []store.Item
	sel   *state.BoundedSelection
	keys  *keys.Keymap
	log   *slog.Logger

	offset int
	// rows is the number of item rows drawn last; paging moves by it.
	rows int

	prompt    textinput.Model
	prompting bool
}

// NewListView loads the items from src and selects initial when it is >= 0.
func NewListView(ctx context.Context, title string, src Items, km *keys.Keymap, wrap state.WrapPolicy, initial int, log *slog.Logger) (*ListView, error) {
	items, err := src.List(ctx)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	sel := state.NewFromLen(len(items), wrap)
	if initial >= 0 {
		if err := sel.Select(initial); err != nil {
			return nil, fmt.Errorf("initial selection: %w", err)
		}
	}
	ti := textinput.New()
	ti.Prompt = "title: "
	ti.Placeholder = "new item"
	ti.CharLimit = 200
	return &ListView{
		ctx:    ctx,
		title:  title,
		src:    src,
		items:  items,
		sel:    sel,
		keys:   km,
		log:    log,
		rows:   10,
		prompt: ti,
	}, nil
}

func (l *ListView) Selection() *state.BoundedSelection { return l.sel }

func (l *ListView) Items() []store.Item { return l.items }

func (l *ListView) Prompting() bool { return l.prompting }

// SelectedItem returns the highlighted item, if any.
func (l *ListView) SelectedItem() (store.Item, bool) {
	i, ok := l.sel.Selected()
	if !ok || i < 0 || i >= len(l.items) {
		return store.Item{}, false
	}
	return l.items[i], true
}

func (l *ListView) HandleKey(msg tea.KeyMsg) (component.Message, error) {
	if l.prompting {
		return component.Idle, l.handlePromptKey(msg)
	}
	km := l.keys
	switch {
	case km.Quit.Matches(msg):
		return component.Exit, nil
	case km.Help.Matches(msg):
		return component.ShowModal, nil
	case km.Up.Matches(msg):
		l.sel.Prev()
	case km.Down.Matches(msg):
		l.sel.Next()
	case km.PageUp.Matches(msg):
		l.sel.PrevN(l.rows)
	case km.PageDown.Matches(msg):
		l.sel.NextN(l.rows)
	case km.First.Matches(msg):
		l.sel.First()
	case km.Last.Matches(msg):
		l.sel.Last()
	case km.Deselect.Matches(msg):
		l.sel.Deselect()
	case km.Add.Matches(msg):
		l.prompting = true
		l.prompt.SetValue("")
		l.prompt.Focus()
	case km.Remove.Matches(msg):
		return component.Idle, l.removeSelected()
	case km.MoveUp.Matches(msg):
		return component.Idle, l.moveSelected(-1)
	case km.MoveDown.Matches(msg):
		return component.Idle, l.moveSelected(1)
	}
	return component.Idle, nil
}

func (l *ListView) handlePromptKey(msg tea.KeyMsg) error {
	switch msg.Type {
	case tea.KeyEsc:
		l.closePrompt()
		return nil
	case tea.KeyEnter:
		title := strings.TrimSpace(l.prompt.Value())
		l.closePrompt()
		if title == "" {
			return nil
		}
		return l.add(title)
	}
	// Cursor blink commands are dropped; the prompt cursor stays solid.
	l.prompt, _ = l.prompt.Update(msg)
	return nil
}

func (l *ListView) closePrompt() {
	l.prompting = false
	l.prompt.Blur()
	l.prompt.SetValue("")
}

func (l *ListView) add(title string) error {
	it, err := l.src.Add(l.ctx, title)
	if err != nil {
		return err
	}
	l.items = append(l.items, it)
	l.sel.UpdateUpperAndSelect(len(l.items) - 1)
	l.log.Debug("list add", "id", it.ID, "len", len(l.items))
	return nil
}

func (l *ListView) removeSelected() error {
	i, ok := l.sel.Selected()
	if !ok || i >= len(l.items) {
		return nil
	}
	if err := l.src.Remove(l.ctx, l.items[i].ID); err != nil {
		return err
	}
	l.items = append(l.items[:i:i], l.items[i+1:]...)
	l.sel.UpdateBoundaryFromLen(len(l.items))
	l.log.Debug("list remove", "index", i, "len", len(l.items))
	return nil
}

func (l *ListView) moveSelected(delta int) error {
	it, ok := l.SelectedItem()
	if !ok {
		return nil
	}
	to, err := l.src.Move(l.ctx, it.ID, delta)
	if err != nil {
		return err
	}
	items, err := l.src.List(l.ctx)
	if err != nil {
		return err
	}
	l.items = items
	l.sel.UpdateBoundaryFromLen(len(items))
	return l.sel.Select(to)
}

// HandleMouse selects the clicked row and steps on wheel scrolls. x and y
// are relative to the list's block, so row 0 is the top border.
func (l *ListView) HandleMouse(msg tea.MouseMsg, x, y int) (component.Message, error) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		l.sel.Prev()
	case tea.MouseButtonWheelDown:
		l.sel.Next()
	case tea.MouseButtonLeft:
		// Rows 0 and rows+1 are the block's borders.
		if msg.Action != tea.MouseActionPress || y < 1 || y > l.rows {
			return component.Idle, nil
		}
		err := l.sel.Select(l.offset + y - 1)
		if errors.Is(err, state.ErrOutOfBounds) {
			// A click below the last row.
			return component.Idle, nil
		}
		return component.Idle, err
	}
	return component.Idle, nil
}

// VisibleRows scrolls so the selection is in view and returns up to height
// rows.
func (l *ListView) VisibleRows(height int) []Row {
	if height <= 0 {
		return nil
	}
	l.rows = height
	if i, ok := l.sel.Selected(); ok {
		if i < l.offset {
			l.offset = i
		} else if i >= l.offset+height {
			l.offset = i - height + 1
		}
	}
	l.offset = min(l.offset, max(len(l.items)-height, 0))
	l.offset = max(l.offset, 0)

	end := min(l.offset+height, len(l.items))
	rows := make([]Row, 0, end-l.offset)
	for i := l.offset; i < end; i++ {
		rows = append(rows, Row{Index: i, Text: l.items[i].Title, Selected: l.sel.IsSelected(i)})
	}
	return rows
}

func (l *ListView) View(width, height int, dim bool) string {
	innerW, innerH := max(width-2, 0), max(height-2, 0)
	listH := innerH
	if l.prompting {
		listH--
	}

	var lines []string
	if len(l.items) == 0 {
		lines = append(lines, style.Muted().Render("(empty)"))
	}
	for _, r := range l.VisibleRows(listH) {
		if r.Selected && !dim {
			lines = append(lines, style.Highlight().Width(innerW).Render(style.HighlightSymbol+r.Text))
			continue
		}
		lines = append(lines, strings.Repeat(" ", len(style.HighlightSymbol))+r.Text)
	}
	if l.prompting {
		for len(lines) < listH {
			lines = append(lines, "")
		}
		l.prompt.Width = max(innerW-len(l.prompt.Prompt)-1, 1)
		lines = append(lines, l.prompt.View())
	}

	title := l.title
	if i, ok := l.sel.Selected(); ok {
		title = fmt.Sprintf("%s %d/%d", l.title, i+1, len(l.items))
	}
	return blocks.Default(title, style.ColorBorder).Dim(dim).Render(lipgloss.JoinVertical(lipgloss.Left, lines...), width, height)
}
