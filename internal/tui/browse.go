package tui

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"tuikit/internal/blocks"
	"tuikit/internal/component"
	"tuikit/internal/keys"
	"tuikit/internal/state"
	"tuikit/internal/style"
	"tuikit/internal/watch"

	tea "github.com/charmbracelet/bubbletea"
)

// DirChangedMsg reports that the contents of Dir changed on disk.
type DirChangedMsg struct{ Dir string }

type dirEntry struct {
	name string
	dir  bool
}

type crumb struct {
	dir      string
	selected int
}

// BrowseView walks a directory tree. Each directory gets its own selection
// over its entries; going back restores the parent's selection.
type BrowseView struct {
	dir     string
	entries []dirEntry
	sel     *state.BoundedSelection
	wrap    state.WrapPolicy
	keys    *keys.Keymap
	log     *slog.Logger
	parents []crumb

	changes     chan string
	stopWatcher context.CancelFunc
}

func NewBrowseView(dir string, km *keys.Keymap, wrap state.WrapPolicy, log *slog.Logger) (*BrowseView, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	v := &BrowseView{keys: km, wrap: wrap, log: log, changes: make(chan string, 1)}
	if err := v.enter(abs, 0); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *BrowseView) Dir() string { return v.dir }

func (v *BrowseView) Selection() *state.BoundedSelection { return v.sel }

// SelectedName returns the highlighted entry name.
func (v *BrowseView) SelectedName() (string, bool) {
	i, ok := v.sel.Selected()
	if !ok || i >= len(v.entries) {
		return "", false
	}
	return v.entries[i].name, true
}

func readEntries(dir string) ([]dirEntry, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	out := make([]dirEntry, 0, len(des))
	for _, de := range des {
		out = append(out, dirEntry{name: de.Name(), dir: de.IsDir()})
	}
	// Directories first, then by name.
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].dir != out[j].dir {
			return out[i].dir
		}
		return strings.ToLower(out[i].name) < strings.ToLower(out[j].name)
	})
	return out, nil
}

// enter switches to dir with selected highlighted (clamped to the entries).
func (v *BrowseView) enter(dir string, selected int) error {
	entries, err := readEntries(dir)
	if err != nil {
		return err
	}
	v.dir = dir
	v.entries = entries
	v.sel = state.NewFromLen(len(entries), v.wrap)
	if len(entries) > 0 {
		_ = v.sel.Select(min(max(selected, 0), len(entries)-1))
	}
	v.restartWatcher()
	return nil
}

func (v *BrowseView) restartWatcher() {
	if v.stopWatcher != nil {
		v.stopWatcher()
		v.stopWatcher = nil
	}
	w, err := watch.New(v.dir, 0)
	if err != nil {
		v.log.Debug("browse watch disabled", "dir", v.dir, "err", err)
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	v.stopWatcher = cancel
	dir := v.dir
	go func() {
		_ = w.Run(ctx, func(watch.Event) {
			select {
			case v.changes <- dir:
			default:
			}
		})
	}()
}

// Close stops the directory watcher.
func (v *BrowseView) Close() {
	if v.stopWatcher != nil {
		v.stopWatcher()
		v.stopWatcher = nil
	}
}

func (v *BrowseView) waitForChange() tea.Msg {
	return DirChangedMsg{Dir: <-v.changes}
}

func (v *BrowseView) Init() tea.Cmd { return v.waitForChange }

func (v *BrowseView) Update(msg tea.Msg) tea.Cmd {
	m, ok := msg.(DirChangedMsg)
	if !ok {
		return nil
	}
	if m.Dir == v.dir {
		if err := v.Refresh(); err != nil {
			return func() tea.Msg { return StatusMsg{Text: err.Error(), Err: true} }
		}
	}
	return v.waitForChange
}

// Refresh rereads the current directory, keeping the selected entry
// highlighted when it still exists.
func (v *BrowseView) Refresh() error {
	name, had := v.SelectedName()
	entries, err := readEntries(v.dir)
	if err != nil {
		return err
	}
	v.entries = entries
	v.sel.UpdateBoundaryFromLen(len(entries))
	if had {
		for i, e := range entries {
			if e.name == name {
				_ = v.sel.Select(i)
				break
			}
		}
	}
	v.log.Debug("browse refresh", "dir", v.dir, "len", len(entries))
	return nil
}

func (v *BrowseView) HandleKey(msg tea.KeyMsg) (component.Message, error) {
	km := v.keys
	switch {
	case km.Quit.Matches(msg):
		v.Close()
		return component.Exit, nil
	case km.Help.Matches(msg):
		return component.ShowModal, nil
	case km.Up.Matches(msg):
		v.sel.Prev()
	case km.Down.Matches(msg):
		v.sel.Next()
	case km.PageUp.Matches(msg):
		v.sel.PrevN(10)
	case km.PageDown.Matches(msg):
		v.sel.NextN(10)
	case km.First.Matches(msg):
		v.sel.First()
	case km.Last.Matches(msg):
		v.sel.Last()
	case km.Open.Matches(msg):
		return component.Idle, v.open()
	case km.Back.Matches(msg):
		return component.Idle, v.back()
	}
	return component.Idle, nil
}

func (v *BrowseView) open() error {
	i, ok := v.sel.Selected()
	if !ok || i >= len(v.entries) || !v.entries[i].dir {
		return nil
	}
	from := v.dir
	if err := v.enter(filepath.Join(v.dir, v.entries[i].name), 0); err != nil {
		return err
	}
	v.parents = append(v.parents, crumb{dir: from, selected: i})
	return nil
}

func (v *BrowseView) back() error {
	if n := len(v.parents); n > 0 {
		c := v.parents[n-1]
		if err := v.enter(c.dir, c.selected); err != nil {
			return err
		}
		v.parents = v.parents[:n-1]
		return nil
	}
	parent := filepath.Dir(v.dir)
	if parent == v.dir {
		return nil
	}
	child := filepath.Base(v.dir)
	if err := v.enter(parent, 0); err != nil {
		return err
	}
	for i, e := range v.entries {
		if e.name == child {
			_ = v.sel.Select(i)
			break
		}
	}
	return nil
}

func (v *BrowseView) View(width, height int, dim bool) string {
	innerH := max(height-2, 0)
	var lines []string
	if len(v.entries) == 0 {
		lines = append(lines, style.Muted().Render("(empty)"))
	}
	i, _ := v.sel.Selected()
	offset := 0
	if i >= innerH {
		offset = i - innerH + 1
	}
	for j := offset; j < len(v.entries) && j < offset+innerH; j++ {
		name := v.entries[j].name
		if v.entries[j].dir {
			name += string(filepath.Separator)
		}
		if v.sel.IsSelected(j) && !dim {
			lines = append(lines, style.Highlight().Width(max(width-2, 0)).Render(style.HighlightSymbol+name))
			continue
		}
		lines = append(lines, "  "+name)
	}
	return blocks.Default(v.dir, style.ColorBorder).Dim(dim).Render(strings.Join(lines, "\n"), width, height)
}
