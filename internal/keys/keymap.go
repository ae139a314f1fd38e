package keys

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// Action names used by config files.
const (
	ActionQuit     = "quit"
	ActionUp       = "up"
	ActionDown     = "down"
	ActionFirst    = "first"
	ActionLast     = "last"
	ActionPageUp   = "page_up"
	ActionPageDown = "page_down"
	ActionAdd      = "add"
	ActionRemove   = "remove"
	ActionDeselect = "deselect"
	ActionOpen     = "open"
	ActionBack     = "back"
	ActionFocus    = "focus"
	ActionHelp     = "help"
	ActionMoveUp   = "move_up"
	ActionMoveDown = "move_down"
)

// Keymap holds every binding the components understand. Build one with
// Default and hand the same pointer to every component, so an override
// applied once is seen everywhere.
type Keymap struct {
	Quit     Keybind
	Up       Keybind
	Down     Keybind
	First    Keybind
	Last     Keybind
	PageUp   Keybind
	PageDown Keybind
	Add      Keybind
	Remove   Keybind
	Deselect Keybind
	Open     Keybind
	Back     Keybind
	Focus    Keybind
	Help     Keybind
	MoveUp   Keybind
	MoveDown Keybind
}

func Default() *Keymap {
	return &Keymap{
		Quit:     New("quit", "esc", "q", "ctrl+c"),
		Up:       New("up", "up", "k"),
		Down:     New("down", "down", "j"),
		First:    New("top", "t", "home", "g"),
		Last:     New("bottom", "b", "end", "G"),
		PageUp:   New("page up", "pgup", "ctrl+u"),
		PageDown: New("page down", "pgdown", "ctrl+d"),
		Add:      New("add", "a", "+"),
		Remove:   New("remove", "x", "delete"),
		Deselect: New("deselect", "u"),
		Open:     New("open", "enter", " ", "o"),
		Back:     New("back", "backspace", "h"),
		Focus:    New("focus", "tab"),
		Help:     New("help", "?"),
		MoveUp:   New("move up", "shift+up", "K"),
		MoveDown: New("move down", "shift+down", "J"),
	}
}

func (km *Keymap) fields() map[string]*Keybind {
	return map[string]*Keybind{
		ActionQuit:     &km.Quit,
		ActionUp:       &km.Up,
		ActionDown:     &km.Down,
		ActionFirst:    &km.First,
		ActionLast:     &km.Last,
		ActionPageUp:   &km.PageUp,
		ActionPageDown: &km.PageDown,
		ActionAdd:      &km.Add,
		ActionRemove:   &km.Remove,
		ActionDeselect: &km.Deselect,
		ActionOpen:     &km.Open,
		ActionBack:     &km.Back,
		ActionFocus:    &km.Focus,
		ActionHelp:     &km.Help,
		ActionMoveUp:   &km.MoveUp,
		ActionMoveDown: &km.MoveDown,
	}
}

// actionOrder is the order used by Actions and the help views.
var actionOrder = []string{
	ActionUp, ActionDown, ActionPageUp, ActionPageDown, ActionFirst, ActionLast,
	ActionAdd, ActionRemove, ActionMoveUp, ActionMoveDown, ActionDeselect, ActionOpen, ActionBack, ActionFocus,
	ActionHelp, ActionQuit,
}

func Actions() []string {
	out := make([]string, len(actionOrder))
	copy(out, actionOrder)
	return out
}

// Lookup returns the binding for an action name.
func (km *Keymap) Lookup(action string) (Keybind, bool) {
	f, ok := km.fields()[normalizeAction(action)]
	if !ok {
		return Keybind{}, false
	}
	return *f, true
}

// Apply replaces the chords of the named actions. Nothing is changed if any
// action is unknown. An empty chord list unbinds the action.
func (km *Keymap) Apply(overrides map[string][]string) error {
	fields := km.fields()
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, ok := fields[normalizeAction(name)]; !ok {
			return &UnknownActionError{Action: name}
		}
	}
	for _, name := range names {
		f := fields[normalizeAction(name)]
		*f = f.withChords(overrides[name]...)
	}
	return nil
}

// Clone returns an independent copy.
func (km *Keymap) Clone() *Keymap {
	c := *km
	return &c
}

// Replace copies other's bindings into km in place, so holders of km see
// the new bindings.
func (km *Keymap) Replace(other *Keymap) {
	*km = *other
}

func normalizeAction(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "_", " ", "_").Replace(s)
}

// ShortHelp implements help.KeyMap.
func (km *Keymap) ShortHelp() []key.Binding {
	return []key.Binding{
		km.Up.Binding(), km.Down.Binding(), km.Add.Binding(), km.Help.Binding(), km.Quit.Binding(),
	}
}

// FullHelp implements help.KeyMap.
func (km *Keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{km.Up.Binding(), km.Down.Binding(), km.PageUp.Binding(), km.PageDown.Binding()},
		{km.First.Binding(), km.Last.Binding(), km.Deselect.Binding()},
		{km.Add.Binding(), km.Remove.Binding(), km.MoveUp.Binding(), km.MoveDown.Binding()},
		{km.Open.Binding(), km.Back.Binding()},
		{km.Focus.Binding(), km.Help.Binding(), km.Quit.Binding()},
	}
}
