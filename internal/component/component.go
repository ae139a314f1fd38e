// Package component defines the contract between a UI component and the loop
// that draws it and feeds it input.
package component

import tea "github.com/charmbracelet/bubbletea"

// Message tells the dispatch loop what a component wants after handling input.
type Message int

const (
	Idle Message = iota
	Exit
	ShowModal
	Back
)

func (m Message) String() string {
	switch m {
	case Idle:
		return "idle"
	case Exit:
		return "exit"
	case ShowModal:
		return "show-modal"
	case Back:
		return "back"
	default:
		return "unknown"
	}
}

// Component draws itself into a width x height area and handles keys while
// focused. dim asks the component to render grayed out because another
// component has focus.
type Component interface {
	View(width, height int, dim bool) string
	HandleKey(msg tea.KeyMsg) (Message, error)
}

// MouseHandler is implemented by components that react to the mouse. x and
// y are relative to the component's area.
type MouseHandler interface {
	HandleMouse(msg tea.MouseMsg, x, y int) (Message, error)
}

// Updater is implemented by components that consume non-input messages
// (async results, ticks, file change notifications).
type Updater interface {
	Update(msg tea.Msg) tea.Cmd
}

// Initializer is implemented by components that start background work.
type Initializer interface {
	Init() tea.Cmd
}
