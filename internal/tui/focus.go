package tui

import (
	"tuikit/internal/blocks"
	"tuikit/internal/component"
	"tuikit/internal/keys"
	"tuikit/internal/style"

	tea "github.com/charmbracelet/bubbletea"
)

// MainView and ModalView demonstrate focus delegation. Both hold the same
// keymap pointer, so a reload seen by one is seen by the other.
type MainView struct {
	Text string
	keys *keys.Keymap
}

func NewMainView(km *keys.Keymap) *MainView {
	return &MainView{Text: "This is the main component. Press " + km.Open.String() + " to open the modal.", keys: km}
}

func (v *MainView) HandleKey(msg tea.KeyMsg) (component.Message, error) {
	switch {
	case v.keys.Quit.Matches(msg):
		return component.Exit, nil
	case v.keys.Open.Matches(msg):
		return component.ShowModal, nil
	}
	return component.Idle, nil
}

func (v *MainView) View(width, height int, dim bool) string {
	return blocks.Default("Main", style.ColorBorder).Dim(dim).Render(v.Text, width, height)
}

type ModalView struct {
	Text string
	keys *keys.Keymap
}

func NewModalView(km *keys.Keymap) *ModalView {
	return &ModalView{Text: "This is the modal. Press " + km.Quit.String() + " to go back.", keys: km}
}

func (v *ModalView) HandleKey(msg tea.KeyMsg) (component.Message, error) {
	if v.keys.Quit.Matches(msg) || v.keys.Back.Matches(msg) {
		return component.Back, nil
	}
	return component.Idle, nil
}

func (v *ModalView) View(width, height int, dim bool) string {
	return blocks.Bold("Modal", style.ColorAccent).Dim(dim).Render(v.Text, width, height)
}
