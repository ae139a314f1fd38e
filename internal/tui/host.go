// Package tui hosts components in a bubbletea program and provides the
// demo components: a store-backed list, a split view, a focus-delegation
// pair, a file browser and a help overlay.
package tui

import (
	"errors"
	"log/slog"
	"strings"

	"tuikit/internal/component"
	"tuikit/internal/keys"
	"tuikit/internal/layout"
	"tuikit/internal/style"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

type focusTarget int

const (
	focusMain focusTarget = iota
	focusModal
)

// StatusMsg replaces the footer with a one-line message until the next key.
type StatusMsg struct {
	Text string
	Err  bool
}

// Host is the draw and input dispatch loop. It routes keys to the focused
// component and acts on the component.Message each one returns.
type Host struct {
	main  component.Component
	modal component.Component
	focus focusTarget

	keys *keys.Keymap
	help help.Model
	log  *slog.Logger

	configPath string

	width, height int
	status        StatusMsg
	quitting      bool
}

type HostOption func(*Host)

// WithModal sets the component shown when the main one asks for
// component.ShowModal.
func WithModal(c component.Component) HostOption { return func(h *Host) { h.modal = c } }

func WithLogger(l *slog.Logger) HostOption {
	return func(h *Host) {
		if l != nil {
			h.log = l
		}
	}
}

// WithConfigWatch reloads the keymap whenever the config file at path
// changes.
func WithConfigWatch(path string) HostOption { return func(h *Host) { h.configPath = path } }

func NewHost(main component.Component, km *keys.Keymap, opts ...HostOption) *Host {
	if km == nil {
		km = keys.Default()
	}
	h := &Host{
		main: main,
		keys: km,
		help: help.New(),
		log:  slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

func (h *Host) Init() tea.Cmd {
	var cmds []tea.Cmd
	for _, c := range []component.Component{h.main, h.modal} {
		if in, ok := c.(component.Initializer); ok {
			cmds = append(cmds, in.Init())
		}
	}
	if h.configPath != "" {
		cmds = append(cmds, watchConfig(h.configPath, h.log))
	}
	return tea.Batch(cmds...)
}

func (h *Host) focused() component.Component {
	if h.focus == focusModal && h.modal != nil {
		return h.modal
	}
	return h.main
}

func (h *Host) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h.width, h.height = msg.Width, msg.Height
		h.help.Width = msg.Width
		return h, nil

	case StatusMsg:
		h.status = msg
		return h, nil

	case keymapReloadedMsg:
		h.keys.Replace(msg.keymap)
		h.status = StatusMsg{Text: "keymap reloaded"}
		h.log.Debug("keymap reloaded", "path", msg.path)
		return h, msg.next

	case configReloadFailedMsg:
		h.status = StatusMsg{Text: msg.err.Error(), Err: true}
		h.log.Debug("config reload failed", "err", msg.err)
		return h, msg.next

	case tea.KeyMsg:
		h.status = StatusMsg{}
		out, err := h.focused().HandleKey(msg)
		h.log.Debug("key", "key", msg.String(), "focus", h.focus, "msg", out)
		return h, h.dispatch(out, err)

	case tea.MouseMsg:
		mh, ok := h.focused().(component.MouseHandler)
		if !ok {
			return h, nil
		}
		area := h.focusedArea()
		if !area.Contains(msg.X, msg.Y) {
			return h, nil
		}
		out, err := mh.HandleMouse(msg, msg.X-area.X, msg.Y-area.Y)
		return h, h.dispatch(out, err)
	}

	var cmds []tea.Cmd
	for _, c := range []component.Component{h.main, h.modal} {
		if u, ok := c.(component.Updater); ok {
			cmds = append(cmds, u.Update(msg))
		}
	}
	return h, tea.Batch(cmds...)
}

// dispatch applies a component's answer. Errors become a status line
// diagnostic and the loop keeps running.
func (h *Host) dispatch(out component.Message, err error) tea.Cmd {
	if err != nil {
		h.status = StatusMsg{Text: err.Error(), Err: true}
		h.log.Debug("component error", "err", err)
		return nil
	}
	switch out {
	case component.Exit:
		h.quitting = true
		return tea.Quit
	case component.ShowModal:
		if h.modal == nil {
			h.status = StatusMsg{Text: errNoModal.Error(), Err: true}
			return nil
		}
		h.focus = focusModal
	case component.Back:
		h.focus = focusMain
	}
	return nil
}

var errNoModal = errors.New("no modal to show")

func (h *Host) bodyArea() layout.Rect {
	return layout.Area(h.width, max(h.height-1, 0))
}

func (h *Host) focusedArea() layout.Rect {
	body := h.bodyArea()
	if h.focus == focusModal && h.modal != nil {
		return layout.Centered(body)
	}
	return body
}

// ModalFocused reports whether input currently goes to the modal.
func (h *Host) ModalFocused() bool { return h.focus == focusModal && h.modal != nil }

func (h *Host) View() string {
	if h.quitting || h.width <= 0 || h.height <= 0 {
		return ""
	}
	body := h.bodyArea()
	modal := h.ModalFocused()
	out := h.main.View(body.Width, body.Height, modal)
	if modal {
		at := layout.Centered(body)
		out = layout.Overlay(out, h.modal.View(at.Width, at.Height, false), at)
	}
	return lipgloss.JoinVertical(lipgloss.Left, layout.NormalizePane(out, body.Width, body.Height), h.footer())
}

func (h *Host) footer() string {
	if h.status.Text != "" {
		line := strings.ReplaceAll(h.status.Text, "\n", " ")
		st := style.StatusLine()
		if h.status.Err {
			line = style.Error().Render("error: " + line)
		}
		return st.Width(h.width).MaxHeight(1).Render(xansi.Truncate(line, max(h.width-2, 0), "…"))
	}
	return xansi.Truncate(h.help.ShortHelpView(h.keys.ShortHelp()), h.width, "…")
}
