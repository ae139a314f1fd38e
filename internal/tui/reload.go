package tui

import (
	"context"
	"log/slog"

	"tuikit/internal/config"
	"tuikit/internal/keys"
	"tuikit/internal/watch"

	tea "github.com/charmbracelet/bubbletea"
)

type keymapReloadedMsg struct {
	path   string
	keymap *keys.Keymap
	next   tea.Cmd
}

type configReloadFailedMsg struct {
	err  error
	next tea.Cmd
}

// watchConfig returns a command that waits for the next change of the config
// file and reports the reloaded keymap. Each result carries the command that
// waits for the change after it.
func watchConfig(path string, log *slog.Logger) tea.Cmd {
	w, err := watch.New(path, 0)
	if err != nil {
		// No file yet: nothing to follow until the next start.
		log.Debug("config watch disabled", "path", path, "err", err)
		return nil
	}
	changes := make(chan struct{}, 1)
	go func() {
		err := w.Run(context.Background(), func(watch.Event) {
			select {
			case changes <- struct{}{}:
			default:
			}
		})
		if err != nil {
			log.Debug("config watch stopped", "path", path, "err", err)
		}
		close(changes)
	}()

	var wait tea.Cmd
	wait = func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return reloadKeymap(path, wait)
	}
	return wait
}

func reloadKeymap(path string, next tea.Cmd) tea.Msg {
	cfg, err := config.Load(path)
	if err != nil {
		return configReloadFailedMsg{err: err, next: next}
	}
	km, err := cfg.Keymap()
	if err != nil {
		return configReloadFailedMsg{err: err, next: next}
	}
	return keymapReloadedMsg{path: path, keymap: km, next: next}
}
