// Package term owns terminal setup and teardown for both event loops: the
// bubbletea program runner and a tcell screen session.
package term

import (
	"context"
	"io"

	"tuikit/internal/style"

	tea "github.com/charmbracelet/bubbletea"
)

type runConfig struct {
	ctx       context.Context
	in        io.Reader
	out       io.Writer
	altScreen bool
	mouse     bool
}

type Option func(*runConfig)

func WithContext(ctx context.Context) Option { return func(c *runConfig) { c.ctx = ctx } }

func WithInput(r io.Reader) Option { return func(c *runConfig) { c.in = r } }

func WithOutput(w io.Writer) Option { return func(c *runConfig) { c.out = w } }

// Inline keeps the program in the normal screen buffer.
func Inline() Option { return func(c *runConfig) { c.altScreen = false } }

func WithoutMouse() Option { return func(c *runConfig) { c.mouse = false } }

// programOptions translates opts into bubbletea program options.
func programOptions(opts ...Option) []tea.ProgramOption {
	cfg := runConfig{altScreen: true, mouse: true}
	for _, o := range opts {
		o(&cfg)
	}
	var popts []tea.ProgramOption
	if cfg.altScreen {
		popts = append(popts, tea.WithAltScreen())
	}
	if cfg.mouse {
		popts = append(popts, tea.WithMouseCellMotion())
	}
	if cfg.ctx != nil {
		popts = append(popts, tea.WithContext(cfg.ctx))
	}
	if cfg.in != nil {
		popts = append(popts, tea.WithInput(cfg.in))
	}
	if cfg.out != nil {
		popts = append(popts, tea.WithOutput(cfg.out))
	}
	return popts
}

// Run sets up the terminal, runs m until it quits and restores the terminal,
// returning the final model.
func Run(m tea.Model, opts ...Option) (tea.Model, error) {
	style.ApplyColorProfilePreference()
	out, err := tea.NewProgram(m, programOptions(opts...)...).Run()
	if err != nil {
		return out, &Error{Op: OpRun, Err: err}
	}
	return out, nil
}
