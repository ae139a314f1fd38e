package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"tuikit/internal/component"
	"tuikit/internal/keys"
	"tuikit/internal/layout"
	"tuikit/internal/store"
	"tuikit/internal/term"
	"tuikit/internal/tui"

	"github.com/spf13/cobra"
	xterm "golang.org/x/term"
)

const (
	backendBubbletea = "bubbletea"
	backendTcell     = "tcell"
)

// demoItemCount is how many items an empty store is seeded with.
const demoItemCount = 30

func stdoutIsTerminal() bool {
	return xterm.IsTerminal(int(os.Stdout.Fd()))
}

type listOptions struct {
	selectIndex int
	memory      bool
	storePath   string
	backend     string
}

func newListCmd(app *App) *cobra.Command {
	opts := listOptions{selectIndex: -1}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Selectable item list backed by the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, app, opts)
		},
	}
	cmd.Flags().IntVar(&opts.selectIndex, "select", -1, "Index selected at start (-1 for none)")
	cmd.Flags().BoolVar(&opts.memory, "memory", false, "Use a throwaway in-memory store")
	cmd.Flags().StringVar(&opts.storePath, "store", "", "Store file (default from config)")
	cmd.Flags().StringVar(&opts.backend, "backend", backendBubbletea, "Event loop (bubbletea|tcell)")
	return cmd
}

func (app *App) openStore(ctx context.Context, memory bool, path string) (*store.DB, error) {
	if memory {
		path = store.MemoryPath
	} else if strings.TrimSpace(path) == "" {
		path = app.cfg.StorePath()
	}
	return store.Open(ctx, path, store.WithLogger(app.log))
}

func demoTitles() []string {
	out := make([]string, demoItemCount)
	for i := range out {
		out[i] = fmt.Sprintf("Item %d", i+1)
	}
	return out
}

func runList(cmd *cobra.Command, app *App, opts listOptions) error {
	switch opts.backend {
	case backendBubbletea, backendTcell:
	default:
		return &flagError{flag: "backend", err: fmt.Errorf("unknown backend %q (want bubbletea|tcell)", opts.backend)}
	}
	if !app.isTTY() {
		return notTerminalError{command: "list"}
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	db, err := app.openStore(ctx, opts.memory, opts.storePath)
	if err != nil {
		return err
	}
	defer db.Close()
	if _, err := db.Seed(ctx, demoTitles()); err != nil {
		return err
	}
	km, err := app.keymap()
	if err != nil {
		return err
	}
	list, err := tui.NewListView(ctx, "List", db, km, app.cfg.WrapPolicy(), opts.selectIndex, app.log)
	if err != nil {
		return &flagError{flag: "select", err: err}
	}

	if opts.backend == backendTcell {
		sess, err := term.Init()
		if err != nil {
			return err
		}
		return sess.RestoreWithErr(tui.RunTcellList(sess, list, km, app.log))
	}
	return app.runHost(ctx, list, km, tui.NewHelpView(km))
}

func (app *App) runHost(ctx context.Context, main component.Component, km *keys.Keymap, modal component.Component) error {
	opts := []tui.HostOption{tui.WithLogger(app.log)}
	if modal != nil {
		opts = append(opts, tui.WithModal(modal))
	}
	if app.cfg.Path != "" {
		opts = append(opts, tui.WithConfigWatch(app.cfg.Path))
	}
	_, err := term.Run(tui.NewHost(main, km, opts...), term.WithContext(ctx))
	return err
}

func newSplitCmd(app *App) *cobra.Command {
	var ratio string
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Two panes split by a ratio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := layout.ParseRatio(ratio)
			if err != nil {
				return &flagError{flag: "ratio", err: err}
			}
			km, err := app.keymap()
			if err != nil {
				return err
			}
			if !app.isTTY() {
				return notTerminalError{command: "split"}
			}
			return app.runHost(cmd.Context(), tui.NewSplitView("left side", "right side", r, km), km, nil)
		},
	}
	cmd.Flags().StringVar(&ratio, "ratio", layout.DefaultRatio().String(), "Pane ratio as A:B")
	return cmd
}

func newFocusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "focus",
		Short: "A main view and a modal sharing one keymap",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			km, err := app.keymap()
			if err != nil {
				return err
			}
			if !app.isTTY() {
				return notTerminalError{command: "focus"}
			}
			return app.runHost(cmd.Context(), tui.NewMainView(km), km, tui.NewModalView(km))
		},
	}
}

func newBrowseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "browse [DIR]",
		Short: "Browse a directory tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			km, err := app.keymap()
			if err != nil {
				return err
			}
			v, err := tui.NewBrowseView(dir, km, app.cfg.WrapPolicy(), app.log)
			if err != nil {
				return err
			}
			defer v.Close()
			if !app.isTTY() {
				return notTerminalError{command: "browse"}
			}
			return app.runHost(cmd.Context(), v, km, tui.NewHelpView(km))
		},
	}
}
