package cli

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"tuikit/internal/config"
	"tuikit/internal/keys"
	"tuikit/internal/state"
	"tuikit/internal/style"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type App struct {
	ConfigPath string
	Wrap       string
	DebugLog   string
	Format     string
	Pretty     bool

	cfg      *config.Config
	log      *slog.Logger
	logClose func() error

	// isTTY is swapped in tests.
	isTTY func() bool
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&App{isTTY: stdoutIsTerminal})
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "tuikit",
		Short:        "Terminal UI building blocks and their demos",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Browse the item list (same as: tuikit list)
  tuikit

  # Start with the 10th item selected, never wrapping at the edges
  tuikit list --select 9 --wrap clamp

  # Drive the list through tcell instead of bubbletea
  tuikit list --backend tcell

  # Scriptable item commands
  tuikit items add "Buy milk"
  tuikit items list --format json
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runList(cmd, app, listOptions{selectIndex: -1, backend: backendBubbletea})
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setup(cmd.Flags())
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return app.teardown()
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr(config.EnvConfig, ""), "Config file (default: $XDG_CONFIG_HOME/tuikit/config.toml)")
	cmd.PersistentFlags().StringVar(&app.Wrap, "wrap", "", "Selection wrap policy at the list edges (wrap|clamp)")
	cmd.PersistentFlags().StringVar(&app.DebugLog, "debug-log", envOr("TUIKIT_DEBUG_LOG", ""), "Append debug logs to this file")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("TUIKIT_FORMAT", "text"), "Output format for scriptable commands (text|json|toml)")
	cmd.PersistentFlags().BoolVar(&app.Pretty, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newSplitCmd(app))
	cmd.AddCommand(newFocusCmd(app))
	cmd.AddCommand(newBrowseCmd(app))
	cmd.AddCommand(newKeysCmd(app))
	cmd.AddCommand(newItemsCmd(app))
	cmd.AddCommand(newConfigCmd(app))

	return cmd
}

// setup loads the config, applies flag overrides and opens the debug log.
func (app *App) setup(flags *pflag.FlagSet) error {
	cfg, err := config.Load(config.ResolvePath(app.ConfigPath))
	if err != nil {
		return err
	}
	if flags.Changed("wrap") {
		if _, err := state.ParseWrapPolicy(app.Wrap); err != nil {
			return &flagError{flag: "wrap", err: err}
		}
		cfg.Wrap = app.Wrap
	}
	app.cfg = cfg

	log, closeLog, err := openDebugLog(app.DebugLog)
	if err != nil {
		return err
	}
	app.log, app.logClose = log, closeLog
	app.log.Debug("start", "config", cfg.Path, "wrap", cfg.WrapPolicy(), "args", os.Args[1:])

	keys.SetGlyphs(cfg.GlyphSet())
	style.ApplyThemePreference(cfg.Theme)
	return nil
}

func (app *App) teardown() error {
	if app.logClose == nil {
		return nil
	}
	err := app.logClose()
	app.logClose = nil
	return err
}

func (app *App) keymap() (*keys.Keymap, error) {
	return app.cfg.Keymap()
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// openDebugLog returns a debug level text logger appending to path, or a
// discarding logger when path is empty. A TUI owns stdout, so logs go to a
// file.
func openDebugLog(path string) (*slog.Logger, func() error, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return slog.New(slog.DiscardHandler), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, &flagError{flag: "debug-log", err: err}
	}
	return newTextLogger(f), f.Close, nil
}

func newTextLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
