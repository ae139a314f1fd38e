package cli

import (
	"fmt"

	"tuikit/internal/config"
	"tuikit/internal/keys"
	"tuikit/internal/tui"

	"github.com/spf13/cobra"
	xterm "golang.org/x/term"
)

type binding struct {
	Action string   `json:"action" toml:"action"`
	Desc   string   `json:"desc" toml:"desc"`
	Chords []string `json:"chords" toml:"chords"`
	Glyph  string   `json:"glyph" toml:"glyph"`
}

type bindingList struct {
	Bindings []binding `json:"bindings" toml:"bindings"`
}

func newKeysCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "Show the effective key bindings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			km, err := app.keymap()
			if err != nil {
				return err
			}
			if app.Format == "" || app.Format == "text" {
				width := 80
				if app.isTTY() {
					if w, _, err := xterm.GetSize(1); err == nil && w > 0 {
						width = w
					}
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), tui.RenderKeymap(km, width))
				return err
			}
			out := bindingList{}
			for _, a := range keys.Actions() {
				kb, _ := km.Lookup(a)
				out.Bindings = append(out.Bindings, binding{Action: a, Desc: kb.Desc(), Chords: kb.Chords(), Glyph: kb.String()})
			}
			return writeOut(cmd, app, out)
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), config.ResolvePath(app.ConfigPath))
			return err
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := config.Encode(app.cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	})
	return cmd
}
