package cli

import (
	"strconv"
	"strings"
	"time"

	"tuikit/internal/format"
	"tuikit/internal/store"

	"github.com/spf13/cobra"
)

type itemOut struct {
	ID        string    `json:"id" toml:"id"`
	Title     string    `json:"title" toml:"title"`
	Rank      string    `json:"rank" toml:"rank"`
	CreatedAt time.Time `json:"createdAt" toml:"created_at"`
}

type itemList struct {
	Items []itemOut `json:"items" toml:"items"`
}

func (l itemList) Header() []string { return []string{"#", "ID", "TITLE"} }

func (l itemList) Rows() [][]string {
	rows := make([][]string, 0, len(l.Items))
	for i, it := range l.Items {
		rows = append(rows, []string{strconv.Itoa(i), it.ID, it.Title})
	}
	return rows
}

func toItemOut(it store.Item) itemOut {
	return itemOut{ID: it.ID, Title: it.Title, Rank: it.Rank, CreatedAt: it.CreatedAt}
}

func newItemsCmd(app *App) *cobra.Command {
	var memory bool
	var storePath string
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Scriptable item commands against the store",
	}
	cmd.PersistentFlags().BoolVar(&memory, "memory", false, "Use a throwaway in-memory store")
	cmd.PersistentFlags().StringVar(&storePath, "store", "", "Store file (default from config)")

	withStore := func(run func(cmd *cobra.Command, db *store.DB, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			db, err := app.openStore(cmd.Context(), memory, storePath)
			if err != nil {
				return err
			}
			defer db.Close()
			return run(cmd, db, args)
		}
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List items in order",
		Args:  cobra.NoArgs,
		RunE: withStore(func(cmd *cobra.Command, db *store.DB, args []string) error {
			items, err := db.List(cmd.Context())
			if err != nil {
				return err
			}
			out := itemList{Items: make([]itemOut, 0, len(items))}
			for _, it := range items {
				out.Items = append(out.Items, toItemOut(it))
			}
			return writeOut(cmd, app, out)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add TITLE...",
		Short: "Append an item",
		Args:  cobra.MinimumNArgs(1),
		RunE: withStore(func(cmd *cobra.Command, db *store.DB, args []string) error {
			it, err := db.Add(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return writeOut(cmd, app, itemList{Items: []itemOut{toItemOut(it)}})
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   "Remove an item",
		Args:    cobra.ExactArgs(1),
		RunE: withStore(func(cmd *cobra.Command, db *store.DB, args []string) error {
			return db.Remove(cmd.Context(), args[0])
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "move ID DELTA",
		Short: "Move an item by DELTA positions (negative moves up)",
		Args:  cobra.ExactArgs(2),
		RunE: withStore(func(cmd *cobra.Command, db *store.DB, args []string) error {
			delta, err := strconv.Atoi(args[1])
			if err != nil {
				return &flagError{flag: "delta", err: err}
			}
			to, err := db.Move(cmd.Context(), args[0], delta)
			if err != nil {
				return err
			}
			return writeOut(cmd, app, map[string]any{"id": args[0], "index": to})
		}),
	})

	return cmd
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.Pretty)
}
