// Package format writes command results as text, JSON or TOML.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/pelletier/go-toml/v2"
)

// Table is implemented by results that have a plain text rendering.
type Table interface {
	Header() []string
	Rows() [][]string
}

// Write writes v in the requested format.
//
// Supported formats:
// - text (default; v must implement Table)
// - json
// - toml
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		t, ok := v.(Table)
		if !ok {
			return WriteJSON(w, v, pretty)
		}
		return WriteText(w, t)
	case "json":
		return WriteJSON(w, v, pretty)
	case "toml":
		return WriteTOML(w, v)
	default:
		return fmt.Errorf("unknown format: %s (want text|json|toml)", format)
	}
}

func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// WriteTOML encodes v as a TOML document. v must be a struct or map;
// TOML has no top-level arrays.
func WriteTOML(w io.Writer, v any) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	return enc.Encode(v)
}

// WriteText writes t as aligned, tab separated columns.
func WriteText(w io.Writer, t Table) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if h := t.Header(); len(h) > 0 {
		fmt.Fprintln(tw, strings.Join(h, "\t"))
	}
	for _, r := range t.Rows() {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	return tw.Flush()
}
