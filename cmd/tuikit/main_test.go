package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectSelectArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"tuikit"},
			want: []string{"tuikit"},
		},
		{
			name: "index first token",
			in:   []string{"tuikit", "4"},
			want: []string{"tuikit", "list", "--select", "4"},
		},
		{
			name: "index after value flag",
			in:   []string{"tuikit", "--wrap", "clamp", "4"},
			want: []string{"tuikit", "--wrap", "clamp", "list", "--select", "4"},
		},
		{
			name: "index after equals flag",
			in:   []string{"tuikit", "--config=./c.toml", "0"},
			want: []string{"tuikit", "--config=./c.toml", "list", "--select", "0"},
		},
		{
			name: "index after bool flag",
			in:   []string{"tuikit", "--pretty", "2"},
			want: []string{"tuikit", "--pretty", "list", "--select", "2"},
		},
		{
			name: "double dash stops rewriting",
			in:   []string{"tuikit", "--", "2"},
			want: []string{"tuikit", "--", "2"},
		},
		{
			name: "negative reads as a flag",
			in:   []string{"tuikit", "-1"},
			want: []string{"tuikit", "-1"},
		},
		{
			name: "subcommand not rewritten",
			in:   []string{"tuikit", "items", "move", "abc", "3"},
			want: []string{"tuikit", "items", "move", "abc", "3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rewriteDirectSelectArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewriteDirectSelectArgs(%q) = %q; want %q", tt.in, got, tt.want)
			}
		})
	}
}
