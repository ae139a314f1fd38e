package format

import (
	"bytes"
	"strings"
	"testing"
)

type pair struct {
	Name string `json:"name" toml:"name"`
	N    int    `json:"n" toml:"n"`
}

type pairs struct {
	Pairs []pair `json:"pairs" toml:"pairs"`
}

func (p pairs) Header() []string { return []string{"NAME", "N"} }

func (p pairs) Rows() [][]string {
	out := make([][]string, 0, len(p.Pairs))
	for _, x := range p.Pairs {
		out = append(out, []string{x.Name, strings.Repeat("*", x.N)})
	}
	return out
}

func TestWrite_Text(t *testing.T) {
	var buf bytes.Buffer
	v := pairs{Pairs: []pair{{"alpha", 1}, {"b", 3}}}
	if err := Write(&buf, v, "", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := "NAME   N\nalpha  *\nb      ***\n"
	if buf.String() != want {
		t.Fatalf("unexpected text output:\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, pairs{Pairs: []pair{{"a", 1}}}, "json", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := buf.String(); got != "{\"pairs\":[{\"name\":\"a\",\"n\":1}]}\n" {
		t.Fatalf("unexpected json %q", got)
	}
}

func TestWrite_TOML(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, pairs{Pairs: []pair{{"a", 1}}}, "toml", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "[[pairs]]") || !strings.Contains(out, "name = 'a'") {
		t.Fatalf("unexpected toml:\n%s", out)
	}
}

func TestWrite_NonTableFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, map[string]int{"x": 1}, "text", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if buf.String() != "{\"x\":1}\n" {
		t.Fatalf("unexpected %q", buf.String())
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, nil, "edn", false); err == nil {
		t.Fatalf("expected an error")
	}
}
