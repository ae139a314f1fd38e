package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tuikit/internal/keys"
	"tuikit/internal/state"
	"tuikit/internal/store"
)

// isolate points every config and data location into a temp dir and clears
// the TUIKIT_* overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("HOME", dir)
	for _, k := range []string{"TUIKIT_CONFIG", "TUIKIT_WRAP", "TUIKIT_GLYPHS", "TUIKIT_THEME", "TUIKIT_STORE", "TUIKIT_DEBUG_LOG", "TUIKIT_FORMAT"} {
		t.Setenv(k, "")
	}
	return dir
}

func run(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	if app == nil {
		app = &App{isTTY: func() bool { return false }}
	}
	cmd := newRootCmd(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestItems_AddListRemove(t *testing.T) {
	dir := isolate(t)
	db := filepath.Join(dir, "items.sqlite")

	if _, err := run(t, nil, "items", "add", "--store", db, "Buy", "milk"); err != nil {
		t.Fatalf("items add: %v", err)
	}
	if _, err := run(t, nil, "items", "add", "--store", db, "Walk the dog"); err != nil {
		t.Fatalf("items add: %v", err)
	}

	out, err := run(t, nil, "--format", "json", "items", "list", "--store", db)
	if err != nil {
		t.Fatalf("items list: %v", err)
	}
	var got itemList
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decoding %q: %v", out, err)
	}
	if len(got.Items) != 2 || got.Items[0].Title != "Buy milk" || got.Items[1].Title != "Walk the dog" {
		t.Fatalf("unexpected items: %+v", got.Items)
	}

	if _, err := run(t, nil, "items", "rm", "--store", db, got.Items[0].ID); err != nil {
		t.Fatalf("items rm: %v", err)
	}
	out, err = run(t, nil, "items", "list", "--store", db)
	if err != nil {
		t.Fatalf("items list: %v", err)
	}
	if strings.Contains(out, "Buy milk") || !strings.Contains(out, "Walk the dog") {
		t.Fatalf("unexpected text listing:\n%s", out)
	}
	if !strings.HasPrefix(out, "#") || !strings.Contains(out, "TITLE") {
		t.Fatalf("expected a table header:\n%s", out)
	}
}

func TestItems_RemoveMissing(t *testing.T) {
	dir := isolate(t)
	_, err := run(t, nil, "items", "rm", "--store", filepath.Join(dir, "items.sqlite"), "nope")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound; got %v", err)
	}
}

func TestItems_Move(t *testing.T) {
	dir := isolate(t)
	db := filepath.Join(dir, "items.sqlite")
	for _, title := range []string{"a", "b", "c"} {
		if _, err := run(t, nil, "items", "add", "--store", db, title); err != nil {
			t.Fatalf("items add: %v", err)
		}
	}
	out, err := run(t, nil, "--format", "json", "items", "list", "--store", db)
	if err != nil {
		t.Fatalf("items list: %v", err)
	}
	var got itemList
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decoding: %v", err)
	}

	out, err = run(t, nil, "--format", "json", "items", "move", "--store", db, "--", got.Items[2].ID, "-5")
	if err != nil {
		t.Fatalf("items move: %v", err)
	}
	if !strings.Contains(out, `"index":0`) {
		t.Fatalf("expected the move to clamp at index 0; got %s", out)
	}

	if _, err := run(t, nil, "items", "move", "--store", db, got.Items[0].ID, "x"); err == nil {
		t.Fatalf("expected an error for a non-numeric delta")
	}
}

func TestKeys_JSONHasEveryAction(t *testing.T) {
	isolate(t)
	out, err := run(t, nil, "--format", "json", "keys")
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	var got bindingList
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decoding %q: %v", out, err)
	}
	if len(got.Bindings) != len(keys.Actions()) {
		t.Fatalf("expected %d bindings; got %d", len(keys.Actions()), len(got.Bindings))
	}
	for _, b := range got.Bindings {
		if b.Action == keys.ActionQuit && !containsString(b.Chords, "q") {
			t.Fatalf("expected q among the quit chords; got %v", b.Chords)
		}
	}
}

func TestKeys_ConfigOverridesShow(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[keys]\nquit = [\"ctrl+q\"]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, nil, "--config", path, "--format", "toml", "keys")
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if !strings.Contains(out, "ctrl+q") {
		t.Fatalf("expected the override in the output:\n%s", out)
	}
}

func TestList_SelectOutOfRange(t *testing.T) {
	isolate(t)
	// The selection is checked before the UI starts, so a fake terminal is safe.
	tty := &App{isTTY: func() bool { return true }}
	_, err := run(t, tty, "list", "--memory", "--select", "99")
	if !errors.Is(err, state.ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds; got %v", err)
	}
	var fe *flagError
	if !errors.As(err, &fe) || fe.flag != "select" {
		t.Fatalf("expected a --select flag error; got %v", err)
	}
}

func TestInteractive_NeedsTerminal(t *testing.T) {
	isolate(t)
	for _, args := range [][]string{
		{"list", "--memory", "--select", "3"},
		{"split"},
		{"focus"},
		{"browse", t.TempDir()},
	} {
		_, err := run(t, nil, args...)
		var nt notTerminalError
		if !errors.As(err, &nt) || nt.command != args[0] {
			t.Fatalf("%v: expected notTerminalError; got %v", args, err)
		}
	}
}

func TestList_NoTerminalLeavesStoreUntouched(t *testing.T) {
	dir := isolate(t)
	db := filepath.Join(dir, "items.sqlite")
	_, err := run(t, nil, "list", "--store", db)
	var nt notTerminalError
	if !errors.As(err, &nt) {
		t.Fatalf("expected notTerminalError; got %v", err)
	}
	if _, err := os.Stat(db); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected no store file to be created; stat err = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "data", "tuikit")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected the default data dir untouched; stat err = %v", err)
	}
}

func TestList_UnknownBackend(t *testing.T) {
	isolate(t)
	_, err := run(t, nil, "list", "--memory", "--backend", "curses")
	var fe *flagError
	if !errors.As(err, &fe) || fe.flag != "backend" {
		t.Fatalf("expected a --backend flag error; got %v", err)
	}
}

func TestSplit_BadRatio(t *testing.T) {
	isolate(t)
	_, err := run(t, nil, "split", "--ratio", "3")
	var fe *flagError
	if !errors.As(err, &fe) || fe.flag != "ratio" {
		t.Fatalf("expected a --ratio flag error; got %v", err)
	}
}

func TestRoot_InvalidWrap(t *testing.T) {
	isolate(t)
	_, err := run(t, nil, "--wrap", "bounce", "keys")
	var fe *flagError
	if !errors.As(err, &fe) || fe.flag != "wrap" {
		t.Fatalf("expected a --wrap flag error; got %v", err)
	}
}

func TestConfig_ShowAppliesFlags(t *testing.T) {
	isolate(t)
	t.Setenv("TUIKIT_GLYPHS", "ascii")
	out, err := run(t, nil, "--wrap", "clamp", "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "clamp") || !strings.Contains(out, "ascii") {
		t.Fatalf("expected wrap and glyphs in the dump:\n%s", out)
	}
	t.Cleanup(func() { keys.SetGlyphs(keys.GlyphsUnicode) })
}

func TestConfig_Path(t *testing.T) {
	dir := isolate(t)
	want := filepath.Join(dir, "elsewhere.toml")
	t.Setenv("TUIKIT_CONFIG", want)
	out, err := run(t, nil, "config", "path")
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if strings.TrimSpace(out) != want {
		t.Fatalf("expected %q; got %q", want, out)
	}
}

func TestDebugLog_WritesFile(t *testing.T) {
	dir := isolate(t)
	logPath := filepath.Join(dir, "debug.log")
	if _, err := run(t, nil, "--debug-log", logPath, "items", "list", "--memory"); err != nil {
		t.Fatalf("items list: %v", err)
	}
	b, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("reading debug log: %v", err)
	}
	if !strings.Contains(string(b), "msg=start") {
		t.Fatalf("expected a start record; got:\n%s", b)
	}
}

func containsString(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
