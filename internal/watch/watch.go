// Package watch reports debounced filesystem changes for a file or
// directory.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces editor save bursts (write + chmod + rename).
const DefaultDebounce = 150 * time.Millisecond

type Op uint8

const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
)

func (o Op) Has(x Op) bool { return o&x != 0 }

func (o Op) String() string {
	var parts []string
	if o.Has(OpCreate) {
		parts = append(parts, "create")
	}
	if o.Has(OpWrite) {
		parts = append(parts, "write")
	}
	if o.Has(OpRemove) {
		parts = append(parts, "remove")
	}
	if o.Has(OpRename) {
		parts = append(parts, "rename")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Event is one debounced batch: every path touched during the quiet window
// and the union of what happened to them.
type Event struct {
	Paths []string
	Op    Op
}

// Watcher follows one path. When the path is a file its parent directory
// is watched and events are filtered to the file, so editors that replace
// the file on save keep being tracked.
type Watcher struct {
	fsw      *fsnotify.Watcher
	target   string
	file     bool
	debounce time.Duration
}

// New starts watching path. debounce <= 0 uses DefaultDebounce.
func New(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	w := &Watcher{fsw: fsw, target: abs, file: !info.IsDir(), debounce: debounce}
	dir := abs
	if w.file {
		dir = filepath.Dir(abs)
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	return w, nil
}

// Path returns the absolute watched path.
func (w *Watcher) Path() string { return w.target }

// Run delivers debounced events to fn until ctx is done, then closes the
// watcher. fn runs on Run's goroutine.
func (w *Watcher) Run(ctx context.Context, fn func(Event)) error {
	defer w.fsw.Close()

	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending = map[string]struct{}{}
		ops     Op
	)
	flush := func() {
		if len(pending) == 0 {
			return
		}
		ev := Event{Op: ops, Paths: make([]string, 0, len(pending))}
		for p := range pending {
			ev.Paths = append(ev.Paths, p)
		}
		sort.Strings(ev.Paths)
		pending = map[string]struct{}{}
		ops = 0
		fn(ev)
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case fe, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			op := convertOp(fe.Op)
			if op == 0 || !w.relevant(fe.Name) {
				continue
			}
			pending[fe.Name] = struct{}{}
			ops |= op
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			timerC = timer.C
		case <-timerC:
			timerC = nil
			flush()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				// Lost events; report a generic write so callers rescan.
				pending[w.target] = struct{}{}
				ops |= OpWrite
				flush()
				continue
			}
			return fmt.Errorf("watch %s: %w", w.target, err)
		}
	}
}

// Close stops the watcher without running it.
func (w *Watcher) Close() error { return w.fsw.Close() }

func (w *Watcher) relevant(name string) bool {
	if !w.file {
		return true
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	return abs == w.target
}

func convertOp(fsOp fsnotify.Op) Op {
	var op Op
	if fsOp.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsOp.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsOp.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsOp.Has(fsnotify.Rename) {
		op |= OpRename
	}
	return op
}
