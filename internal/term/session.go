package term

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
)

// EventTimeout is the default poll timeout of the tcell loop. Components
// redraw at least this often even without input.
const EventTimeout = time.Second

var errClosed = errors.New("session closed")

// Session is an initialized tcell screen with a background event pump.
type Session struct {
	screen tcell.Screen
	events chan tcell.Event
	done   chan struct{}
	once   sync.Once
	errOut io.Writer
}

// Init puts the terminal into raw alt-screen mode with mouse reporting.
func Init() (*Session, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, &Error{Op: OpInit, Err: err}
	}
	return NewSession(screen)
}

// NewSession initializes screen and starts pumping its events.
func NewSession(screen tcell.Screen) (*Session, error) {
	if err := screen.Init(); err != nil {
		return nil, &Error{Op: OpInit, Err: err}
	}
	screen.EnableMouse()
	screen.HideCursor()
	screen.Clear()

	s := &Session{
		screen: screen,
		events: make(chan tcell.Event, 64),
		done:   make(chan struct{}),
		errOut: os.Stderr,
	}
	go s.pump()
	return s, nil
}

// pump forwards screen events until the screen is finalized, which makes
// PollEvent return nil.
func (s *Session) pump() {
	defer close(s.events)
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case s.events <- ev:
		case <-s.done:
			return
		}
	}
}

func (s *Session) Screen() tcell.Screen { return s.screen }

// PollEvent waits up to timeout for the next event. It returns nil, nil on
// timeout. timeout <= 0 uses EventTimeout.
func (s *Session) PollEvent(timeout time.Duration) (tcell.Event, error) {
	if timeout <= 0 {
		timeout = EventTimeout
	}
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case ev, ok := <-s.events:
		if !ok {
			return nil, &Error{Op: OpPoll, Err: errClosed}
		}
		return ev, nil
	case <-t.C:
		return nil, nil
	}
}

// Restore leaves raw mode and the alt screen. It is safe to call twice.
func (s *Session) Restore() (err error) {
	s.once.Do(func() {
		defer func() {
			if r := recover(); r != nil {
				err = &Error{Op: OpRestore, Err: fmt.Errorf("%v", r)}
			}
		}()
		close(s.done)
		s.screen.Fini()
	})
	return err
}

// RestoreWithErr restores the terminal and then reports cause, so the
// message is not lost in the alt screen. It returns cause, or the restore
// failure when there is no cause.
func (s *Session) RestoreWithErr(cause error) error {
	rerr := s.Restore()
	if cause == nil {
		return rerr
	}
	fmt.Fprintf(s.errOut, "Application error: %v\n", cause)
	if rerr != nil {
		return errors.Join(cause, rerr)
	}
	return cause
}
