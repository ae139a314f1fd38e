package term

import "fmt"

type Op string

const (
	OpInit    Op = "init"
	OpRun     Op = "run"
	OpRestore Op = "restore"
	OpPoll    Op = "poll"
)

// Error is a terminal setup, teardown or I/O failure.
type Error struct {
	Op  Op
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("terminal %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
