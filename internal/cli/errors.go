package cli

import "fmt"

type flagError struct {
	flag string
	err  error
}

func (e *flagError) Error() string {
	return fmt.Sprintf("--%s: %v", e.flag, e.err)
}

func (e *flagError) Unwrap() error { return e.err }

type notTerminalError struct {
	command string
}

func (e notTerminalError) Error() string {
	return fmt.Sprintf("%s needs an interactive terminal (stdout is not a TTY)", e.command)
}
