package runner

import (
	"errors"
	"fmt"
	"os/exec"
)

// ErrEmptyArgv is returned when Run is called without a program.
var ErrEmptyArgv = errors.New("empty command line")

// InvocationError reports a child that could not be started, exited with a
// non-zero status, or was cancelled.
type InvocationError struct {
	Argv []string
	// ExitCode is the child's exit status, or -1 when it never ran or was
	// terminated by a signal.
	ExitCode int
	Err      error
}

func (e *InvocationError) Error() string {
	name := ""
	if len(e.Argv) > 0 {
		name = e.Argv[0]
	}
	var exitErr *exec.ExitError
	if e.Err == nil || errors.As(e.Err, &exitErr) {
		return fmt.Sprintf("%s exited with code %d", name, e.ExitCode)
	}
	return fmt.Sprintf("%s: %v", name, e.Err)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

// IsInvocationError reports whether err is or wraps an InvocationError.
func IsInvocationError(err error) bool {
	var target *InvocationError
	return errors.As(err, &target)
}

// ExitCode returns the child exit code carried by err, or fallback when err
// carries none.
func ExitCode(err error, fallback int) int {
	var target *InvocationError
	if errors.As(err, &target) && target.ExitCode > 0 {
		return target.ExitCode
	}
	return fallback
}
