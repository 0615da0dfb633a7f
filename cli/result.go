package cli

import stdErrors "errors"

// CommandError signals a command failure with a specific exit code.
// Commands return this after handling all output (printing diagnostics to
// stderr), so main can exit without printing anything else.
type CommandError struct {
	exitCode int
}

// NewCommandError creates a new CommandError with the given exit code.
func NewCommandError(exitCode int) *CommandError {
	return &CommandError{exitCode: exitCode}
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	return "command failed"
}

// ExitCode returns the exit code associated with this error.
func (e *CommandError) ExitCode() int {
	return e.exitCode
}

// ExitCode maps the error returned by a command to a process exit code.
// The second result is false for errors that have not been reported yet
// and still need to be printed.
func ExitCode(err error) (int, bool) {
	if err == nil {
		return 0, true
	}
	var cmdErr *CommandError
	if stdErrors.As(err, &cmdErr) {
		return cmdErr.ExitCode(), true
	}
	return 1, false
}
