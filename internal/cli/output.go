package cli

import (
	"errors"
	"fmt"
)

// Exit codes for the test binary.
const (
	ExitSuccess      = 0 // every dispatched instance passed
	ExitFailure      = 1 // at least one instance failed, or the run was interrupted
	ExitCommandError = 2 // bad invocation: flags, config file, registration conflicts
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from the command.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message; empty when the console already carries the diagnosis
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		if e.Message == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error. A nil error is
// success. An error without an explicit code is a command error: run
// outcomes always carry their code, so anything uncoded came from
// argument or configuration handling.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCommandError
}
