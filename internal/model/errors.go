package model

import (
	"errors"
	"fmt"
)

// ExitCode defines the launcher's process exit codes. There are exactly three
// outcomes: success, a usage or prerequisite error, and a failed execution of
// the containerized tool.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully, or help or
	// version output was requested.
	ExitSuccess ExitCode = 0

	// ExitUsageError indicates the launcher was invoked incorrectly (missing
	// command, malformed flag value, relative CAS path) or the host is not
	// provisioned (missing shell, engine CLI, HOME, or a directory that could
	// not be created).
	ExitUsageError ExitCode = 1

	// ExitExecutionFailed indicates the containerized tool returned a
	// non-zero status or terminated abnormally.
	ExitExecutionFailed ExitCode = 2
)

var (
	// ErrNoCommand is returned when no pass-through tokens remain.
	ErrNoCommand = errors.New("a command must be specified")

	// ErrMissingFlagValue is returned when a value-taking flag is last.
	ErrMissingFlagValue = errors.New("no value provided for flag")

	// ErrRelativeCASPath is returned when the CAS directory is not absolute.
	ErrRelativeCASPath = errors.New("only absolute paths are supported for CAS config")

	// ErrPrerequisite is wrapped by every host provisioning failure.
	ErrPrerequisite = errors.New("host prerequisite not satisfied")

	// ErrExecutionFailed is wrapped when the containerized tool fails.
	ErrExecutionFailed = errors.New("command execution failed")
)

// CLIError is a custom error type that carries an exit code.
// This allows resolvers deep in the call stack to describe a failure while
// the single top-level driver decides how to print it and which code to use.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

// UsageError wraps err as a usage failure.
func UsageError(message string, err error) *CLIError {
	return WrapCLIError(ExitUsageError, message, err)
}

// ExitCodeOf extracts the exit code carried by err. Errors that are not
// CLIErrors map to ExitUsageError; a nil error maps to ExitSuccess.
func ExitCodeOf(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr.Code
	}
	return ExitUsageError
}
