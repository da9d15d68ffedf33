package errors

import (
	stdErrors "errors"
	"fmt"
	"strings"
)

// ErrCancelled is returned when the operator chooses to stop the run. It is a
// legitimate terminal state and maps to exit status 0.
var ErrCancelled = stdErrors.New("cancelled by operator")

// ParseError represents a YAML parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures profile validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ExecutionError represents a runtime failure while executing a step.
type ExecutionError struct {
	StepID string
	Err    error
}

// NewExecutionError constructs an ExecutionError.
func NewExecutionError(stepID string, err error) error {
	return &ExecutionError{StepID: stepID, Err: err}
}

func (e *ExecutionError) Error() string {
	if e == nil {
		return ""
	}
	if e.StepID != "" {
		return fmt.Sprintf("execution error on step %s: %v", e.StepID, e.Err)
	}
	return fmt.Sprintf("execution error: %v", e.Err)
}

// Unwrap exposes the root error.
func (e *ExecutionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// CommandError reports an external command that kept failing after all of its
// attempts. ExitCode is always non-zero.
type CommandError struct {
	Command  string
	Stderr   string
	ExitCode int
}

// NewCommandError constructs a CommandError. A zero exit code (the command
// exited cleanly but produced no required output) is reported as 1.
func NewCommandError(command string, stderr []byte, exitCode int) error {
	if exitCode == 0 {
		exitCode = 1
	}
	return &CommandError{
		Command:  command,
		Stderr:   strings.TrimSpace(string(stderr)),
		ExitCode: exitCode,
	}
}

func (e *CommandError) Error() string {
	if e == nil {
		return ""
	}
	if e.Stderr != "" {
		return fmt.Sprintf("command `%s` failed with exit code %d: %s", e.Command, e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("command `%s` failed with exit code %d", e.Command, e.ExitCode)
}

// ExitCode maps an error returned by the pipeline to a process exit status.
func ExitCode(err error) int {
	if err == nil || stdErrors.Is(err, ErrCancelled) {
		return 0
	}
	var cmdErr *CommandError
	if stdErrors.As(err, &cmdErr) && cmdErr.ExitCode != 0 {
		return cmdErr.ExitCode
	}
	return 1
}
