package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("unexpected token")
	err := NewParseError("profile.yaml", 12, underlying)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "profile.yaml", parseErr.Path)
	require.Equal(t, 12, parseErr.Line)
	require.True(t, stdErrors.Is(err, underlying))
	require.Contains(t, err.Error(), "profile.yaml:12")
}

func TestValidationErrorIncludesField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("apis[0]", "must be a service name", nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "apis[0]", validationErr.Field)
	require.Contains(t, err.Error(), "must be a service name")
}

func TestExecutionErrorIncludesStepContext(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("command failed")
	err := NewExecutionError("create_project", underlying)

	var executionErr *ExecutionError
	require.ErrorAs(t, err, &executionErr)
	require.Equal(t, "create_project", executionErr.StepID)
	require.True(t, stdErrors.Is(err, underlying))
}

func TestCommandErrorDefaultsExitCode(t *testing.T) {
	t.Parallel()

	err := NewCommandError("gcloud config get-value project", nil, 0)

	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	require.Equal(t, 1, cmdErr.ExitCode)
	require.NotContains(t, err.Error(), ": \n")
}

func TestCommandErrorKeepsStderr(t *testing.T) {
	t.Parallel()

	err := NewCommandError("exit 3", []byte("  boom\n"), 3)
	require.Equal(t, "command `exit 3` failed with exit code 3: boom", err.Error())
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"cancelled", ErrCancelled, 0},
		{"wrapped cancelled", fmt.Errorf("verify scopes: %w", ErrCancelled), 0},
		{"command", NewCommandError("exit 7", nil, 7), 7},
		{"wrapped command", NewExecutionError("enable_apis", NewCommandError("exit 2", nil, 2)), 2},
		{"other", stdErrors.New("boom"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}
