package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ExitError
		want string
	}{
		{
			name: "message_only",
			err:  &ExitError{Code: ExitCommandError, Message: "2 registration errors"},
			want: "2 registration errors",
		},
		{
			name: "message_and_cause",
			err:  &ExitError{Code: ExitCommandError, Message: "loading configuration", Err: errors.New("no such file")},
			want: "loading configuration: no such file",
		},
		{
			name: "cause_only",
			err:  &ExitError{Code: ExitCommandError, Err: errors.New("no such file")},
			want: "no such file",
		},
		{
			name: "empty",
			err:  &ExitError{Code: ExitFailure},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestExitError_Unwrap(t *testing.T) {
	cause := errors.New("parse failed")
	err := WrapExitError(ExitCommandError, "loading configuration", cause)

	require.ErrorIs(t, err, cause)
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestNewExitError(t *testing.T) {
	err := NewExitError(ExitCommandError, "3 registration errors")
	assert.Equal(t, ExitCommandError, err.Code)
	assert.Equal(t, "3 registration errors", err.Message)
	assert.Nil(t, err.Err)
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil_is_success", nil, ExitSuccess},
		{"run_failure", &ExitError{Code: ExitFailure}, ExitFailure},
		{"command_error", NewExitError(ExitCommandError, "bad flag"), ExitCommandError},
		{"plain_error_defaults_to_command_error", errors.New("boom"), ExitCommandError},
		{"wrapped_exit_error", fmt.Errorf("context: %w", &ExitError{Code: ExitFailure}), ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}
