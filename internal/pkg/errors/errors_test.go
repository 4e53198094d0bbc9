package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCode_ExitCode(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{ErrInvalidConfig, 1},
		{ErrInvalidArguments, 1},
		{ErrNotARepository, 1},
		{ErrGitCommandFailed, 2},
		{ErrToolMissing, 2},
		{ErrBuildFailed, 3},
		{ErrSyncFailed, 3},
		{ErrPushFailed, 3},
		{ErrTimeout, 3},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.ExitCode())
		})
	}
}

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("exit status 128")
	err := Wrap(cause, ErrGitCommandFailed, "git command failed")

	assert.Equal(t, "git command failed: exit status 128", err.Error())
	assert.Equal(t, cause, errors.Unwrap(err))

	plain := New(ErrInvalidConfig, "bad config")
	assert.Equal(t, "bad config", plain.Error())
	assert.Nil(t, errors.Unwrap(plain))
}

func TestGetAppError_ThroughWrapping(t *testing.T) {
	inner := NewGitError(errors.New("exit status 1"), "fatal: not a git repository")
	wrapped := fmt.Errorf("publish failed: %w", inner)

	appErr := GetAppError(wrapped)
	require.NotNil(t, appErr)
	assert.Equal(t, ErrGitCommandFailed, appErr.Code)
	assert.Equal(t, "fatal: not a git repository", appErr.Context["output"])

	assert.True(t, IsAppError(wrapped))
	assert.False(t, IsAppError(errors.New("plain")))
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, 3, GetExitCode(NewPushError(errors.New("x"), "")))
	assert.Equal(t, 2, GetExitCode(NewToolMissingError("git", errors.New("not found"))))
	assert.Equal(t, 1, GetExitCode(errors.New("plain error")))
}

func TestFormatError(t *testing.T) {
	err := NewBuildError(errors.New("exit status 1"), "traceback")

	out := FormatError(err)
	assert.Contains(t, out, "Error: page build command failed")
	assert.Contains(t, out, "Cause: exit status 1")
	assert.Contains(t, out, "Suggestion:")

	assert.Equal(t, "", FormatError(nil))
	assert.Equal(t, "Error: plain", FormatError(errors.New("plain")))
}

func TestFormatErrorVerbose(t *testing.T) {
	err := NewSyncError(errors.New("conflict"), "CONFLICT (content)")

	out := FormatErrorVerbose(err)
	assert.Contains(t, out, "[SyncFailed]")
	assert.Contains(t, out, "Error chain:")
	assert.Contains(t, out, "CONFLICT (content)")
}

func TestWithContextAndSuggestion(t *testing.T) {
	err := New(ErrPushFailed, "push failed").
		WithContext("branch", "main").
		WithSuggestion("check the network")

	assert.Equal(t, "main", err.Context["branch"])
	assert.Equal(t, "check the network", err.Suggestion)
}
