package builder

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/vaerpub/vaerpub/internal/pkg/errors"
)

func TestRun_Success(t *testing.T) {
	runner := NewExecRunner("sh", []string{"-c", "echo bygget"}, t.TempDir(), time.Minute)

	result, err := runner.Run(context.Background())

	require.NoError(t, err)
	assert.True(t, result.OK())
	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, "bygget", result.Output)
}

func TestRun_NonZeroExitIsReportedInResult(t *testing.T) {
	runner := NewExecRunner("sh", []string{"-c", "echo feil >&2; exit 3"}, t.TempDir(), time.Minute)

	result, err := runner.Run(context.Background())

	require.NoError(t, err, "a failing build is a Result, not an error return")
	assert.False(t, result.OK())
	assert.Equal(t, 3, result.ExitCode)
	assert.Equal(t, "feil", result.Output)
	require.Error(t, result.Err)

	appErr := apperrors.GetAppError(result.Err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrBuildFailed, appErr.Code)
}

func TestRun_MissingCommandIsAnError(t *testing.T) {
	runner := NewExecRunner("definitely-not-a-real-command-xyz", nil, t.TempDir(), time.Minute)

	result, err := runner.Run(context.Background())

	require.Error(t, err)
	assert.Nil(t, result)

	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrToolMissing, appErr.Code)
}

func TestRun_RunsInWorkDir(t *testing.T) {
	dir := t.TempDir()
	runner := NewExecRunner("sh", []string{"-c", "pwd"}, dir, time.Minute)

	result, err := runner.Run(context.Background())

	require.NoError(t, err)
	// Resolve symlinks: macOS temp dirs live under /private
	want, _ := filepath.EvalSymlinks(dir)
	got, _ := filepath.EvalSymlinks(result.Output)
	assert.Equal(t, want, got)
}

func TestRun_SideEffectIsVisible(t *testing.T) {
	dir := t.TempDir()
	runner := NewExecRunner("sh", []string{"-c", "echo '<html></html>' > index.html"}, dir, time.Minute)

	result, err := runner.Run(context.Background())

	require.NoError(t, err)
	assert.True(t, result.OK())

	_, statErr := os.Stat(filepath.Join(dir, "index.html"))
	assert.NoError(t, statErr)
}

func TestRun_Timeout(t *testing.T) {
	runner := NewExecRunner("sh", []string{"-c", "sleep 5"}, t.TempDir(), 100*time.Millisecond)

	result, err := runner.Run(context.Background())

	require.NoError(t, err)
	require.NotNil(t, result)
	require.Error(t, result.Err)

	appErr := apperrors.GetAppError(result.Err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrTimeout, appErr.Code)
}

func TestResult_OK(t *testing.T) {
	assert.True(t, (&Result{}).OK())
	assert.False(t, (&Result{ExitCode: 1}).OK())
	assert.False(t, (&Result{Err: errors.New("x")}).OK())

	var nilResult *Result
	assert.False(t, nilResult.OK())
}
