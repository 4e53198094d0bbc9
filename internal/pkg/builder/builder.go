// Package builder runs the external weather-page build command.
//
// The build command is a black box to vaerpub: it is started in the
// repository directory, waited on, and its outcome is returned as an
// explicit Result. Deciding whether a non-zero exit aborts the publish
// is the caller's business.
package builder

import (
	"bytes"
	"context"
	"os/exec"
	"time"

	apperrors "github.com/vaerpub/vaerpub/internal/pkg/errors"
)

const (
	// DefaultTimeout bounds a single build run.
	DefaultTimeout = 10 * time.Minute
)

// Result is the outcome of one build run.
type Result struct {
	ExitCode int
	Output   string // combined stdout+stderr, trimmed
	Duration time.Duration
	Err      error // non-nil when the command failed to start or exited non-zero
}

// OK reports whether the build completed with exit code zero.
func (r *Result) OK() bool {
	return r != nil && r.Err == nil && r.ExitCode == 0
}

// Runner runs the page build command.
type Runner interface {
	Run(ctx context.Context) (*Result, error)
}

// ExecRunner runs the configured command as a synchronous subprocess.
type ExecRunner struct {
	command string
	args    []string
	workDir string
	timeout time.Duration
}

// NewExecRunner creates a runner for the given command, run in workDir.
func NewExecRunner(command string, args []string, workDir string, timeout time.Duration) *ExecRunner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ExecRunner{
		command: command,
		args:    args,
		workDir: workDir,
		timeout: timeout,
	}
}

// Command returns the configured executable name.
func (r *ExecRunner) Command() string {
	return r.command
}

// Run invokes the build command and waits for it to finish.
// A non-zero exit is reported inside the Result, not as the error return;
// the error return is reserved for the command not starting at all.
func (r *ExecRunner) Run(ctx context.Context) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.command, r.args...)
	if r.workDir != "" {
		cmd.Dir = r.workDir
	}

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	apperrors.LogCommand(r.command, r.args, r.workDir)
	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)

	result := &Result{
		Output:   string(bytes.TrimSpace(buf.Bytes())),
		Duration: duration,
	}

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			result.Err = apperrors.NewTimeoutError(ctx.Err())
			result.ExitCode = -1
			return result, nil
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
			result.Err = apperrors.NewBuildError(err, result.Output)
			apperrors.LogCommandResult(r.command, result.ExitCode, duration)
			return result, nil
		}
		// Command never started (typically exec.ErrNotFound)
		return nil, apperrors.NewToolMissingError(r.command, err)
	}

	apperrors.LogCommandResult(r.command, 0, duration)
	return result, nil
}
