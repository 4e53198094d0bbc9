// Package errors provides error types, logging, and exit-code mapping for vaerpub.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents the category of an error.
type ErrorCode int

const (
	// User errors (Exit Code 1)
	ErrInvalidConfig ErrorCode = iota + 100
	ErrInvalidArguments
	ErrNotARepository

	// System errors (Exit Code 2)
	ErrGitCommandFailed ErrorCode = iota + 200
	ErrFileSystemError
	ErrToolMissing

	// External errors (Exit Code 3)
	ErrBuildFailed ErrorCode = iota + 300
	ErrSyncFailed
	ErrPushFailed
	ErrTimeout
)

// ExitCode returns the appropriate exit code for an error code.
func (c ErrorCode) ExitCode() int {
	switch {
	case c >= 100 && c < 200:
		return 1 // User errors
	case c >= 200 && c < 300:
		return 2 // System errors
	case c >= 300:
		return 3 // External errors
	default:
		return 1
	}
}

// String returns a human-readable name for the error code.
func (c ErrorCode) String() string {
	switch c {
	case ErrInvalidConfig:
		return "InvalidConfig"
	case ErrInvalidArguments:
		return "InvalidArguments"
	case ErrNotARepository:
		return "NotARepository"
	case ErrGitCommandFailed:
		return "GitCommandFailed"
	case ErrFileSystemError:
		return "FileSystemError"
	case ErrToolMissing:
		return "ToolMissing"
	case ErrBuildFailed:
		return "BuildFailed"
	case ErrSyncFailed:
		return "SyncFailed"
	case ErrPushFailed:
		return "PushFailed"
	case ErrTimeout:
		return "Timeout"
	default:
		return "Unknown"
	}
}

// AppError represents an application error with context.
type AppError struct {
	Code       ErrorCode
	Message    string
	Cause      error
	Context    map[string]interface{}
	Suggestion string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error.
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithSuggestion adds a suggestion to the error.
func (e *AppError) WithSuggestion(suggestion string) *AppError {
	e.Suggestion = suggestion
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with context.
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts an AppError from an error chain.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// GetExitCode returns the appropriate exit code for an error.
func GetExitCode(err error) int {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code.ExitCode()
	}
	return 1 // Default to user error
}

// Common error constructors with suggestions

// NewGitError creates an error for git command failures.
func NewGitError(err error, output string) *AppError {
	appErr := &AppError{
		Code:    ErrGitCommandFailed,
		Message: "git command failed",
		Cause:   err,
	}
	if output != "" {
		appErr.Context = map[string]interface{}{
			"output": output,
		}
	}
	return appErr
}

// NewToolMissingError creates an error for a required tool absent from PATH.
func NewToolMissingError(tool string, err error) *AppError {
	return &AppError{
		Code:       ErrToolMissing,
		Message:    fmt.Sprintf("required tool %q not found on PATH", tool),
		Cause:      err,
		Suggestion: fmt.Sprintf("Install %s or configure its location with 'vaerpub config set build.command <path>'", tool),
	}
}

// NewBuildError creates an error for page-builder failures.
func NewBuildError(err error, output string) *AppError {
	appErr := &AppError{
		Code:       ErrBuildFailed,
		Message:    "page build command failed",
		Cause:      err,
		Suggestion: "Run 'vaerpub build' to inspect the builder output, or publish with --skip-build",
	}
	if output != "" {
		appErr.Context = map[string]interface{}{
			"output": output,
		}
	}
	return appErr
}

// NewSyncError creates an error for pull --rebase failures.
func NewSyncError(err error, output string) *AppError {
	appErr := &AppError{
		Code:       ErrSyncFailed,
		Message:    "remote synchronization failed",
		Cause:      err,
		Suggestion: "Resolve the rebase in the repository, then publish again",
	}
	if output != "" {
		appErr.Context = map[string]interface{}{
			"output": output,
		}
	}
	return appErr
}

// NewPushError creates an error for push failures.
func NewPushError(err error, output string) *AppError {
	appErr := &AppError{
		Code:       ErrPushFailed,
		Message:    "push to upstream failed",
		Cause:      err,
		Suggestion: "Check network connectivity and that the branch has an upstream",
	}
	if output != "" {
		appErr.Context = map[string]interface{}{
			"output": output,
		}
	}
	return appErr
}

// NewTimeoutError creates an error for timeouts.
func NewTimeoutError(err error) *AppError {
	return &AppError{
		Code:       ErrTimeout,
		Message:    "command timed out",
		Cause:      err,
		Suggestion: "Check network connectivity or raise the timeout in the configuration",
	}
}

// NewInvalidConfigError creates an error for invalid configuration.
func NewInvalidConfigError(message string) *AppError {
	return &AppError{
		Code:       ErrInvalidConfig,
		Message:    message,
		Suggestion: "Run 'vaerpub config init' to create a valid configuration file",
	}
}

// NewNotARepositoryError creates an error for a working directory without a git repository.
func NewNotARepositoryError(dir string) *AppError {
	return &AppError{
		Code:       ErrNotARepository,
		Message:    fmt.Sprintf("%s is not a git repository", dir),
		Suggestion: "Run vaerpub from the weather-site checkout, or pass --repo <dir>",
	}
}

// FormatError formats an error for user display.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder

	appErr := GetAppError(err)
	if appErr != nil {
		sb.WriteString("Error: ")
		sb.WriteString(appErr.Message)

		if appErr.Cause != nil {
			sb.WriteString("\n  Cause: ")
			sb.WriteString(appErr.Cause.Error())
		}

		if appErr.Suggestion != "" {
			sb.WriteString("\n  Suggestion: ")
			sb.WriteString(appErr.Suggestion)
		}
	} else {
		sb.WriteString("Error: ")
		sb.WriteString(err.Error())
	}

	return sb.String()
}

// FormatErrorVerbose formats an error with full details for verbose mode.
func FormatErrorVerbose(err error) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder

	appErr := GetAppError(err)
	if appErr != nil {
		sb.WriteString(fmt.Sprintf("Error [%s]: %s\n", appErr.Code.String(), appErr.Message))

		if appErr.Cause != nil {
			sb.WriteString(fmt.Sprintf("  Cause: %v\n", appErr.Cause))
			sb.WriteString("  Error chain:\n")
			printErrorChain(&sb, appErr.Cause, 2)
		}

		if len(appErr.Context) > 0 {
			sb.WriteString("  Context:\n")
			for k, v := range appErr.Context {
				sb.WriteString(fmt.Sprintf("    %s: %v\n", k, v))
			}
		}

		if appErr.Suggestion != "" {
			sb.WriteString(fmt.Sprintf("  Suggestion: %s\n", appErr.Suggestion))
		}
	} else {
		sb.WriteString(fmt.Sprintf("Error: %v\n", err))
		sb.WriteString("  Error chain:\n")
		printErrorChain(&sb, err, 2)
	}

	return sb.String()
}

// printErrorChain prints the error chain with indentation.
func printErrorChain(sb *strings.Builder, err error, indent int) {
	if err == nil {
		return
	}

	prefix := strings.Repeat("  ", indent)
	sb.WriteString(fmt.Sprintf("%s- %T: %v\n", prefix, err, err))

	if unwrapped := errors.Unwrap(err); unwrapped != nil {
		printErrorChain(sb, unwrapped, indent+1)
	}
}
