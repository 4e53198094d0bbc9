// Package git provides the Git operations behind the vaerpub publish workflow.
package git

import (
	"bufio"
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	apperrors "github.com/vaerpub/vaerpub/internal/pkg/errors"
)

const (
	// CommandTimeout is the default timeout for local git commands.
	CommandTimeout = 10 * time.Second
	// NetworkTimeout is the timeout for git commands that talk to the remote.
	NetworkTimeout = 120 * time.Second
)

// StagedFile describes a single staged change.
type StagedFile struct {
	Path   string
	Status string // A, M, D, R per git name-status
}

// PullResult contains the result of a pull --rebase.
type PullResult struct {
	Updated bool   // whether the remote had new commits
	Message string // trimmed git output
}

// Client defines the interface for Git operations.
type Client interface {
	IsRepository(ctx context.Context) bool
	Pull(ctx context.Context, remote, branch string, rebase bool) (*PullResult, error)
	AddAll(ctx context.Context) error
	HasStagedChanges(ctx context.Context) (bool, error)
	StagedFiles(ctx context.Context) ([]StagedFile, error)
	Commit(ctx context.Context, message string) error
	Push(ctx context.Context) error
	CurrentBranch(ctx context.Context) (string, error)
	Head(ctx context.Context) (string, error)
	HasRemote(ctx context.Context) (bool, error)
	HasUpstream(ctx context.Context) (bool, error)
	HasUnstagedChanges(ctx context.Context) (bool, error)
}

// DefaultClient implements Client by shelling out to git.
// workDir is always explicit; the client never mutates the process's
// current directory.
type DefaultClient struct {
	workDir string
}

// NewClient creates a DefaultClient operating in workDir.
func NewClient(workDir string) *DefaultClient {
	return &DefaultClient{workDir: workDir}
}

// git prepares a git command rooted at the client's working directory.
func (c *DefaultClient) git(ctx context.Context, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, "git", args...)
	if c.workDir != "" {
		cmd.Dir = c.workDir
	}
	apperrors.LogCommand("git", args, c.workDir)
	return cmd
}

// IsRepository reports whether the working directory is inside a git work tree.
func (c *DefaultClient) IsRepository(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, CommandTimeout)
	defer cancel()

	out, err := c.git(ctx, "rev-parse", "--is-inside-work-tree").Output()
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(out)) == "true"
}

// Pull runs git pull from the given remote and branch, optionally with --rebase.
func (c *DefaultClient) Pull(ctx context.Context, remote, branch string, rebase bool) (*PullResult, error) {
	ctx, cancel := context.WithTimeout(ctx, NetworkTimeout)
	defer cancel()

	args := []string{"pull"}
	if rebase {
		args = append(args, "--rebase")
	}
	if remote != "" {
		args = append(args, remote)
		if branch != "" {
			args = append(args, branch)
		}
	}

	output, err := c.git(ctx, args...).CombinedOutput()
	outputStr := strings.TrimSpace(string(output))

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, apperrors.NewTimeoutError(ctx.Err())
		}
		return nil, apperrors.NewSyncError(err, outputStr)
	}

	result := &PullResult{Message: outputStr}
	if !strings.Contains(outputStr, "Already up to date") &&
		!strings.Contains(outputStr, "Already up-to-date") &&
		!strings.Contains(outputStr, "Current branch") { // "is up to date" rebase wording
		result.Updated = true
	}
	return result, nil
}

// AddAll stages every working-tree change, including deletions (git add -A).
func (c *DefaultClient) AddAll(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, CommandTimeout)
	defer cancel()

	output, err := c.git(ctx, "add", "-A").CombinedOutput()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return apperrors.NewTimeoutError(ctx.Err())
		}
		return apperrors.NewGitError(err, string(output))
	}
	return nil
}

// HasStagedChanges checks whether the staged snapshot differs from HEAD.
// This is the single branch point of the publish workflow.
func (c *DefaultClient) HasStagedChanges(ctx context.Context) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, CommandTimeout)
	defer cancel()

	err := c.git(ctx, "diff", "--cached", "--quiet").Run()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return false, apperrors.NewTimeoutError(ctx.Err())
		}
		// Exit code 1 means there are differences (staged changes exist)
		if exitErr, ok := err.(*exec.ExitError); ok {
			if exitErr.ExitCode() == 1 {
				return true, nil
			}
		}
		return false, apperrors.NewGitError(err, "")
	}
	// Exit code 0 means no differences
	return false, nil
}

// StagedFiles lists the staged changes (git diff --cached --name-status).
func (c *DefaultClient) StagedFiles(ctx context.Context) ([]StagedFile, error) {
	ctx, cancel := context.WithTimeout(ctx, CommandTimeout)
	defer cancel()

	output, err := c.git(ctx, "diff", "--cached", "--name-status").Output()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, apperrors.NewTimeoutError(ctx.Err())
		}
		return nil, apperrors.NewGitError(err, "")
	}

	return parseNameStatus(output), nil
}

// Commit records the staged snapshot with the given message.
func (c *DefaultClient) Commit(ctx context.Context, message string) error {
	ctx, cancel := context.WithTimeout(ctx, CommandTimeout)
	defer cancel()

	output, err := c.git(ctx, "commit", "-m", message).CombinedOutput()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return apperrors.NewTimeoutError(ctx.Err())
		}
		return apperrors.NewGitError(err, string(output))
	}
	return nil
}

// Push pushes the current branch to its configured upstream.
func (c *DefaultClient) Push(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, NetworkTimeout)
	defer cancel()

	output, err := c.git(ctx, "push").CombinedOutput()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return apperrors.NewTimeoutError(ctx.Err())
		}
		return apperrors.NewPushError(err, string(output))
	}
	return nil
}

// CurrentBranch returns the name of the checked-out branch.
func (c *DefaultClient) CurrentBranch(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, CommandTimeout)
	defer cancel()

	output, err := c.git(ctx, "rev-parse", "--abbrev-ref", "HEAD").Output()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", apperrors.NewTimeoutError(ctx.Err())
		}
		return "", apperrors.NewGitError(err, "")
	}
	return strings.TrimSpace(string(output)), nil
}

// Head returns the abbreviated hash of the current HEAD commit.
func (c *DefaultClient) Head(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, CommandTimeout)
	defer cancel()

	output, err := c.git(ctx, "rev-parse", "--short", "HEAD").Output()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", apperrors.NewTimeoutError(ctx.Err())
		}
		return "", apperrors.NewGitError(err, "")
	}
	return strings.TrimSpace(string(output)), nil
}

// HasRemote checks if the repository has a remote configured.
func (c *DefaultClient) HasRemote(ctx context.Context) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, CommandTimeout)
	defer cancel()

	output, err := c.git(ctx, "remote").Output()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return false, apperrors.NewTimeoutError(ctx.Err())
		}
		return false, apperrors.NewGitError(err, "")
	}
	return len(strings.TrimSpace(string(output))) > 0, nil
}

// HasUpstream checks if the current branch has an upstream tracking branch.
func (c *DefaultClient) HasUpstream(ctx context.Context) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, CommandTimeout)
	defer cancel()

	err := c.git(ctx, "rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{u}").Run()
	if err != nil {
		// Exit code 128 means no upstream configured
		return false, nil
	}
	return true, nil
}

// HasUnstagedChanges checks for modified or untracked files in the working tree.
func (c *DefaultClient) HasUnstagedChanges(ctx context.Context) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, CommandTimeout)
	defer cancel()

	output, err := c.git(ctx, "status", "--porcelain").Output()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return false, apperrors.NewTimeoutError(ctx.Err())
		}
		return false, apperrors.NewGitError(err, "")
	}
	return len(strings.TrimSpace(string(output))) > 0, nil
}

// parseNameStatus parses git diff --name-status output.
// Each line is STATUS<TAB>path, or STATUS<TAB>old<TAB>new for renames.
func parseNameStatus(output []byte) []StagedFile {
	var files []StagedFile
	scanner := bufio.NewScanner(bytes.NewReader(output))

	for scanner.Scan() {
		parts := strings.Split(scanner.Text(), "\t")
		if len(parts) < 2 {
			continue
		}

		status := parts[0]
		path := parts[len(parts)-1] // renames report the new path last

		// Rename statuses carry a similarity score, e.g. R100
		if len(status) > 1 {
			status = status[:1]
		}

		files = append(files, StagedFile{Path: path, Status: status})
	}

	return files
}
