// Package toolcheck verifies that required external tools are present on PATH.
//
// A missing tool is the one environment failure the publish workflow does
// not tolerate: every step is an invocation of an external program, so the
// run ends immediately when one cannot be found.
package toolcheck

import (
	"os/exec"
	"runtime"

	apperrors "github.com/vaerpub/vaerpub/internal/pkg/errors"
)

// Checker looks up external tools.
type Checker interface {
	// Check returns nil when the tool is resolvable via PATH.
	Check(tool string) error
	// CheckAll checks every tool and returns the first failure.
	CheckAll(tools ...string) error
}

// PathChecker implements Checker with exec.LookPath.
type PathChecker struct {
	// lookPath is swappable for tests.
	lookPath func(string) (string, error)
}

// NewChecker creates a PathChecker.
func NewChecker() *PathChecker {
	return &PathChecker{lookPath: exec.LookPath}
}

// Check returns nil when the tool is resolvable via PATH.
func (c *PathChecker) Check(tool string) error {
	if tool == "" {
		return nil
	}
	if _, err := c.lookPath(tool); err != nil {
		return apperrors.NewToolMissingError(tool, err).
			WithSuggestion(installHint(tool))
	}
	return nil
}

// CheckAll checks every tool and returns the first failure.
func (c *PathChecker) CheckAll(tools ...string) error {
	for _, tool := range tools {
		if err := c.Check(tool); err != nil {
			return err
		}
	}
	return nil
}

// installHint returns a platform-appropriate installation hint for a tool.
func installHint(tool string) string {
	switch tool {
	case "git":
		if runtime.GOOS == "windows" {
			return "Install Git for Windows from https://git-scm.com/download/win"
		}
		return "Install git with your package manager (e.g. apt install git, brew install git)"
	case "python", "python3":
		if runtime.GOOS == "windows" {
			return "Install Python from https://www.python.org/downloads/ and re-open the terminal"
		}
		return "Install python3 with your package manager"
	default:
		return "Install " + tool + " and make sure it is on your PATH"
	}
}
