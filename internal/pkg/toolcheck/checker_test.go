package toolcheck

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/vaerpub/vaerpub/internal/pkg/errors"
)

func stubChecker(available ...string) *PathChecker {
	set := map[string]bool{}
	for _, tool := range available {
		set[tool] = true
	}
	return &PathChecker{
		lookPath: func(tool string) (string, error) {
			if set[tool] {
				return "/usr/bin/" + tool, nil
			}
			return "", errors.New("executable file not found in $PATH")
		},
	}
}

func TestCheck_ToolPresent(t *testing.T) {
	checker := stubChecker("git")
	assert.NoError(t, checker.Check("git"))
}

func TestCheck_ToolMissing(t *testing.T) {
	checker := stubChecker()

	err := checker.Check("git")
	require.Error(t, err)

	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrToolMissing, appErr.Code)
	assert.NotEmpty(t, appErr.Suggestion)
}

func TestCheck_EmptyToolIsNoop(t *testing.T) {
	checker := stubChecker()
	assert.NoError(t, checker.Check(""))
}

func TestCheckAll_ReturnsFirstFailure(t *testing.T) {
	checker := stubChecker("git")

	assert.NoError(t, checker.CheckAll("git"))

	err := checker.CheckAll("git", "python3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "python3")
}

func TestCheck_RealGit(t *testing.T) {
	// git is a test prerequisite for this repo
	assert.NoError(t, NewChecker().Check("git"))
}
