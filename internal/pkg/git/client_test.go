// Package git provides the Git operations behind the vaerpub publish workflow.
package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRepo creates a temporary git repository for testing.
func setupTestRepo(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	runGit(t, tmpDir, "init", "-b", "main")
	runGit(t, tmpDir, "config", "user.email", "test@example.com")
	runGit(t, tmpDir, "config", "user.name", "Test User")

	return tmpDir
}

// runGit runs a git command in the specified directory.
func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v failed: %v\nOutput: %s", args, err, output)
	}
	return string(output)
}

// writeFile creates a file with the given content.
func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directories: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}

// commitAll stages and commits everything in the repo.
func commitAll(t *testing.T, dir, msg string) {
	t.Helper()
	runGit(t, dir, "add", "-A")
	runGit(t, dir, "commit", "-m", msg)
}

func TestIsRepository(t *testing.T) {
	tmpDir := setupTestRepo(t)
	ctx := context.Background()

	assert.True(t, NewClient(tmpDir).IsRepository(ctx))
	assert.False(t, NewClient(t.TempDir()).IsRepository(ctx))
}

func TestHasStagedChanges_NoChanges(t *testing.T) {
	tmpDir := setupTestRepo(t)
	writeFile(t, tmpDir, "index.html", "<html></html>")
	commitAll(t, tmpDir, "initial")

	client := NewClient(tmpDir)
	has, err := client.HasStagedChanges(context.Background())

	require.NoError(t, err)
	assert.False(t, has)
}

func TestHasStagedChanges_WithChanges(t *testing.T) {
	tmpDir := setupTestRepo(t)
	writeFile(t, tmpDir, "index.html", "<html></html>")
	commitAll(t, tmpDir, "initial")

	writeFile(t, tmpDir, "index.html", "<html>updated</html>")
	runGit(t, tmpDir, "add", "-A")

	client := NewClient(tmpDir)
	has, err := client.HasStagedChanges(context.Background())

	require.NoError(t, err)
	assert.True(t, has)
}

func TestAddAll_IncludesDeletions(t *testing.T) {
	tmpDir := setupTestRepo(t)
	writeFile(t, tmpDir, "index.html", "<html></html>")
	writeFile(t, tmpDir, "data/old.json", "{}")
	commitAll(t, tmpDir, "initial")

	require.NoError(t, os.Remove(filepath.Join(tmpDir, "data/old.json")))
	writeFile(t, tmpDir, "data/new.json", "{}")

	client := NewClient(tmpDir)
	ctx := context.Background()

	require.NoError(t, client.AddAll(ctx))

	files, err := client.StagedFiles(ctx)
	require.NoError(t, err)

	statuses := map[string]string{}
	for _, f := range files {
		statuses[f.Path] = f.Status
	}
	assert.Equal(t, "D", statuses["data/old.json"])
	assert.Equal(t, "A", statuses["data/new.json"])
}

func TestCommit(t *testing.T) {
	tmpDir := setupTestRepo(t)
	writeFile(t, tmpDir, "index.html", "<html></html>")

	client := NewClient(tmpDir)
	ctx := context.Background()

	require.NoError(t, client.AddAll(ctx))
	require.NoError(t, client.Commit(ctx, "Oppdatering 2026-01-15 09:05"))

	log := runGit(t, tmpDir, "log", "-1", "--pretty=%s")
	assert.Contains(t, log, "Oppdatering 2026-01-15 09:05")

	// Nothing staged after the commit
	has, err := client.HasStagedChanges(ctx)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestCurrentBranchAndHead(t *testing.T) {
	tmpDir := setupTestRepo(t)
	writeFile(t, tmpDir, "index.html", "<html></html>")
	commitAll(t, tmpDir, "initial")

	client := NewClient(tmpDir)
	ctx := context.Background()

	branch, err := client.CurrentBranch(ctx)
	require.NoError(t, err)
	assert.Equal(t, "main", branch)

	head, err := client.Head(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, head)
}

func TestHasRemoteAndUpstream(t *testing.T) {
	tmpDir := setupTestRepo(t)
	writeFile(t, tmpDir, "index.html", "<html></html>")
	commitAll(t, tmpDir, "initial")

	client := NewClient(tmpDir)
	ctx := context.Background()

	hasRemote, err := client.HasRemote(ctx)
	require.NoError(t, err)
	assert.False(t, hasRemote)

	hasUpstream, err := client.HasUpstream(ctx)
	require.NoError(t, err)
	assert.False(t, hasUpstream)
}

func TestHasUnstagedChanges(t *testing.T) {
	tmpDir := setupTestRepo(t)
	writeFile(t, tmpDir, "index.html", "<html></html>")
	commitAll(t, tmpDir, "initial")

	client := NewClient(tmpDir)
	ctx := context.Background()

	has, err := client.HasUnstagedChanges(ctx)
	require.NoError(t, err)
	assert.False(t, has)

	writeFile(t, tmpDir, "index.html", "<html>changed</html>")

	has, err = client.HasUnstagedChanges(ctx)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestPullAndPush_RoundTripThroughBareRemote(t *testing.T) {
	// Bare repo acting as the hosted remote
	remoteDir := t.TempDir()
	runGit(t, remoteDir, "init", "--bare", "-b", "main")

	tmpDir := setupTestRepo(t)
	writeFile(t, tmpDir, "index.html", "<html></html>")
	commitAll(t, tmpDir, "initial")
	runGit(t, tmpDir, "remote", "add", "origin", remoteDir)
	runGit(t, tmpDir, "push", "-u", "origin", "main")

	client := NewClient(tmpDir)
	ctx := context.Background()

	hasUpstream, err := client.HasUpstream(ctx)
	require.NoError(t, err)
	assert.True(t, hasUpstream)

	result, err := client.Pull(ctx, "origin", "main", true)
	require.NoError(t, err)
	assert.False(t, result.Updated)

	writeFile(t, tmpDir, "index.html", "<html>v2</html>")
	require.NoError(t, client.AddAll(ctx))
	require.NoError(t, client.Commit(ctx, "Oppdatering 2026-01-15 09:05"))
	require.NoError(t, client.Push(ctx))

	remoteLog := runGit(t, remoteDir, "log", "-1", "--pretty=%s")
	assert.Contains(t, remoteLog, "Oppdatering 2026-01-15 09:05")
}

func TestParseNameStatus(t *testing.T) {
	output := []byte("M\tindex.html\nA\tdata/2026-01.json\nD\tdata/old.json\nR100\tgammel.html\tny.html\n")

	files := parseNameStatus(output)

	require.Len(t, files, 4)
	assert.Equal(t, StagedFile{Path: "index.html", Status: "M"}, files[0])
	assert.Equal(t, StagedFile{Path: "data/2026-01.json", Status: "A"}, files[1])
	assert.Equal(t, StagedFile{Path: "data/old.json", Status: "D"}, files[2])
	assert.Equal(t, StagedFile{Path: "ny.html", Status: "R"}, files[3])
}

func TestParseNameStatus_Empty(t *testing.T) {
	assert.Empty(t, parseNameStatus(nil))
	assert.Empty(t, parseNameStatus([]byte("\n")))
}
