package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempConfigPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.yaml")
}

func TestLoad_Defaults(t *testing.T) {
	mgr, err := NewManager(tempConfigPath(t))
	require.NoError(t, err)

	cfg, err := mgr.Load()
	require.NoError(t, err)

	assert.Equal(t, "python3", cfg.Build.Command)
	assert.Equal(t, []string{"build_weather_page.py"}, cfg.Build.Args)
	assert.Equal(t, 600, cfg.Build.TimeoutSeconds)
	assert.Equal(t, "origin", cfg.Git.Remote)
	assert.Equal(t, "main", cfg.Git.Branch)
	assert.True(t, cfg.Git.Rebase)
	assert.Equal(t, "Oppdatering", cfg.Publish.MessagePrefix)
	assert.False(t, cfg.Publish.Strict)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, "localhost:8000", cfg.Serve.Addr)
}

func TestInit_CreatesFile(t *testing.T) {
	path := tempConfigPath(t)
	mgr, err := NewManager(path)
	require.NoError(t, err)

	require.NoError(t, mgr.Init())
	assert.True(t, mgr.ConfigExists())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	// Second init refuses to overwrite
	assert.Error(t, mgr.Init())
}

func TestSetAndGet(t *testing.T) {
	path := tempConfigPath(t)
	mgr, err := NewManager(path)
	require.NoError(t, err)
	require.NoError(t, mgr.Init())

	require.NoError(t, mgr.Set("git.remote", "publish"))
	require.NoError(t, mgr.Set("git.rebase", "false"))
	require.NoError(t, mgr.Set("build.timeout_seconds", "120"))

	// Re-read through a fresh manager to prove persistence
	mgr2, err := NewManager(path)
	require.NoError(t, err)

	cfg, err := mgr2.Load()
	require.NoError(t, err)
	assert.Equal(t, "publish", cfg.Git.Remote)
	assert.False(t, cfg.Git.Rebase)
	assert.Equal(t, 120, cfg.Build.TimeoutSeconds)

	value, err := mgr2.Get("git.remote")
	require.NoError(t, err)
	assert.Equal(t, "publish", value)

	_, err = mgr2.Get("no.such.key")
	assert.Error(t, err)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("VAERPUB_GIT_BRANCH", "gh-pages")

	mgr, err := NewManager(tempConfigPath(t))
	require.NoError(t, err)

	cfg, err := mgr.Load()
	require.NoError(t, err)
	assert.Equal(t, "gh-pages", cfg.Git.Branch)
}

func TestSetOverride_DoesNotPersist(t *testing.T) {
	path := tempConfigPath(t)
	mgr, err := NewManager(path)
	require.NoError(t, err)
	require.NoError(t, mgr.Init())

	mgr.SetOverride("publish.message_prefix", "Testrun")

	cfg, err := mgr.Load()
	require.NoError(t, err)
	assert.Equal(t, "Testrun", cfg.Publish.MessagePrefix)

	// A fresh manager sees the file value, not the override
	mgr2, err := NewManager(path)
	require.NoError(t, err)
	cfg2, err := mgr2.Load()
	require.NoError(t, err)
	assert.Equal(t, "Oppdatering", cfg2.Publish.MessagePrefix)
}

func TestList(t *testing.T) {
	mgr, err := NewManager(tempConfigPath(t))
	require.NoError(t, err)

	settings := mgr.List()
	assert.Contains(t, settings, "git")
	assert.Contains(t, settings, "build")
	assert.Contains(t, settings, "publish")
}
