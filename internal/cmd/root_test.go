// Package cmd contains the CLI command definitions for vaerpub.
package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd_Subcommands(t *testing.T) {
	rootCmd := NewRootCmd("1.0.0", "abc123", "2026-01-15")

	want := []string{"publish", "build", "status", "sno", "serve", "history", "config"}
	for _, name := range want {
		found := false
		for _, sub := range rootCmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		assert.True(t, found, "missing subcommand %q", name)
	}
}

func TestNewRootCmd_GlobalFlags(t *testing.T) {
	rootCmd := NewRootCmd("1.0.0", "abc123", "2026-01-15")

	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("repo"))
}

func TestNewRootCmd_PublishFlagsOnRoot(t *testing.T) {
	rootCmd := NewRootCmd("1.0.0", "abc123", "2026-01-15")

	// The default action is a publish, so the root carries the publish flags
	for _, name := range []string{"skip-build", "no-sync", "dry-run", "strict", "pause", "yes", "message"} {
		assert.NotNil(t, rootCmd.Flags().Lookup(name), "missing flag %q", name)
	}
}

func TestNewRootCmd_Version(t *testing.T) {
	rootCmd := NewRootCmd("1.2.3", "abc123", "2026-01-15")
	require.Equal(t, "1.2.3", rootCmd.Version)
}
