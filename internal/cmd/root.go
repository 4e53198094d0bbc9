// Package cmd contains the CLI command definitions for vaerpub.
package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the vaerpub CLI.
func NewRootCmd(version, commitHash, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vaerpub",
		Short: "Build and publish the local weather-history page",
		Long: `vaerpub rebuilds the locally generated weather-history page and
publishes it to the hosted static site.

A publish run invokes the external page builder, synchronizes with the
remote (pull --rebase), stages all working-tree changes, and - when the
staged snapshot differs from the last commit - records a timestamped
commit ("Oppdatering YYYY-MM-DD HH:MM") and pushes it. Build and sync
failures are tolerated by default; pass --strict to abort on them.`,
		Version: version,
		// Running vaerpub with no subcommand performs a publish,
		// matching the original double-click workflow.
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := &PublishFlags{}
			flags.SkipBuild, _ = cmd.Flags().GetBool("skip-build")
			flags.SkipSync, _ = cmd.Flags().GetBool("no-sync")
			flags.DryRun, _ = cmd.Flags().GetBool("dry-run")
			flags.Strict, _ = cmd.Flags().GetBool("strict")
			flags.Pause, _ = cmd.Flags().GetBool("pause")
			flags.Yes, _ = cmd.Flags().GetBool("yes")
			flags.MessagePrefix, _ = cmd.Flags().GetString("message")

			return runPublish(cmd, flags)
		},
	}

	rootCmd.SetVersionTemplate(`vaerpub {{.Version}}
Commit: ` + commitHash + `
Built:  ` + date + "\n")

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().String("config", "", "Config file path (default: ~/.vaerpub/config.yaml)")
	rootCmd.PersistentFlags().StringP("repo", "r", "", "Repository directory to publish (default: current directory)")

	// Publish flags on the root command for the default action
	addPublishFlags(rootCmd)

	// Subcommands
	rootCmd.AddCommand(NewPublishCmd())
	rootCmd.AddCommand(NewBuildCmd())
	rootCmd.AddCommand(NewStatusCmd())
	rootCmd.AddCommand(NewSnoCmd())
	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewHistoryCmd())
	rootCmd.AddCommand(NewConfigCmd())

	return rootCmd
}

// addPublishFlags registers the publish flag set on a command.
func addPublishFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("skip-build", false, "Skip the page build step")
	cmd.Flags().Bool("no-sync", false, "Skip pull --rebase before publishing")
	cmd.Flags().Bool("dry-run", false, "Stop before committing; report what would be published")
	cmd.Flags().Bool("strict", false, "Abort when the build or sync step fails")
	cmd.Flags().Bool("pause", false, "Wait for Enter before exiting")
	cmd.Flags().BoolP("yes", "y", false, "Non-interactive mode: no prompts, no spinner")
	cmd.Flags().StringP("message", "m", "", "Commit message prefix (default \"Oppdatering\")")
}
