package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vaerpub/vaerpub/internal/app"
	"github.com/vaerpub/vaerpub/internal/pkg/builder"
	"github.com/vaerpub/vaerpub/internal/pkg/config"
	apperrors "github.com/vaerpub/vaerpub/internal/pkg/errors"
	"github.com/vaerpub/vaerpub/internal/pkg/git"
	"github.com/vaerpub/vaerpub/internal/pkg/history"
	"github.com/vaerpub/vaerpub/internal/pkg/message"
	"github.com/vaerpub/vaerpub/internal/pkg/toolcheck"
	"github.com/vaerpub/vaerpub/internal/pkg/ui"
)

// PublishFlags holds the flags for the publish command.
type PublishFlags struct {
	SkipBuild     bool
	SkipSync      bool
	DryRun        bool
	Strict        bool
	Pause         bool
	Yes           bool
	MessagePrefix string
}

// NewPublishCmd creates the publish command.
func NewPublishCmd() *cobra.Command {
	flags := &PublishFlags{}

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Rebuild the page and publish it to the hosted site",
		Long: `Run the full publish workflow: build the page, pull --rebase from
the remote, stage all changes, and - when anything is staged - commit with
a timestamped message and push.

Examples:
  vaerpub publish               # full run
  vaerpub publish --skip-build  # publish whatever is in the working tree
  vaerpub publish --dry-run     # show what would be committed
  vaerpub publish --strict      # fail on build or sync errors`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPublish(cmd, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.SkipBuild, "skip-build", false, "Skip the page build step")
	cmd.Flags().BoolVar(&flags.SkipSync, "no-sync", false, "Skip pull --rebase before publishing")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "Stop before committing; report what would be published")
	cmd.Flags().BoolVar(&flags.Strict, "strict", false, "Abort when the build or sync step fails")
	cmd.Flags().BoolVar(&flags.Pause, "pause", false, "Wait for Enter before exiting")
	cmd.Flags().BoolVarP(&flags.Yes, "yes", "y", false, "Non-interactive mode: no prompts, no spinner")
	cmd.Flags().StringVarP(&flags.MessagePrefix, "message", "m", "", "Commit message prefix (default \"Oppdatering\")")

	return cmd
}

// runPublish executes the publish command logic.
func runPublish(cmd *cobra.Command, flags *PublishFlags) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	cfgMgr, cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if flags.MessagePrefix != "" {
		cfgMgr.SetOverride("publish.message_prefix", flags.MessagePrefix)
		cfg.Publish.MessagePrefix = flags.MessagePrefix
	}

	repoDir, err := resolveRepoDir(cmd, cfg)
	if err != nil {
		return err
	}

	// Every workflow step is an external program; a missing tool ends
	// the run before anything touches the repository.
	checker := toolcheck.NewChecker()
	tools := []string{"git"}
	if !flags.SkipBuild {
		tools = append(tools, cfg.Build.Command)
	}
	if err := checker.CheckAll(tools...); err != nil {
		return err
	}

	gitClient := git.NewClient(repoDir)
	if !gitClient.IsRepository(ctx) {
		return apperrors.NewNotARepositoryError(repoDir)
	}

	buildRunner := builder.NewExecRunner(
		cfg.Build.Command,
		cfg.Build.Args,
		repoDir,
		time.Duration(cfg.Build.TimeoutSeconds)*time.Second,
	)

	var uiMgr ui.Manager
	if flags.Yes {
		uiMgr = ui.NewNonInteractiveManager()
	} else {
		uiMgr = ui.NewDefaultManager(cfg.UI.ColorEnabled)
	}

	var historyMgr history.Manager
	if cfg.History.Enabled {
		historyMgr = history.NewFileManager(cfg.History.FilePath, cfg.History.MaxEntries)
	}

	composer := message.NewComposer(cfg.Publish.MessagePrefix)

	service := app.NewPublishService(gitClient, buildRunner, uiMgr, historyMgr, composer, cfg)

	opts := &app.PublishOptions{
		SkipBuild: flags.SkipBuild,
		SkipSync:  flags.SkipSync,
		DryRun:    flags.DryRun,
		Strict:    flags.Strict || cfg.Publish.Strict,
		Pause:     (flags.Pause || cfg.UI.Pause) && !flags.Yes,
	}

	_, err = service.Publish(ctx, opts)
	return err
}

// loadConfig builds the config manager honoring the global flags.
func loadConfig(cmd *cobra.Command) (*config.ViperManager, *config.Config, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	apperrors.SetVerbose(verbose)

	configPath, _ := cmd.Flags().GetString("config")
	cfgMgr, err := config.NewManager(configPath)
	if err != nil {
		return nil, nil, apperrors.Wrap(err, apperrors.ErrInvalidConfig, "failed to create config manager")
	}

	cfg, err := cfgMgr.Load()
	if err != nil {
		return nil, nil, apperrors.Wrap(err, apperrors.ErrInvalidConfig, "failed to load config")
	}

	if verbose {
		apperrors.Info("Config file: %s", cfgMgr.GetConfigPath())
	}

	return cfgMgr, cfg, nil
}

// resolveRepoDir picks the repository directory: flag > config > cwd.
// The directory is an explicit parameter all the way down; vaerpub never
// changes its own working directory.
func resolveRepoDir(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if dir, _ := cmd.Flags().GetString("repo"); dir != "" {
		return dir, nil
	}
	if cfg.Publish.RepoDir != "" {
		return cfg.Publish.RepoDir, nil
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrFileSystemError, "failed to resolve working directory")
	}
	return dir, nil
}

// printStagedSummary prints a short staged-file listing.
func printStagedSummary(files []git.StagedFile) {
	for _, f := range files {
		fmt.Printf("  %s  %s\n", f.Status, f.Path)
	}
}
