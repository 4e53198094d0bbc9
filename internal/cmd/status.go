package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vaerpub/vaerpub/internal/app"
	apperrors "github.com/vaerpub/vaerpub/internal/pkg/errors"
	"github.com/vaerpub/vaerpub/internal/pkg/git"
)

// NewStatusCmd creates the status command.
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show what a publish run would pick up",
		Long: `Show the current branch, its upstream state, and the changes a
publish run would stage and commit. Nothing is modified.`,
		RunE: runStatus,
	}
}

// runStatus prints the repository state relevant to publishing.
func runStatus(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	_, cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	repoDir, err := resolveRepoDir(cmd, cfg)
	if err != nil {
		return err
	}

	client := git.NewClient(repoDir)
	if !client.IsRepository(ctx) {
		return apperrors.NewNotARepositoryError(repoDir)
	}

	branch, err := client.CurrentBranch(ctx)
	if err != nil {
		return err
	}

	head, err := client.Head(ctx)
	if err != nil {
		return err
	}

	hasUpstream, _ := client.HasUpstream(ctx)
	hasUnstaged, err := client.HasUnstagedChanges(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Repo:    %s\n", repoDir)
	fmt.Printf("Branch:  %s (%s)\n", branch, head)
	if hasUpstream {
		fmt.Println("Upstream: konfigurert")
	} else {
		fmt.Println("Upstream: mangler - push vil feile")
	}

	staged, err := client.StagedFiles(ctx)
	if err != nil {
		return err
	}

	switch {
	case len(staged) > 0:
		fmt.Printf("\n%d fil(er) klare for commit:\n", len(staged))
		printStagedSummary(staged)
	case hasUnstaged:
		fmt.Println("\nEndringer i arbeidstreet; en publisering vil stage og committe dem.")
	default:
		fmt.Println("\n" + app.MsgNoChanges)
	}

	return nil
}
