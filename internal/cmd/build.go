package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vaerpub/vaerpub/internal/pkg/builder"
	apperrors "github.com/vaerpub/vaerpub/internal/pkg/errors"
	"github.com/vaerpub/vaerpub/internal/pkg/toolcheck"
)

// NewBuildCmd creates the build command.
func NewBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Run the page builder without publishing",
		Long: `Run the configured page-build command in the repository directory
and report its outcome. Nothing is staged, committed, or pushed.

The build command defaults to "python3 build_weather_page.py" and can be
changed with 'vaerpub config set build.command' / 'build.args'.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
			defer cancel()

			_, cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			repoDir, err := resolveRepoDir(cmd, cfg)
			if err != nil {
				return err
			}

			if err := toolcheck.NewChecker().Check(cfg.Build.Command); err != nil {
				return err
			}

			runner := builder.NewExecRunner(
				cfg.Build.Command,
				cfg.Build.Args,
				repoDir,
				time.Duration(cfg.Build.TimeoutSeconds)*time.Second,
			)

			result, err := runner.Run(ctx)
			if err != nil {
				return err
			}

			if result.Output != "" {
				fmt.Println(result.Output)
			}

			if !result.OK() {
				return apperrors.NewBuildError(result.Err, "")
			}

			fmt.Printf("Bygget ferdig paa %s\n", result.Duration.Round(time.Millisecond))
			return nil
		},
	}
}
