// Package main is the entry point for the vaerpub CLI.
// vaerpub rebuilds the locally generated weather-history page and publishes
// it to the hosted static site through git.
package main

import (
	"fmt"
	"os"

	"github.com/vaerpub/vaerpub/internal/cmd"
	apperrors "github.com/vaerpub/vaerpub/internal/pkg/errors"
)

// Version information - set via ldflags during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := cmd.NewRootCmd(version, commit, date)
	if err := rootCmd.Execute(); err != nil {
		if apperrors.IsVerbose() {
			fmt.Fprintln(os.Stderr, apperrors.FormatErrorVerbose(err))
		} else {
			fmt.Fprintln(os.Stderr, apperrors.FormatError(err))
		}
		os.Exit(apperrors.GetExitCode(err))
	}
}
