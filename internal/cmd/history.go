package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vaerpub/vaerpub/internal/pkg/history"
)

const (
	// DefaultHistoryLimit is the default number of log entries to display.
	DefaultHistoryLimit = 20
)

// NewHistoryCmd creates the history command and its subcommands.
func NewHistoryCmd() *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "View the publish run log",
		Long: `View past publish runs: timestamp, commit message, and whether the
run built, committed, and pushed.

Examples:
  vaerpub history           # show last 20 runs
  vaerpub history --limit 5 # show last 5 runs
  vaerpub history clear     # clear the log`,
		RunE: runHistoryList,
	}

	historyCmd.Flags().IntP("limit", "l", DefaultHistoryLimit, "Number of entries to display")

	historyCmd.AddCommand(newHistoryClearCmd())

	return historyCmd
}

// runHistoryList displays the log entries.
func runHistoryList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	_, cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if !cfg.History.Enabled {
		fmt.Println("Publish log is disabled. Enable it with: vaerpub config set history.enabled true")
		return nil
	}

	historyMgr := history.NewFileManager(cfg.History.FilePath, cfg.History.MaxEntries)

	entries, err := historyMgr.List(limit)
	if err != nil {
		return fmt.Errorf("failed to load publish log: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No publish runs recorded yet.")
		return nil
	}

	fmt.Printf("Showing %d most recent runs:\n\n", len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		printEntry(entries[i])
	}

	return nil
}

// printEntry renders one log entry.
func printEntry(e *history.Entry) {
	outcome := "no changes"
	switch {
	case e.Pushed:
		outcome = "published"
	case e.Committed:
		outcome = "committed, push failed"
	}

	fmt.Printf("%s  %-22s", e.Timestamp.Format("2006-01-02 15:04"), outcome)
	if e.Message != "" {
		fmt.Printf("  %s", e.Message)
	}
	fmt.Println()

	var notes []string
	if !e.BuildOK {
		notes = append(notes, "build failed")
	}
	if !e.SyncOK {
		notes = append(notes, "sync failed")
	}
	if len(e.Files) > 0 {
		notes = append(notes, fmt.Sprintf("%d file(s)", len(e.Files)))
	}
	if len(notes) > 0 {
		fmt.Printf("    %s\n", strings.Join(notes, ", "))
	}
}

// newHistoryClearCmd creates the 'history clear' subcommand.
func newHistoryClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the publish run log",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			historyMgr := history.NewFileManager(cfg.History.FilePath, cfg.History.MaxEntries)
			if err := historyMgr.Clear(); err != nil {
				return err
			}

			fmt.Println("Publish log cleared.")
			return nil
		},
	}
}
