package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/steveyegge/devops-monitor/internal/health"
	"github.com/steveyegge/devops-monitor/internal/storage"
	"github.com/steveyegge/devops-monitor/internal/storage/sqlite"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent check runs",
	Long: `List check runs recorded with --history-db, newest first.
Without --history-db, MONITOR_HISTORY_DB or .monitor/history.db is read.

Examples:
  monitor history --history-db .monitor/history.db
  monitor history --history-db .monitor/history.db --limit 50`,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		path := historyDB
		if path == "" {
			path = storage.DefaultConfig().Path
		}
		out := cmd.OutOrStdout()

		// Listing never creates a database
		if path != sqlite.MemoryPath {
			if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
				fmt.Fprintln(out, "No check runs recorded")
				return nil
			}
		}

		store, err := storage.NewStorage(cmd.Context(), &storage.Config{Path: path})
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer func() { _ = store.Close() }()

		runs, err := store.RecentRuns(cmd.Context(), limit)
		if err != nil {
			return err
		}

		if len(runs) == 0 {
			fmt.Fprintln(out, "No check runs recorded")
			return nil
		}

		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()

		for _, run := range runs {
			status := green(run.Status)
			if run.Status != string(health.StatusHealthy) {
				status = red(run.Status)
			}
			fmt.Fprintf(out, "%s  %-11s  %-12s  %s  %d checks  %dms  %s\n",
				health.FormatTimestamp(run.StartedAt), run.Environment, run.Mode,
				status, run.CheckCount, run.DurationMs, run.ID)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Maximum number of runs to show")
	rootCmd.AddCommand(historyCmd)
}
