package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/steveyegge/devops-monitor/internal/monitor"
)

// errDegraded makes the process exit 1 without printing an extra error line
type errDegraded struct{}

func (errDegraded) Error() string { return "system status degraded" }

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run a single health check and exit",
	Long: `Run one health check with the resolved configuration and print it.

Exits with status 1 if the system status is DEGRADED.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		history, err := openHistory(cmd)
		if err != nil {
			return err
		}
		if history != nil {
			defer func() { _ = history.Close() }()
		}

		m, err := monitor.New(&monitor.Deps{
			Config:  cfg,
			Out:     cmd.OutOrStdout(),
			ErrOut:  cmd.ErrOrStderr(),
			History: history,
		})
		if err != nil {
			return fmt.Errorf("failed to create monitor: %w", err)
		}

		report, err := m.CheckOnce(cmd.Context())
		if err != nil {
			return err
		}
		if !report.Healthy() {
			return errDegraded{}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
