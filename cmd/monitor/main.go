package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/steveyegge/devops-monitor/internal/config"
	"github.com/steveyegge/devops-monitor/internal/storage"
)

// Version is set at build time with -ldflags "-X main.Version=..."
var Version = "dev"

var (
	envName    string
	configPath string
	historyDB  string
	noColor    bool
)

var rootCmd = &cobra.Command{
	Use:   "monitor",
	Short: "DevOps Simulator system monitor",
	Long: `Print simulated system health checks at a fixed interval.

The configuration preset is selected by environment name:
  production   check every 60000ms, alert threshold 80%, debug off
  development  check every 5000ms, alert threshold 90%, debug on

The environment comes from --env, the config file, MONITOR_ENV, or NODE_ENV,
in that order. Readings are simulated; nothing is collected from the host.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			color.NoColor = true
		}
	},
	// Running without a subcommand starts the monitor loop
	RunE: runMonitor,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&envName, "env", "e", "", "Environment preset (production, development)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&historyDB, "history-db", "", "SQLite file to record check runs in (disabled when empty)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	addRunFlags(rootCmd)
}

// loadConfig resolves the monitor configuration from flags, file, and environment
func loadConfig() (config.Config, error) {
	return config.Load(envName, configPath)
}

// openHistory opens the history store when --history-db is set; nil otherwise
func openHistory(cmd *cobra.Command) (storage.Storage, error) {
	if historyDB == "" {
		return nil, nil
	}
	store, err := storage.NewStorage(cmd.Context(), &storage.Config{Path: historyDB})
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	return store, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var degraded errDegraded
		if !errors.As(err, &degraded) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
