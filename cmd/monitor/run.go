package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/steveyegge/devops-monitor/internal/alert"
	"github.com/steveyegge/devops-monitor/internal/config"
	"github.com/steveyegge/devops-monitor/internal/monitor"
	"github.com/steveyegge/devops-monitor/internal/predict"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run health checks at the configured interval",
	Long: `Print the banner, run one health check immediately, then one per interval
until interrupted.

Examples:
  # Production preset (every 60000ms)
  monitor run

  # Development preset (every 5000ms, debug checks)
  MONITOR_ENV=development monitor run

  # Three checks, then exit
  monitor run --env development --count 3

  # Simulated predictive monitor (every 30000ms, alert above 75%
  # unless MONITOR_INTERVAL, MONITOR_ALERT_THRESHOLD, or --config set them)
  monitor run --experimental --seed 42

  # Record every run in SQLite
  monitor run --history-db .monitor/history.db`,
	RunE: runMonitor,
}

func init() {
	addRunFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Int("count", 0, "Stop after this many checks (0 runs until interrupted)")
	cmd.Flags().Bool("experimental", false, "Use the simulated predictive monitor")
	cmd.Flags().Int64("seed", 0, "Seed for simulated predictions (0 seeds from the clock)")
}

func runMonitor(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("count")
	experimental, _ := cmd.Flags().GetBool("experimental")
	seed, _ := cmd.Flags().GetInt64("seed")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	history, err := openHistory(cmd)
	if err != nil {
		return err
	}
	if history != nil {
		defer func() { _ = history.Close() }()
	}

	deps := &monitor.Deps{
		Config:    cfg,
		Out:       cmd.OutOrStdout(),
		ErrOut:    cmd.ErrOrStderr(),
		History:   history,
		MaxChecks: count,
	}
	if experimental {
		exp, err := newExperimental(cmd, cfg, seed)
		if err != nil {
			return err
		}
		deps.Experimental = exp
	}

	m, err := monitor.New(deps)
	if err != nil {
		return fmt.Errorf("failed to create monitor: %w", err)
	}

	if err := m.Run(ctx); err != nil {
		return err
	}
	if ctx.Err() != nil && cmd.Context().Err() == nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "\nMonitor: stopped")
	}
	return nil
}

func newExperimental(cmd *cobra.Command, cfg config.Config, seed int64) (*monitor.Experimental, error) {
	expCfg := config.DefaultExperimentalConfig().Apply(cfg)
	if err := expCfg.Validate(); err != nil {
		return nil, err
	}

	predictor := predict.NewFromTime()
	if seed != 0 {
		predictor = predict.New(seed)
	}

	notifier, err := alert.NewNotifier(cmd.OutOrStdout(), alert.DefaultConfig())
	if err != nil {
		return nil, err
	}

	return &monitor.Experimental{
		Config:    expCfg,
		Predictor: predictor,
		Alerts:    notifier,
	}, nil
}
