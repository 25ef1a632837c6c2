package monitor

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/steveyegge/devops-monitor/internal/alert"
	"github.com/steveyegge/devops-monitor/internal/config"
	"github.com/steveyegge/devops-monitor/internal/health"
	"github.com/steveyegge/devops-monitor/internal/predict"
	"github.com/steveyegge/devops-monitor/internal/storage"
	"github.com/steveyegge/devops-monitor/internal/types"
)

// Monitor runs health checks on a fixed interval and prints the results
type Monitor struct {
	mu sync.RWMutex

	// Configuration
	config       config.Config
	experimental *Experimental
	maxChecks    int

	// Components
	registry *health.Registry
	printer  *Printer
	history  storage.Storage
	errOut   io.Writer
	now      func() time.Time

	// Control
	cancel context.CancelFunc
	done   chan struct{}

	// State
	running bool
	checks  int
	lastErr error
}

// Experimental enables the simulated predictive monitor
type Experimental struct {
	Config    config.ExperimentalConfig
	Predictor *predict.Predictor
	Alerts    *alert.Notifier
}

// Deps holds dependencies for creating a Monitor
type Deps struct {
	Config   config.Config
	Registry *health.Registry // Default: health.NewDefaultRegistry()
	Out      io.Writer        // Default: os.Stdout
	ErrOut   io.Writer        // Default: os.Stderr
	History  storage.Storage  // Optional
	Now      func() time.Time // Default: time.Now

	// Experimental is nil for the standard monitor
	Experimental *Experimental

	// MaxChecks stops Run after this many checks; 0 runs until cancelled
	MaxChecks int
}

// New creates a monitor
func New(deps *Deps) (*Monitor, error) {
	if deps == nil {
		return nil, fmt.Errorf("deps are required")
	}
	if err := deps.Config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if deps.MaxChecks < 0 {
		return nil, fmt.Errorf("max_checks cannot be negative (got %d)", deps.MaxChecks)
	}

	exp := deps.Experimental
	if exp != nil {
		if err := exp.Config.Validate(); err != nil {
			return nil, fmt.Errorf("invalid experimental config: %w", err)
		}
		if exp.Predictor == nil {
			return nil, fmt.Errorf("experimental predictor is required")
		}
		if exp.Alerts == nil {
			return nil, fmt.Errorf("experimental alert notifier is required")
		}
	}

	registry := deps.Registry
	if registry == nil {
		registry = health.NewDefaultRegistry()
	}
	out := deps.Out
	if out == nil {
		out = os.Stdout
	}
	errOut := deps.ErrOut
	if errOut == nil {
		errOut = os.Stderr
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	registry.SetClock(now)

	return &Monitor{
		config:       deps.Config,
		experimental: exp,
		maxChecks:    deps.MaxChecks,
		registry:     registry,
		printer:      NewPrinter(out),
		history:      deps.History,
		errOut:       errOut,
		now:          now,
	}, nil
}

// Interval returns the effective check interval
func (m *Monitor) Interval() time.Duration {
	if m.experimental != nil {
		return m.experimental.Config.Interval
	}
	return m.config.Interval
}

// Checks returns how many checks have completed
func (m *Monitor) Checks() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.checks
}

// Run prints the banner, checks immediately, then checks once per interval
// until ctx is cancelled or MaxChecks is reached. Cancellation is not an error.
func (m *Monitor) Run(ctx context.Context) error {
	if m.experimental != nil {
		m.printer.ExperimentalBanner(m.experimental.Config)
	} else {
		m.printer.Banner(m.config)
	}
	m.printer.Schedule(m.Interval())

	if _, err := m.CheckOnce(ctx); err != nil {
		return ignoreCancel(ctx, err)
	}
	if m.limitReached() {
		return nil
	}

	ticker := time.NewTicker(m.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-ticker.C:
			if _, err := m.CheckOnce(ctx); err != nil {
				return ignoreCancel(ctx, err)
			}
			if m.limitReached() {
				return nil
			}
		}
	}
}

// ignoreCancel drops errors caused by ctx being cancelled mid-check
func ignoreCancel(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func (m *Monitor) limitReached() bool {
	return m.maxChecks > 0 && m.Checks() >= m.maxChecks
}

// Start runs the monitor loop in the background
func (m *Monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return fmt.Errorf("monitor already running")
	}

	loopCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.done = make(chan struct{})
	m.running = true
	m.lastErr = nil

	go func(done chan struct{}) {
		defer close(done)
		err := m.Run(loopCtx)

		m.mu.Lock()
		m.lastErr = err
		m.running = false
		m.mu.Unlock()
	}(m.done)

	return nil
}

// Stop cancels the background loop and waits for it to exit.
// It returns the error the loop ended with, if any.
func (m *Monitor) Stop() error {
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.mu.Unlock()

	if done == nil {
		return nil
	}
	cancel()
	<-done

	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastErr
}

// Wait blocks until the background loop exits on its own
func (m *Monitor) Wait() error {
	m.mu.RLock()
	done := m.done
	m.mu.RUnlock()

	if done == nil {
		return nil
	}
	<-done

	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastErr
}

// CheckOnce runs a single check, prints it, and records it in history.
// A check cut short by ctx is neither printed nor recorded.
func (m *Monitor) CheckOnce(ctx context.Context) (*health.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var report *health.Report
	mode := types.ModeStandard

	if m.experimental != nil {
		var err error
		report, err = m.experimentalCheck(ctx)
		if err != nil {
			return nil, err
		}
		mode = types.ModeExperimental
	} else {
		report = m.registry.Run(ctx, m.config.DebugMode)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m.printer.Report(report, m.config.VerboseLogging)
	}

	m.mu.Lock()
	m.checks++
	m.mu.Unlock()

	m.record(ctx, report, mode)
	return report, nil
}

func (m *Monitor) experimentalCheck(ctx context.Context) (*health.Report, error) {
	exp := m.experimental
	started := m.now()

	statuses, err := exp.Predictor.CloudStatuses(ctx, exp.Config.CloudProviders)
	if err != nil {
		return nil, fmt.Errorf("cloud status probe failed: %w", err)
	}

	report := &health.Report{
		ID:        uuid.New().String(),
		CheckedAt: started,
		Debug:     m.config.DebugMode,
	}
	for _, s := range statuses {
		report.Results = append(report.Results, health.Result{
			Name:  s.Label(),
			Value: string(s.Health),
			OK:    s.Health == health.StatusHealthy,
		})
	}
	report.Status = health.Summarize(report.Results)

	m.printer.ComprehensiveHeader(report.Timestamp())
	m.printer.CloudStatuses(statuses)
	m.printer.Usage(exp.Predictor.SystemUsage())

	if exp.Config.AIEnabled {
		pred := exp.Predictor.Predict(exp.Config.PredictiveWindow)
		m.printer.Prediction(pred)
		if pred.ExceedsCPU(exp.Config.AlertThreshold) {
			exp.Alerts.Notify(alert.HighCPUMessage)
		}
	}

	report.Duration = m.now().Sub(started)
	m.printer.Status(report.Status)
	if m.config.VerboseLogging {
		m.printer.Summary(report)
	}
	return report, nil
}

func (m *Monitor) record(ctx context.Context, report *health.Report, mode types.RunMode) {
	if m.history == nil {
		return
	}
	run := &types.CheckRun{
		ID:          report.ID,
		Environment: m.config.Environment,
		Mode:        mode,
		Status:      string(report.Status),
		CheckCount:  len(report.Results),
		StartedAt:   report.CheckedAt,
		DurationMs:  report.Duration.Milliseconds(),
	}
	// History is best effort; the loop keeps going without it
	if err := m.history.RecordRun(context.WithoutCancel(ctx), run); err != nil {
		fmt.Fprintf(m.errOut, "Monitor: failed to record run %s: %v\n", run.ID, err)
	}
}
