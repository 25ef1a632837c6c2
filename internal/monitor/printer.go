package monitor

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/steveyegge/devops-monitor/internal/config"
	"github.com/steveyegge/devops-monitor/internal/health"
	"github.com/steveyegge/devops-monitor/internal/predict"
)

const (
	bannerRule             = "================================="
	experimentalBannerRule = "================================================"
)

// Printer renders monitor output as console lines.
type Printer struct {
	out   io.Writer
	green func(a ...interface{}) string
	red   func(a ...interface{}) string
	cyan  func(a ...interface{}) string
}

// NewPrinter creates a printer writing to out.
// Colors follow color.NoColor, so output to a pipe or file stays plain.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{
		out:   out,
		green: color.New(color.FgGreen).SprintFunc(),
		red:   color.New(color.FgRed).SprintFunc(),
		cyan:  color.New(color.FgCyan).SprintFunc(),
	}
}

func (p *Printer) println(a ...interface{}) {
	fmt.Fprintln(p.out, a...)
}

func (p *Printer) printf(format string, a ...interface{}) {
	fmt.Fprintf(p.out, format, a...)
}

// Banner prints the startup banner.
func (p *Printer) Banner(cfg config.Config) {
	debug := "DISABLED"
	if cfg.DebugMode {
		debug = "ENABLED"
	}
	p.println(bannerRule)
	p.println("DevOps Simulator - Monitor")
	p.printf("Environment: %s\n", cfg.Environment)
	p.printf("Debug: %s\n", debug)
	p.println(bannerRule)
}

// ExperimentalBanner prints the predictive monitor banner.
func (p *Printer) ExperimentalBanner(exp config.ExperimentalConfig) {
	p.println(experimentalBannerRule)
	p.printf("DevOps Simulator - AI Monitor %s\n", exp.ShortVersion())
	p.println("AI-Powered Predictive Monitoring")
	p.println(experimentalBannerRule)
}

// Schedule prints the check interval.
func (p *Printer) Schedule(interval time.Duration) {
	p.printf("Monitoring every %dms\n", interval.Milliseconds())
}

// CheckHeader prints the line that opens a check.
func (p *Printer) CheckHeader(ts string, debug bool) {
	if debug {
		p.printf("\n[%s] === DETAILED HEALTH CHECK ===\n", ts)
		return
	}
	p.printf("[%s] Checking system health...\n", ts)
}

// Results prints one line per check result.
func (p *Printer) Results(results []health.Result) {
	for _, r := range results {
		if r.OK {
			p.printf("%s %s: %s\n", p.green("✓"), r.Name, r.Value)
		} else {
			p.printf("%s %s: %s\n", p.red("✗"), r.Name, r.Value)
		}
	}
}

// Status prints the overall status line.
func (p *Printer) Status(status health.Status) {
	text := string(status)
	if status == health.StatusHealthy {
		text = p.green(text)
	} else {
		text = p.red(text)
	}
	p.printf("System Status: %s\n", text)
}

// Report prints a standard health check.
func (p *Printer) Report(report *health.Report, verbose bool) {
	p.CheckHeader(report.Timestamp(), report.Debug)
	p.Results(report.Results)
	p.Status(report.Status)
	if verbose {
		p.Summary(report)
	}
}

// Summary prints the verbose per-run line.
func (p *Printer) Summary(report *health.Report) {
	p.printf("%s Run %s completed: %d checks in %v\n",
		p.cyan("ⓘ"), report.ID, len(report.Results), report.Duration)
}

// ComprehensiveHeader opens an experimental check.
func (p *Printer) ComprehensiveHeader(ts string) {
	p.printf("[%s] === COMPREHENSIVE HEALTH CHECK ===\n", ts)
}

// CloudStatuses prints each provider's simulated status.
func (p *Printer) CloudStatuses(statuses []predict.CloudStatus) {
	for _, s := range statuses {
		p.printf("%s Status:\n", s.Label())
		p.printf("Instances: %d\n", s.Instances)
		p.printf("Load: %.2f%%\n", s.Load)
		p.printf("Health: %s\n", s.Health)
	}
}

// Usage prints simulated host usage.
func (p *Printer) Usage(u predict.Usage) {
	p.printf("CPU: %.2f%%\n", u.CPU)
	p.printf("Memory: %.2f%%\n", u.Memory)
	p.printf("Disk: %.2f%% used\n", u.Disk)
}

// Prediction prints a simulated forecast.
func (p *Printer) Prediction(pred predict.Prediction) {
	conf := fmt.Sprintf("%.2f", pred.Confidence)
	p.println("AI Prediction Engine:")
	p.println("Analyzing historical patterns...")
	p.printf("Predicted metrics in %ds:\n", int64(pred.Window/time.Second))
	p.printf("CPU: %.2f%% (confidence: %s%%)\n", pred.CPU, conf)
	p.printf("Memory: %.2f%% (confidence: %s%%)\n", pred.Memory, conf)
	p.printf("Traffic: %.0f req/s (confidence: %s%%)\n", pred.Traffic, conf)
}
