package health

import (
	"context"
	"time"
)

// Check is a single system health check.
// Checks are simulated: they report a fixed reading and never touch the host.
type Check interface {
	// Name returns the label printed before the reading (e.g. "CPU usage").
	Name() string

	// DebugOnly reports whether the check only runs in debug mode.
	DebugOnly() bool

	// Run performs the check and returns its result.
	Run(ctx context.Context) Result
}

// Result is the outcome of one check.
type Result struct {
	Name  string `json:"name"`
	Value string `json:"value"` // e.g. "Normal", "Adequate", "9229"
	OK    bool   `json:"ok"`
}

// Status summarizes a whole report.
type Status string

const (
	// StatusHealthy means every check passed
	StatusHealthy Status = "HEALTHY"

	// StatusDegraded means at least one check failed
	StatusDegraded Status = "DEGRADED"
)

// Report is the outcome of one health check run.
type Report struct {
	ID        string        `json:"id"`
	CheckedAt time.Time     `json:"checked_at"`
	Debug     bool          `json:"debug"`
	Results   []Result      `json:"results"`
	Status    Status        `json:"status"`
	Duration  time.Duration `json:"duration"`
}

// Healthy reports whether the overall status is HEALTHY.
func (r *Report) Healthy() bool {
	return r.Status == StatusHealthy
}

// Timestamp formats CheckedAt as ISO-8601 UTC with millisecond precision.
func (r *Report) Timestamp() string {
	return FormatTimestamp(r.CheckedAt)
}

// FormatTimestamp formats t as ISO-8601 UTC with millisecond precision
// (e.g. 2025-01-02T03:04:05.678Z).
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

// Summarize returns HEALTHY when every result passed, otherwise DEGRADED.
func Summarize(results []Result) Status {
	for _, r := range results {
		if !r.OK {
			return StatusDegraded
		}
	}
	return StatusHealthy
}
