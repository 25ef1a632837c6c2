package types

import (
	"fmt"
	"time"
)

// RunMode identifies which monitor produced a check run
type RunMode string

const (
	ModeStandard     RunMode = "standard"
	ModeExperimental RunMode = "experimental"
)

// IsValid checks if the mode value is valid
func (m RunMode) IsValid() bool {
	switch m {
	case ModeStandard, ModeExperimental:
		return true
	}
	return false
}

// CheckRun is one stored health check run
type CheckRun struct {
	ID          string    `json:"id"`
	Environment string    `json:"environment"`
	Mode        RunMode   `json:"mode"`
	Status      string    `json:"status"` // HEALTHY or DEGRADED
	CheckCount  int       `json:"check_count"`
	StartedAt   time.Time `json:"started_at"`
	DurationMs  int64     `json:"duration_ms"`
}

// Validate checks if the run has valid field values
func (r *CheckRun) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("id is required")
	}
	if r.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if !r.Mode.IsValid() {
		return fmt.Errorf("invalid mode: %s", r.Mode)
	}
	if r.Status == "" {
		return fmt.Errorf("status is required")
	}
	if r.CheckCount < 0 {
		return fmt.Errorf("check_count cannot be negative (got %d)", r.CheckCount)
	}
	if r.StartedAt.IsZero() {
		return fmt.Errorf("started_at is required")
	}
	return nil
}
