package config

import (
	"fmt"
	"time"

	"golang.org/x/mod/semver"
)

// ExperimentalVersion is the release tag of the predictive monitor
const ExperimentalVersion = "v3.0.0-experimental"

// ExperimentalConfig holds settings for the simulated predictive monitor.
// None of these values drive real collection; they only shape the output.
type ExperimentalConfig struct {
	Version          string        `yaml:"version"`
	Interval         time.Duration `yaml:"interval"`
	AlertThreshold   int           `yaml:"alert_threshold"`
	MetricsEndpoint  string        `yaml:"metrics_endpoint"`
	AIEnabled        bool          `yaml:"ai_enabled"`
	ModelPath        string        `yaml:"model_path"`
	CloudProviders   []string      `yaml:"cloud_providers"`
	PredictiveWindow time.Duration `yaml:"predictive_window"`
}

// DefaultExperimentalConfig returns the predictive monitor defaults
func DefaultExperimentalConfig() ExperimentalConfig {
	return ExperimentalConfig{
		Version:          ExperimentalVersion,
		Interval:         30000 * time.Millisecond,
		AlertThreshold:   75,
		MetricsEndpoint:  "http://localhost:9000/metrics",
		AIEnabled:        true,
		ModelPath:        "./models/anomaly-detection.h5",
		CloudProviders:   []string{"aws", "azure", "gcp"},
		PredictiveWindow: 300 * time.Second,
	}
}

// Validate checks the experimental configuration
func (c ExperimentalConfig) Validate() error {
	if !semver.IsValid(c.Version) {
		return fmt.Errorf("invalid version %q (expected semver like v3.0.0)", c.Version)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive (got %v)", c.Interval)
	}
	if c.AlertThreshold < 0 || c.AlertThreshold > 100 {
		return fmt.Errorf("alert_threshold must be between 0 and 100 (got %d)", c.AlertThreshold)
	}
	if c.PredictiveWindow <= 0 {
		return fmt.Errorf("predictive_window must be positive (got %v)", c.PredictiveWindow)
	}
	return nil
}

// ShortVersion renders the version as major.minor plus any prerelease,
// e.g. v3.0.0-experimental becomes v3.0-experimental
func (c ExperimentalConfig) ShortVersion() string {
	if !semver.IsValid(c.Version) {
		return c.Version
	}
	return semver.MajorMinor(c.Version) + semver.Prerelease(c.Version)
}

// Apply returns a copy of c with the interval and alert threshold taken from
// base wherever base set them explicitly. Preset values do not override.
func (c ExperimentalConfig) Apply(base Config) ExperimentalConfig {
	if base.intervalSet {
		c.Interval = base.Interval
	}
	if base.thresholdSet {
		c.AlertThreshold = base.AlertThreshold
	}
	c.CloudProviders = append([]string(nil), c.CloudProviders...)
	return c
}

// MarshalYAML renders the durations as duration strings
func (c ExperimentalConfig) MarshalYAML() (interface{}, error) {
	return struct {
		Version          string   `yaml:"version"`
		Interval         string   `yaml:"interval"`
		AlertThreshold   int      `yaml:"alert_threshold"`
		MetricsEndpoint  string   `yaml:"metrics_endpoint"`
		AIEnabled        bool     `yaml:"ai_enabled"`
		ModelPath        string   `yaml:"model_path"`
		CloudProviders   []string `yaml:"cloud_providers"`
		PredictiveWindow string   `yaml:"predictive_window"`
	}{
		c.Version, c.Interval.String(), c.AlertThreshold, c.MetricsEndpoint,
		c.AIEnabled, c.ModelPath, c.CloudProviders, c.PredictiveWindow.String(),
	}, nil
}
