package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// EnvProduction is the default environment
	EnvProduction = "production"
	// EnvDevelopment enables debug output and a short interval
	EnvDevelopment = "development"
)

// Config holds the monitor configuration selected by environment name
type Config struct {
	// Environment is the preset name this config was built from
	Environment string `yaml:"environment"`

	// Interval is the time between health checks
	Interval time.Duration `yaml:"interval"`

	// AlertThreshold is a percentage in [0,100]
	AlertThreshold int `yaml:"alert_threshold"`

	// DebugMode adds the detailed check header and debug-only checks
	DebugMode bool `yaml:"debug_mode"`

	// VerboseLogging prints a summary line after each check
	VerboseLogging bool `yaml:"verbose_logging"`

	// Set when the interval or threshold came from a file or MONITOR_* variable
	intervalSet  bool
	thresholdSet bool
}

var presets = map[string]Config{
	EnvProduction: {
		Environment:    EnvProduction,
		Interval:       60000 * time.Millisecond,
		AlertThreshold: 80,
		DebugMode:      false,
	},
	EnvDevelopment: {
		Environment:    EnvDevelopment,
		Interval:       5000 * time.Millisecond,
		AlertThreshold: 90,
		DebugMode:      true,
		VerboseLogging: true,
	},
}

// Environments returns the names of all presets, sorted
func Environments() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preset returns a copy of the named preset
func Preset(name string) (Config, error) {
	cfg, ok := presets[name]
	if !ok {
		return Config{}, fmt.Errorf("unknown environment %q (valid: %s)",
			name, strings.Join(Environments(), ", "))
	}
	return cfg, nil
}

// EnvironmentFromEnv returns the environment name from MONITOR_ENV,
// falling back to NODE_ENV and then to production
func EnvironmentFromEnv() string {
	if env := os.Getenv("MONITOR_ENV"); env != "" {
		return env
	}
	if env := os.Getenv("NODE_ENV"); env != "" {
		return env
	}
	return EnvProduction
}

// FromEnv builds the configuration for EnvironmentFromEnv and applies overrides
//
// Environment variables:
//   - MONITOR_ENV / NODE_ENV: preset name (default: production)
//   - MONITOR_INTERVAL: check interval as a Go duration (e.g. 10s)
//   - MONITOR_ALERT_THRESHOLD: alert threshold percentage
//   - MONITOR_DEBUG: enable debug mode
//   - MONITOR_VERBOSE: enable verbose logging
//
// Returns an error if the environment is unknown or any override is malformed.
func FromEnv() (Config, error) {
	return Load("", "")
}

func applyEnvOverrides(cfg *Config) error {
	if os.Getenv("MONITOR_INTERVAL") != "" {
		cfg.intervalSet = true
	}
	if os.Getenv("MONITOR_ALERT_THRESHOLD") != "" {
		cfg.thresholdSet = true
	}
	if err := parseEnvDuration("MONITOR_INTERVAL", &cfg.Interval); err != nil {
		return err
	}
	if err := parseEnvInt("MONITOR_ALERT_THRESHOLD", &cfg.AlertThreshold); err != nil {
		return err
	}
	if err := parseEnvBool("MONITOR_DEBUG", &cfg.DebugMode); err != nil {
		return err
	}
	return parseEnvBool("MONITOR_VERBOSE", &cfg.VerboseLogging)
}

// fileConfig mirrors Config with pointer fields so absent keys keep preset values
type fileConfig struct {
	Environment    string  `yaml:"environment"`
	Interval       *string `yaml:"interval"`
	AlertThreshold *int    `yaml:"alert_threshold"`
	DebugMode      *bool   `yaml:"debug_mode"`
	VerboseLogging *bool   `yaml:"verbose_logging"`
}

// LoadFromFile loads the configuration from a YAML file.
// A missing file is treated as empty. Environment overrides are applied
// on top of the file values.
func LoadFromFile(path string) (Config, error) {
	return Load("", path)
}

// Load resolves the configuration in order of precedence:
//  1. the preset named by environment, else by the file, else by EnvironmentFromEnv
//  2. values from the YAML file at path, if path is set and the file exists
//  3. MONITOR_* environment overrides
func Load(environment, path string) (Config, error) {
	var fc fileConfig
	if path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		switch {
		case errors.Is(err, os.ErrNotExist):
			// No file, use defaults
		case err != nil:
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &fc); err != nil {
				return Config{}, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	name := environment
	if name == "" {
		name = fc.Environment
	}
	if name == "" {
		name = EnvironmentFromEnv()
	}
	cfg, err := Preset(name)
	if err != nil {
		return cfg, err
	}

	if fc.Interval != nil {
		d, err := time.ParseDuration(*fc.Interval)
		if err != nil {
			return cfg, fmt.Errorf("invalid interval %q: %w", *fc.Interval, err)
		}
		cfg.Interval = d
		cfg.intervalSet = true
	}
	if fc.AlertThreshold != nil {
		cfg.AlertThreshold = *fc.AlertThreshold
		cfg.thresholdSet = true
	}
	if fc.DebugMode != nil {
		cfg.DebugMode = *fc.DebugMode
	}
	if fc.VerboseLogging != nil {
		cfg.VerboseLogging = *fc.VerboseLogging
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid monitor configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks if the configuration has valid values
func (c Config) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive (got %v)", c.Interval)
	}
	if c.Interval > 24*time.Hour {
		return fmt.Errorf("interval too slow (maximum 24h, got %v)", c.Interval)
	}
	if c.AlertThreshold < 0 || c.AlertThreshold > 100 {
		return fmt.Errorf("alert_threshold must be between 0 and 100 (got %d)", c.AlertThreshold)
	}
	return nil
}

// IntervalMillis returns the interval in milliseconds
func (c Config) IntervalMillis() int64 {
	return c.Interval.Milliseconds()
}

// String returns a human-readable representation of the config
func (c Config) String() string {
	return fmt.Sprintf(
		"Config{Environment: %s, Interval: %dms, AlertThreshold: %d%%, Debug: %t, Verbose: %t}",
		c.Environment, c.IntervalMillis(), c.AlertThreshold, c.DebugMode, c.VerboseLogging,
	)
}

// MarshalYAML renders the interval as a duration string
func (c Config) MarshalYAML() (interface{}, error) {
	return struct {
		Environment    string `yaml:"environment"`
		Interval       string `yaml:"interval"`
		AlertThreshold int    `yaml:"alert_threshold"`
		DebugMode      bool   `yaml:"debug_mode"`
		VerboseLogging bool   `yaml:"verbose_logging"`
	}{c.Environment, c.Interval.String(), c.AlertThreshold, c.DebugMode, c.VerboseLogging}, nil
}

// parseEnvInt parses an int from an environment variable
func parseEnvInt(key string, dest *int) error {
	value := os.Getenv(key)
	if value == "" {
		return nil // Use default
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*dest = parsed
	return nil
}

// parseEnvBool parses a bool from an environment variable
func parseEnvBool(key string, dest *bool) error {
	value := os.Getenv(key)
	if value == "" {
		return nil // Use default
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*dest = parsed
	return nil
}

// parseEnvDuration parses a time.Duration from an environment variable
func parseEnvDuration(key string, dest *time.Duration) error {
	value := os.Getenv(key)
	if value == "" {
		return nil // Use default
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*dest = parsed
	return nil
}
