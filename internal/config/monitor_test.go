package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func clearMonitorEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"MONITOR_ENV", "NODE_ENV", "MONITOR_INTERVAL",
		"MONITOR_ALERT_THRESHOLD", "MONITOR_DEBUG", "MONITOR_VERBOSE",
	} {
		t.Setenv(key, "")
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		env       string
		interval  time.Duration
		threshold int
		debug     bool
		verbose   bool
	}{
		{EnvProduction, 60000 * time.Millisecond, 80, false, false},
		{EnvDevelopment, 5000 * time.Millisecond, 90, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg, err := Preset(tt.env)
			require.NoError(t, err)
			assert.Equal(t, tt.env, cfg.Environment)
			assert.Equal(t, tt.interval, cfg.Interval)
			assert.Equal(t, tt.threshold, cfg.AlertThreshold)
			assert.Equal(t, tt.debug, cfg.DebugMode)
			assert.Equal(t, tt.verbose, cfg.VerboseLogging)
			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestPresetIntervalMillis(t *testing.T) {
	prod, _ := Preset(EnvProduction)
	dev, _ := Preset(EnvDevelopment)
	if prod.IntervalMillis() != 60000 {
		t.Errorf("production interval = %dms, want 60000ms", prod.IntervalMillis())
	}
	if dev.IntervalMillis() != 5000 {
		t.Errorf("development interval = %dms, want 5000ms", dev.IntervalMillis())
	}
}

func TestPresetUnknown(t *testing.T) {
	_, err := Preset("staging")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown environment "staging"`)
	assert.Contains(t, err.Error(), "development, production")
}

func TestPresetReturnsCopy(t *testing.T) {
	cfg, _ := Preset(EnvProduction)
	cfg.AlertThreshold = 1

	again, _ := Preset(EnvProduction)
	assert.Equal(t, 80, again.AlertThreshold)
}

func TestEnvironmentFromEnv(t *testing.T) {
	tests := []struct {
		name    string
		monitor string
		node    string
		want    string
	}{
		{"defaults to production", "", "", EnvProduction},
		{"NODE_ENV fallback", "", "development", EnvDevelopment},
		{"MONITOR_ENV wins", "production", "development", EnvProduction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearMonitorEnv(t)
			t.Setenv("MONITOR_ENV", tt.monitor)
			t.Setenv("NODE_ENV", tt.node)
			if got := EnvironmentFromEnv(); got != tt.want {
				t.Errorf("EnvironmentFromEnv() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFromEnv(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		wantErr string
		check   func(t *testing.T, cfg Config)
	}{
		{
			name:    "no environment variables uses production",
			envVars: map[string]string{},
			check: func(t *testing.T, cfg Config) {
				want, _ := Preset(EnvProduction)
				assert.Equal(t, want, cfg)
			},
		},
		{
			name: "development preset with overrides",
			envVars: map[string]string{
				"MONITOR_ENV":             "development",
				"MONITOR_INTERVAL":        "2s",
				"MONITOR_ALERT_THRESHOLD": "50",
				"MONITOR_DEBUG":           "false",
			},
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, EnvDevelopment, cfg.Environment)
				assert.Equal(t, 2*time.Second, cfg.Interval)
				assert.Equal(t, 50, cfg.AlertThreshold)
				assert.False(t, cfg.DebugMode)
				assert.True(t, cfg.VerboseLogging)
			},
		},
		{
			name:    "unknown environment",
			envVars: map[string]string{"NODE_ENV": "qa"},
			wantErr: `unknown environment "qa"`,
		},
		{
			name:    "malformed interval",
			envVars: map[string]string{"MONITOR_INTERVAL": "soon"},
			wantErr: "invalid value for MONITOR_INTERVAL",
		},
		{
			name:    "malformed threshold",
			envVars: map[string]string{"MONITOR_ALERT_THRESHOLD": "high"},
			wantErr: "invalid value for MONITOR_ALERT_THRESHOLD",
		},
		{
			name:    "malformed bool",
			envVars: map[string]string{"MONITOR_VERBOSE": "maybe"},
			wantErr: "invalid value for MONITOR_VERBOSE",
		},
		{
			name:    "threshold out of range",
			envVars: map[string]string{"MONITOR_ALERT_THRESHOLD": "150"},
			wantErr: "alert_threshold must be between 0 and 100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearMonitorEnv(t)
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg, err := FromEnv()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestValidate(t *testing.T) {
	base, _ := Preset(EnvProduction)

	zero := base
	zero.Interval = 0
	if err := zero.Validate(); err == nil {
		t.Error("expected error for zero interval")
	}

	slow := base
	slow.Interval = 48 * time.Hour
	if err := slow.Validate(); err == nil {
		t.Error("expected error for 48h interval")
	}

	negative := base
	negative.AlertThreshold = -1
	if err := negative.Validate(); err == nil {
		t.Error("expected error for negative threshold")
	}
}

func TestLoadFromFile(t *testing.T) {
	clearMonitorEnv(t)
	path := filepath.Join(t.TempDir(), "monitor.yaml")
	content := `environment: development
interval: 250ms
alert_threshold: 70
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.Environment)
	assert.Equal(t, 250*time.Millisecond, cfg.Interval)
	assert.Equal(t, 70, cfg.AlertThreshold)
	assert.True(t, cfg.DebugMode, "absent keys keep preset values")
}

func TestLoadFromFile_EnvOverridesFile(t *testing.T) {
	clearMonitorEnv(t)
	t.Setenv("MONITOR_DEBUG", "false")
	path := filepath.Join(t.TempDir(), "monitor.yaml")
	require.NoError(t, os.WriteFile(path, []byte("environment: development\n"), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.False(t, cfg.DebugMode)
}

func TestLoadFromFile_Missing(t *testing.T) {
	clearMonitorEnv(t)
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, EnvProduction, cfg.Environment)
}

func TestLoadFromFile_Invalid(t *testing.T) {
	clearMonitorEnv(t)
	dir := t.TempDir()

	cases := map[string]string{
		"bad yaml":     "environment: [unterminated",
		"bad interval": "interval: forever\n",
		"bad env":      "environment: staging\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(name, " ", "_")+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))
			_, err := LoadFromFile(path)
			assert.Error(t, err)
		})
	}
}

func TestConfigMarshalYAML(t *testing.T) {
	cfg, _ := Preset(EnvDevelopment)
	out, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(out), "interval: 5s")
	assert.Contains(t, string(out), "environment: development")
}

func TestConfigString(t *testing.T) {
	cfg, _ := Preset(EnvProduction)
	s := cfg.String()
	if !strings.Contains(s, "Interval: 60000ms") || !strings.Contains(s, "AlertThreshold: 80%") {
		t.Errorf("unexpected String(): %s", s)
	}
}

func TestLoadEnvironmentPrecedence(t *testing.T) {
	clearMonitorEnv(t)
	t.Setenv("MONITOR_ENV", "production")
	path := filepath.Join(t.TempDir(), "monitor.yaml")
	require.NoError(t, os.WriteFile(path, []byte("environment: development\n"), 0644))

	cfg, err := Load("", path)
	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.Environment, "file beats MONITOR_ENV")

	cfg, err = Load(EnvProduction, path)
	require.NoError(t, err)
	assert.Equal(t, EnvProduction, cfg.Environment, "explicit name beats file")

	cfg, err = Load("", "")
	require.NoError(t, err)
	assert.Equal(t, EnvProduction, cfg.Environment)
}
