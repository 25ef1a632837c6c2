package storage

import (
	"context"
	"os"

	"github.com/steveyegge/devops-monitor/internal/storage/sqlite"
	"github.com/steveyegge/devops-monitor/internal/types"
)

// Storage defines the interface for check run history backends
type Storage interface {
	RecordRun(ctx context.Context, run *types.CheckRun) error
	RecentRuns(ctx context.Context, limit int) ([]*types.CheckRun, error)
	CountRuns(ctx context.Context) (int, error)

	// Lifecycle
	Close() error
}

// Config holds database configuration
type Config struct {
	// Path is the SQLite database file path
	// Default: ".monitor/history.db"
	// Special value ":memory:" creates an in-memory database (useful for tests)
	Path string
}

// DefaultPath is where history is kept when no path is given
const DefaultPath = ".monitor/history.db"

// DefaultConfig returns a config with sensible defaults.
// MONITOR_HISTORY_DB overrides the default path.
func DefaultConfig() *Config {
	path := DefaultPath
	if env := os.Getenv("MONITOR_HISTORY_DB"); env != "" {
		path = env
	}
	return &Config{Path: path}
}

// NewStorage creates a new SQLite storage backend
func NewStorage(ctx context.Context, cfg *Config) (Storage, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	// Default to standard path if not specified
	if cfg.Path == "" {
		cfg.Path = DefaultConfig().Path
	}

	return sqlite.Open(ctx, cfg.Path)
}
