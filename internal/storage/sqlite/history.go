package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/steveyegge/devops-monitor/internal/types"
)

// MemoryPath opens a private in-memory database
const MemoryPath = ":memory:"

// HistoryStore records health check runs in SQLite
type HistoryStore struct {
	db *sql.DB
}

// Open creates or opens the history database at path and initializes the schema
func Open(ctx context.Context, path string) (*HistoryStore, error) {
	dsn := path
	if path != MemoryPath {
		// Ensure directory exists
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
		dsn = "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(wal)"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps :memory: databases shared across queries
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &HistoryStore{db: db}, nil
}

// RecordRun stores a completed check run
func (s *HistoryStore) RecordRun(ctx context.Context, run *types.CheckRun) error {
	if err := run.Validate(); err != nil {
		return fmt.Errorf("invalid check run: %w", err)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO check_runs (id, environment, mode, status, check_count, started_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Environment, string(run.Mode), run.Status, run.CheckCount,
		run.StartedAt.UnixMilli(), run.DurationMs)
	if err != nil {
		return fmt.Errorf("failed to insert check run: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first
func (s *HistoryStore) RecentRuns(ctx context.Context, limit int) ([]*types.CheckRun, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive (got %d)", limit)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, environment, mode, status, check_count, started_at, duration_ms
		FROM check_runs
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query check runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []*types.CheckRun
	for rows.Next() {
		run := &types.CheckRun{}
		var mode string
		var startedAt int64
		if err := rows.Scan(&run.ID, &run.Environment, &mode, &run.Status,
			&run.CheckCount, &startedAt, &run.DurationMs); err != nil {
			return nil, fmt.Errorf("failed to scan check run: %w", err)
		}
		run.Mode = types.RunMode(mode)
		run.StartedAt = time.UnixMilli(startedAt).UTC()
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating check run rows: %w", err)
	}

	return runs, nil
}

// CountRuns returns the number of stored runs
func (s *HistoryStore) CountRuns(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM check_runs").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count check runs: %w", err)
	}
	return n, nil
}

// Close closes the database
func (s *HistoryStore) Close() error {
	return s.db.Close()
}
