package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steveyegge/devops-monitor/internal/types"
)

func newTestStore(t *testing.T) *HistoryStore {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func makeRun(id string, startedAt time.Time) *types.CheckRun {
	return &types.CheckRun{
		ID:          id,
		Environment: "development",
		Mode:        types.ModeStandard,
		Status:      "HEALTHY",
		CheckCount:  5,
		StartedAt:   startedAt,
		DurationMs:  3,
	}
}

func TestRecordAndRecentRuns(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		run := makeRun(fmt.Sprintf("run-%d", i), base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, store.RecordRun(ctx, run))
	}

	runs, err := store.RecentRuns(ctx, 3)
	require.NoError(t, err)
	require.Len(t, runs, 3)

	assert.Equal(t, "run-4", runs[0].ID)
	assert.Equal(t, "run-3", runs[1].ID)
	assert.Equal(t, "run-2", runs[2].ID)
	assert.Equal(t, base.Add(4*time.Minute), runs[0].StartedAt)
	assert.Equal(t, types.ModeStandard, runs[0].Mode)
	assert.Equal(t, 5, runs[0].CheckCount)
	assert.Equal(t, int64(3), runs[0].DurationMs)

	count, err := store.CountRuns(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestRecordRunRejectsInvalid(t *testing.T) {
	store := newTestStore(t)

	run := makeRun("", time.Now())
	err := store.RecordRun(context.Background(), run)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id is required")
}

func TestRecordRunDuplicateID(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.RecordRun(ctx, makeRun("dup", time.Now())))
	assert.Error(t, store.RecordRun(ctx, makeRun("dup", time.Now())))
}

func TestRecentRunsLimit(t *testing.T) {
	store := newTestStore(t)
	_, err := store.RecentRuns(context.Background(), 0)
	assert.Error(t, err)

	runs, err := store.RecentRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestOpenMemory(t *testing.T) {
	ctx := context.Background()
	store, err := Open(ctx, MemoryPath)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.RecordRun(ctx, makeRun("mem", time.Now())))
	count, err := store.CountRuns(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestReopenKeepsRuns(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, store.RecordRun(ctx, makeRun("persisted", time.Now())))
	require.NoError(t, store.Close())

	store, err = Open(ctx, path)
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.RecentRuns(ctx, 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "persisted", runs[0].ID)
}
