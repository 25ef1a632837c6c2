package sqlite

const schema = `
CREATE TABLE IF NOT EXISTS check_runs (
    id TEXT PRIMARY KEY,
    environment TEXT NOT NULL,
    mode TEXT NOT NULL DEFAULT 'standard' CHECK(mode IN ('standard', 'experimental')),
    status TEXT NOT NULL,
    check_count INTEGER NOT NULL DEFAULT 0 CHECK(check_count >= 0),
    started_at INTEGER NOT NULL,
    duration_ms INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_check_runs_started_at ON check_runs(started_at);
CREATE INDEX IF NOT EXISTS idx_check_runs_environment ON check_runs(environment);
`
