package history

import (
	"database/sql"
	"fmt"
)

const schemaVersion = 1

var migrations = []string{
	`
CREATE TABLE IF NOT EXISTS runs (
  run_id TEXT PRIMARY KEY,
  ts_utc TEXT NOT NULL,
  max_depth INTEGER NOT NULL,
  file_count INTEGER NOT NULL,
  finding_count INTEGER NOT NULL,
  duration_ms INTEGER NOT NULL DEFAULT 0,
  created_at_utc TEXT NOT NULL DEFAULT (CURRENT_TIMESTAMP)
);
CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(ts_utc);
`,
}

func ensureSchema(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_meta (version INTEGER NOT NULL)`); err != nil {
		return fmt.Errorf("create schema_meta: %w", err)
	}

	var version int
	row := db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_meta`)
	if err := row.Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	for v := version; v < len(migrations); v++ {
		if _, err := db.Exec(migrations[v]); err != nil {
			return fmt.Errorf("apply migration %d: %w", v+1, err)
		}
		if _, err := db.Exec(`INSERT INTO schema_meta (version) VALUES (?)`, v+1); err != nil {
			return fmt.Errorf("record migration %d: %w", v+1, err)
		}
	}

	return nil
}
