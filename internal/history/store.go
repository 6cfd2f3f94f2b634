package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

// Run is one recorded scan.
type Run struct {
	RunID        string
	Timestamp    time.Time
	MaxDepth     int
	FileCount    int
	FindingCount int
	Duration     time.Duration
}

// Store persists scan runs so finding counts can be tracked over time.
type Store struct {
	path string
	db   *sql.DB
	mu   sync.Mutex
}

func Open(path string) (*Store, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, fmt.Errorf("history path must not be empty")
	}
	if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
		return nil, fmt.Errorf("history path %q is a directory, expected file", cleanPath)
	}

	dir := filepath.Dir(cleanPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory %q: %w", dir, err)
		}
	}

	// busy_timeout + WAL reduce lock conflicts during watch-mode churn.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(2000)&_pragma=journal_mode(WAL)", cleanPath)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite history %q: %w", cleanPath, err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite history %q: %w", cleanPath, err)
	}
	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize sqlite schema %q: %w", cleanPath, err)
	}

	return &Store{path: cleanPath, db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) SaveRun(run Run) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.RunID == "" {
		run.RunID = uuid.NewString()
	}
	if run.Timestamp.IsZero() {
		run.Timestamp = time.Now().UTC()
	}

	_, err := s.db.Exec(`
INSERT INTO runs (run_id, ts_utc, max_depth, file_count, finding_count, duration_ms)
VALUES (?, ?, ?, ?, ?, ?)
`,
		run.RunID,
		run.Timestamp.UTC().Format(time.RFC3339Nano),
		run.MaxDepth,
		run.FileCount,
		run.FindingCount,
		run.Duration.Milliseconds(),
	)
	if err != nil {
		return "", fmt.Errorf("save run: %w", err)
	}

	return run.RunID, nil
}

// Recent returns up to n runs, newest first.
func (s *Store) Recent(n int) ([]Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n <= 0 {
		n = 10
	}

	rows, err := s.db.Query(`
SELECT run_id, ts_utc, max_depth, file_count, finding_count, duration_ms
FROM runs
ORDER BY ts_utc DESC
LIMIT ?
`, n)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var ts string
		var durationMS int64
		if err := rows.Scan(&run.RunID, &ts, &run.MaxDepth, &run.FileCount, &run.FindingCount, &durationMS); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parse run timestamp %q: %w", ts, err)
		}
		run.Timestamp = parsed
		run.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, run)
	}

	return runs, rows.Err()
}
