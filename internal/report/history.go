package report

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jenian/i18ngrd/internal/analyzer"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Issue kinds stored per run
const (
	IssueUnused  = "unused"
	IssueMissing = "missing"
)

// RunRecord is one stored analysis run
type RunRecord struct {
	ID                 string
	StartedAt          time.Time
	Version            string
	SrcPath            string
	LocalesPath        string
	TotalKeys          int
	UsedKeys           int
	DynamicMatchedKeys int
	IgnoredKeys        int
	UnusedKeys         int
	MissingKeys        int
	Coverage           int
}

// Issue is an unused or missing key recorded for a run
type Issue struct {
	Kind string
	Key  string
}

// History stores analysis runs in SQLite so coverage can be tracked over time
type History struct {
	sqlDB *sql.DB
}

// OpenHistory opens the history database at path, creating it and its
// parent directory when needed.
func OpenHistory(path string) (*History, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("history path is required")
	}
	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	dsn := cleanPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schemaSQL); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &History{sqlDB: sqlDB}, nil
}

// Close releases the SQLite connection
func (h *History) Close() error {
	if h == nil || h.sqlDB == nil {
		return nil
	}
	return h.sqlDB.Close()
}

// Report records the run summary and its unused and missing keys
func (h *History) Report(ctx context.Context, run Run, result analyzer.AnalysisResult, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if h == nil || h.sqlDB == nil {
		return fmt.Errorf("history is not configured")
	}
	if strings.TrimSpace(run.ID) == "" {
		return fmt.Errorf("run id is required")
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}

	tx, err := h.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
INSERT INTO runs (
	id,
	started_at,
	version,
	src_path,
	locales_path,
	total_keys,
	used_keys,
	dynamic_matched_keys,
	ignored_keys,
	unused_keys,
	missing_keys,
	coverage
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
		run.ID,
		run.StartedAt.UTC().UnixMilli(),
		run.Version,
		run.SrcPath,
		run.LocalesPath,
		result.TotalKeys,
		result.UsedKeysCount,
		result.DynamicMatchedKeysCount,
		result.IgnoredKeysCount,
		len(result.UnusedKeys),
		len(result.MissingKeys),
		result.Coverage,
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO issues (run_id, kind, translation_key) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare issue insert: %w", err)
	}
	defer stmt.Close()

	for _, issues := range []struct {
		kind string
		keys []string
	}{
		{IssueUnused, result.UnusedKeys},
		{IssueMissing, result.MissingKeys},
	} {
		for _, key := range issues.keys {
			if _, err := stmt.ExecContext(ctx, run.ID, issues.kind, key); err != nil {
				return fmt.Errorf("record issue %s: %w", key, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit history tx: %w", err)
	}
	return nil
}

// List returns up to limit runs, newest first
func (h *History) List(ctx context.Context, limit int) ([]RunRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if h == nil || h.sqlDB == nil {
		return nil, fmt.Errorf("history is not configured")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}

	rows, err := h.sqlDB.QueryContext(ctx, `
SELECT
	id,
	started_at,
	version,
	src_path,
	locales_path,
	total_keys,
	used_keys,
	dynamic_matched_keys,
	ignored_keys,
	unused_keys,
	missing_keys,
	coverage
FROM runs
ORDER BY started_at DESC, id DESC
LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	records := make([]RunRecord, 0, limit)
	for rows.Next() {
		var record RunRecord
		var startedAt int64
		if err := rows.Scan(
			&record.ID,
			&startedAt,
			&record.Version,
			&record.SrcPath,
			&record.LocalesPath,
			&record.TotalKeys,
			&record.UsedKeys,
			&record.DynamicMatchedKeys,
			&record.IgnoredKeys,
			&record.UnusedKeys,
			&record.MissingKeys,
			&record.Coverage,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		record.StartedAt = time.UnixMilli(startedAt).UTC()
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return records, nil
}

// Issues returns the keys recorded for a run, ordered by kind then key
func (h *History) Issues(ctx context.Context, runID string) ([]Issue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if h == nil || h.sqlDB == nil {
		return nil, fmt.Errorf("history is not configured")
	}

	rows, err := h.sqlDB.QueryContext(ctx, `
SELECT kind, translation_key
FROM issues
WHERE run_id = ?
ORDER BY kind, translation_key
`, runID)
	if err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}
	defer rows.Close()

	var issues []Issue
	for rows.Next() {
		var issue Issue
		if err := rows.Scan(&issue.Kind, &issue.Key); err != nil {
			return nil, fmt.Errorf("scan issue: %w", err)
		}
		issues = append(issues, issue)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate issues: %w", err)
	}
	return issues, nil
}
