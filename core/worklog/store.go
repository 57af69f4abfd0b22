package worklog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// =============================================================================
// Store
// =============================================================================

// Store owns the on-disk work log database. Each CLI invocation opens the
// store, performs its operation, and closes it; cross-process writers
// serialize at the sqlite level via the busy timeout.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (and on first use initializes) the work log database at path.
// The parent directory is created if absent.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("%w: create dir: %v", ErrStoreUnavailable, err)
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=%d&_journal_mode=WAL", path, int((5 * time.Second).Milliseconds()))
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open: %v", ErrStoreUnavailable, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: ping: %v", ErrStoreUnavailable, err)
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: migrate: %v", ErrStoreUnavailable, err)
	}
	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// =============================================================================
// Schema
// =============================================================================

type migration struct {
	Version     int
	Description string
	Up          func(tx *sql.Tx) error
}

var migrations = []migration{
	{
		Version:     1,
		Description: "create entries table and filter indexes",
		Up: func(tx *sql.Tx) error {
			const ddl = `
CREATE TABLE IF NOT EXISTS entries (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp         TEXT    NOT NULL,
	description       TEXT    NOT NULL,
	session_id        TEXT,
	category          TEXT,
	project_name      TEXT,
	git_branch        TEXT,
	working_directory TEXT    NOT NULL,
	created_at        INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_entries_timestamp ON entries(timestamp);
CREATE INDEX IF NOT EXISTS idx_entries_session   ON entries(session_id);
CREATE INDEX IF NOT EXISTS idx_entries_category  ON entries(category);
CREATE INDEX IF NOT EXISTS idx_entries_project   ON entries(project_name);
`
			_, err := tx.Exec(ddl)
			return err
		},
	},
}

// migrate applies pending schema versions, tracked via PRAGMA user_version.
// An already-migrated file skips DDL entirely.
func (s *Store) migrate(ctx context.Context) error {
	var current int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&current); err != nil {
		return fmt.Errorf("get version: %w", err)
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		if err := s.transaction(ctx, func(tx *sql.Tx) error {
			if err := m.Up(tx); err != nil {
				return err
			}
			_, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", m.Version))
			return err
		}); err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
		}
	}
	return nil
}

func (s *Store) transaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// =============================================================================
// Append
// =============================================================================

// Append inserts one entry, assigning its id and creation time. The event
// timestamp is filled with the current moment when the caller leaves it empty.
func (s *Store) Append(ctx context.Context, entry Entry) (int64, error) {
	if entry.Description == "" {
		return 0, fmt.Errorf("%w: description is required", ErrInvalidEntry)
	}
	if entry.WorkingDirectory == "" {
		return 0, fmt.Errorf("%w: working directory is required", ErrInvalidEntry)
	}
	if entry.Timestamp == "" {
		entry.Timestamp = Now()
	}

	res, err := s.db.ExecContext(ctx, `
INSERT INTO entries (timestamp, description, session_id, category, project_name, git_branch, working_directory, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.Timestamp,
		entry.Description,
		nullable(entry.SessionID),
		nullable(entry.Category),
		nullable(entry.ProjectName),
		nullable(entry.GitBranch),
		entry.WorkingDirectory,
		time.Now().Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
