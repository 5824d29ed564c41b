package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store holds the SQLite connection and provides access to repositories.
type Store struct {
	db  *sql.DB
	sql *entsql.DialectBuilder
	seq *sequenceCounter
}

// Open creates a new Store connected to the SQLite database at dsn.
// It creates the schema declared under ent/schema and applies recommended
// pragmas.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", sqliteDSN(dsn))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := migrateSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	// Pragmas are per connection; a single connection keeps them in force
	// and serializes background writes.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	seq, err := newSequenceCounter(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, sql: entsql.Dialect(dialect.SQLite), seq: seq}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ProgressRepo returns the progress repository backed by this store.
func (s *Store) ProgressRepo() *ProgressRepo {
	return &ProgressRepo{db: s.db, sql: s.sql}
}

// PathRepo returns the learning-path repository backed by this store.
func (s *Store) PathRepo() *PathRepo {
	return &PathRepo{db: s.db, sql: s.sql}
}

// EventRepo returns the review-event repository backed by this store.
func (s *Store) EventRepo() *EventRepo {
	return &EventRepo{db: s.db, sql: s.sql, seq: s.seq}
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. PATHRECALL_DB environment variable
// 2. $XDG_DATA_HOME/pathrecall/pathrecall.db
// 3. ~/.local/share/pathrecall/pathrecall.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("PATHRECALL_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "pathrecall", "pathrecall.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
