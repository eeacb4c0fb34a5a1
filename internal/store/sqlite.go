// internal/store/sqlite.go
//
// SQLite-backed implementation of the KV interface, plus the users table
// used by the auth layer and the daily_results table behind the daily
// leaderboard.
// Responsibilities:
//   - Opening the SQLite database with safe defaults (WAL, busy timeout,
//     foreign keys).
//   - Applying the idempotent schema at open.
//   - KV get/set/remove/claim over a single kv table keyed by (scope, key).
//
// Note: every KV write at a session checkpoint is best-effort; callers log
// and continue on failure.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
    scope      TEXT NOT NULL,
    key        TEXT NOT NULL,
    value      BLOB NOT NULL,
    updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now')),
    PRIMARY KEY (scope, key)
);

CREATE TABLE IF NOT EXISTS users (
    id            TEXT PRIMARY KEY,
    username      TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS daily_results (
    user_id    TEXT NOT NULL,
    date       TEXT NOT NULL,
    day_index  INTEGER NOT NULL,
    guesses    INTEGER NOT NULL,
    created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now')),
    UNIQUE (user_id, date)
);
`

// SQLite wraps the database handle. The embedded *sql.DB is exposed for the
// auth layer's user queries.
type SQLite struct {
	DB *sql.DB
}

// OpenSQLite opens (and creates if missing) the SQLite database file and
// applies the schema.
//
//   - Ensures the parent directory exists for relative DSNs (./data/app.db).
//   - Configures busy timeout and WAL journaling mode.
//   - Enforces foreign keys.
func OpenSQLite(dsn string) (*SQLite, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLite{DB: db}, nil
}

// Close closes the underlying handle.
func (s *SQLite) Close() error { return s.DB.Close() }

// Get retrieves a value by (scope, key).
func (s *SQLite) Get(ctx context.Context, scope, key string) ([]byte, bool, error) {
	var v []byte
	err := s.DB.QueryRowContext(ctx,
		`SELECT value FROM kv WHERE scope=? AND key=?`, scope, key).Scan(&v)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// Set upserts a value.
func (s *SQLite) Set(ctx context.Context, scope, key string, value []byte) error {
	_, err := s.DB.ExecContext(ctx, `
        INSERT INTO kv (scope, key, value) VALUES (?,?,?)
        ON CONFLICT(scope, key) DO UPDATE
        SET value=excluded.value,
            updated_at=strftime('%Y-%m-%dT%H:%M:%SZ','now')`,
		scope, key, value)
	return err
}

// Remove deletes a value; removing a missing key is not an error.
func (s *SQLite) Remove(ctx context.Context, scope, key string) error {
	_, err := s.DB.ExecContext(ctx,
		`DELETE FROM kv WHERE scope=? AND key=?`, scope, key)
	return err
}

// Claim moves anonymous state to an account scope. Keys already present in
// the destination scope win; the anonymous leftovers are dropped.
func (s *SQLite) Claim(ctx context.Context, from, to string) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
        INSERT OR IGNORE INTO kv (scope, key, value, updated_at)
        SELECT ?, key, value, updated_at FROM kv WHERE scope=?`, to, from); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM kv WHERE scope=?`, from); err != nil {
		return err
	}
	return tx.Commit()
}
