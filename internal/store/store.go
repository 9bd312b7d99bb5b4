// Package store provides the SQLite-backed persistence layer for memo
// documents, tag groups, aliases, and notes.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps a sql.DB with memo-specific operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
// A persisted schema-version marker is checked first: on mismatch all
// tables are dropped and recreated, discarding old data.
func Open(dsn string) (*DB, error) {
	if dir := filepath.Dir(dsn); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("store: create db dir: %w", err)
		}
	}
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	if err := migrate(conn); err != nil {
		conn.Close()
		return nil, err
	}
	return &DB{conn: conn}, nil
}

// migrate applies the schema, destructively resetting on a version mismatch.
// Applying the schema is idempotent (CREATE ... IF NOT EXISTS throughout).
func migrate(conn *sql.DB) error {
	if _, err := conn.Exec(schemaSQL); err != nil {
		return fmt.Errorf("store: apply schema: %w", err)
	}

	var stored string
	err := conn.QueryRow(`SELECT value FROM meta WHERE key = 'schema_version'`).Scan(&stored)
	switch {
	case err == sql.ErrNoRows:
		// Fresh database; record the running version.
	case err != nil:
		return fmt.Errorf("store: read schema version: %w", err)
	default:
		if v, convErr := strconv.Atoi(stored); convErr == nil && v == schemaVersion {
			return nil
		}
		slog.Warn("store: schema version mismatch, resetting database",
			slog.String("stored", stored),
			slog.Int("running", schemaVersion))
		if _, err := conn.Exec(dropSQL); err != nil {
			return fmt.Errorf("store: drop tables: %w", err)
		}
		if _, err := conn.Exec(schemaSQL); err != nil {
			return fmt.Errorf("store: recreate schema: %w", err)
		}
	}

	_, err = conn.Exec(`INSERT INTO meta (key, value) VALUES ('schema_version', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, strconv.Itoa(schemaVersion))
	if err != nil {
		return fmt.Errorf("store: write schema version: %w", err)
	}
	return nil
}

// Reset deletes all rows from all tables without altering the schema.
func (db *DB) Reset() error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	for _, table := range []string{"notes", "aliases", "tag_groups", "documents"} {
		if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
			return fmt.Errorf("store: reset %s: %w", table, err)
		}
	}
	return tx.Commit()
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
