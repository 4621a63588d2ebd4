package store

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"slices"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

var (
	// ErrNotFound is returned when no saved query has the requested name.
	ErrNotFound = errors.New("saved query not found")

	// ErrInvalidName is returned for an empty query name.
	ErrInvalidName = errors.New("saved query name must not be empty")

	// ErrSchemaMismatch is returned by Open when the file is not a catalog
	// this build can read: a newer user_version, or a saved_queries table
	// missing columns.
	ErrSchemaMismatch = errors.New("catalog schema mismatch")
)

// connParams are handed to go-sqlite3 in the DSN, so every pooled
// connection gets them, not just the first.
var connParams = url.Values{
	"_journal_mode": {"WAL"},
	"_synchronous":  {"NORMAL"},
	"_busy_timeout": {"5000"},
}

type migration struct {
	name string
	stmt string
}

// migrations[i] takes a catalog from user_version i to i+1.
var migrations = []migration{
	{name: "create saved_queries", stmt: schemaSQL},
	{name: "index fingerprints", stmt: `
		CREATE INDEX IF NOT EXISTS idx_saved_queries_fingerprint
		ON saved_queries(fingerprint)
	`},
}

var currentSchemaVersion = len(migrations)

// catalogColumns are the columns Save, Get and List read and write.
var catalogColumns = []string{"id", "name", "body", "fingerprint", "revision"}

// Store is the saved query catalog.
type Store struct {
	db *sql.DB
}

// Open opens the catalog at path, creating the file if needed and bringing
// its schema up to date. Opening an up-to-date catalog changes nothing.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?"+connParams.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to catalog %s: %w", path, err)
	}

	// Saves are read-modify-write transactions; one connection keeps them
	// from failing with SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	from, err := migrate(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	if err := checkShape(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}

	slog.Debug("opened catalog", "path", path, "from_version", from, "version", currentSchemaVersion)
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// migrate applies every pending migration and returns the version the
// file was at before.
func migrate(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("read user_version: %w", err)
	}
	if version > currentSchemaVersion {
		return version, fmt.Errorf("%w: user_version %d is newer than %d", ErrSchemaMismatch, version, currentSchemaVersion)
	}

	for v := version; v < currentSchemaVersion; v++ {
		if err := applyMigration(db, v+1, migrations[v]); err != nil {
			return version, err
		}
	}
	return version, nil
}

// applyMigration runs one step and records its version in the same
// transaction, so a failed step leaves user_version where it was.
func applyMigration(db *sql.DB, to int, m migration) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("migrate to v%d: begin: %w", to, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(m.stmt); err != nil {
		return fmt.Errorf("migrate to v%d (%s): %w", to, m.name, err)
	}
	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", to)); err != nil {
		return fmt.Errorf("migrate to v%d: set user_version: %w", to, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migrate to v%d: commit: %w", to, err)
	}

	slog.Debug("migrated catalog", "version", to, "step", m.name)
	return nil
}

// checkShape rejects files whose saved_queries table lacks a catalog
// column, e.g. an unrelated SQLite file that already had such a table.
func checkShape(db *sql.DB) error {
	rows, err := db.Query("SELECT name FROM pragma_table_info('saved_queries')")
	if err != nil {
		return fmt.Errorf("inspect saved_queries: %w", err)
	}
	defer rows.Close()

	var have []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("inspect saved_queries: %w", err)
		}
		have = append(have, name)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("inspect saved_queries: %w", err)
	}

	for _, col := range catalogColumns {
		if !slices.Contains(have, col) {
			return fmt.Errorf("%w: saved_queries has no %q column", ErrSchemaMismatch, col)
		}
	}
	return nil
}
