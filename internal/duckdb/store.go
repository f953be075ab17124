// Package duckdb manages DuckDB-backed persistence for named datasets.
// Each dataset lives in its own database file and carries a small
// string key-value "globals" table for dataset-wide metadata.
package duckdb

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// ErrExists is returned by Create when the database file already exists.
var ErrExists = errors.New("database already exists")

// ErrTx wraps failures surfaced by the backing transaction engine.
var ErrTx = errors.New("transaction failed")

// Store manages a DuckDB connection for one named dataset.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureGlobals(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure globals: %w", err)
	}

	return s, nil
}

// Create opens a fresh database at the given path. It fails with ErrExists
// if a file is already present, so callers can detect duplicate datasets.
func Create(path string) (*Store, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return nil, fmt.Errorf("create %s: %w", path, ErrExists)
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
	}
	return Open(path)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Path returns the database file path, empty for in-memory databases.
func (s *Store) Path() string {
	return s.path
}

// ensureGlobals creates the globals metadata table if it doesn't exist.
func (s *Store) ensureGlobals() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS globals (
		name VARCHAR PRIMARY KEY,
		val  VARCHAR
	)`)
	return err
}

// SetGlobal writes a dataset-wide metadata value, replacing any existing one.
func (s *Store) SetGlobal(name, val string) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO globals (name, val) VALUES (?, ?)`, name, val)
	if err != nil {
		return fmt.Errorf("set global %q: %w", name, err)
	}
	return nil
}

// Global reads a dataset-wide metadata value. Missing keys return an empty
// string and no error.
func (s *Store) Global(name string) (string, error) {
	var val string
	err := s.db.QueryRow(`SELECT val FROM globals WHERE name = ?`, name).Scan(&val)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get global %q: %w", name, err)
	}
	return val, nil
}
