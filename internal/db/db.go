package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/estimator/internal/domain"
	_ "modernc.org/sqlite"
)

// CreateDB creates a fresh project store at path, replacing any existing
// file, and lays down the schema.
func CreateDB(path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("creating database: empty path: %w", domain.ErrStoreUnavailable)
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
		for _, p := range []string{path, path + "-wal", path + "-shm"} {
			if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("removing existing %s: %w", p, err)
			}
		}
	}

	db, err := open(path)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return db, nil
}

// OpenDB opens an existing project store. The schema is not touched;
// callers check the stored schema version.
func OpenDB(path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("opening database: empty path: %w", domain.ErrStoreUnavailable)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("opening database %s: %v: %w", path, err, domain.ErrStoreUnavailable)
	}
	return open(path)
}

func open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %v: %w", err, domain.ErrStoreUnavailable)
	}
	// One writer per project; a single connection also keeps ":memory:"
	// stores from splitting across the pool.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to %s: %v: %w", path, err, domain.ErrStoreUnavailable)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode on %s: %v: %w", path, err, domain.ErrStoreUnavailable)
	}

	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}
	return db, nil
}
