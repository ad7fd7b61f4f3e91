// Package sqlite provides the SQLite dialect for sqlstore, backed by the
// cgo driver github.com/mattn/go-sqlite3.
//
// SQLite stores everything in a single file on disk. There is no
// network and no separate server process, which makes it the default
// store for local development and for the test suite.
package sqlite

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-sqlite3"

	"github.com/aanand-mishra/booknest-api/internal/config"
	"github.com/aanand-mishra/booknest-api/internal/storage/sqlstore"
)

// AUTOINCREMENT (not just INTEGER PRIMARY KEY) stops SQLite from handing
// out the id of a deleted row again.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS students (
		id       INTEGER PRIMARY KEY AUTOINCREMENT,
		name     TEXT    NOT NULL,
		email    TEXT    NOT NULL UNIQUE,
		birthday TEXT    NOT NULL,
		gpa      REAL    NOT NULL,
		password TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS books (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		title            TEXT    NOT NULL,
		isbn             TEXT    NOT NULL UNIQUE,
		price            REAL    NOT NULL,
		publication_year INTEGER NOT NULL,
		stock            INTEGER NOT NULL,
		author_name      TEXT    NOT NULL,
		category         TEXT    NOT NULL
	)`,
}

// Dialect is the sqlstore dialect for go-sqlite3.
var Dialect = sqlstore.Dialect{
	Name:              "sqlite3",
	Schema:            schema,
	IsUniqueViolation: isUniqueViolation,
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

// New opens the SQLite database at cfg.Storage.Path, creating the parent
// directory if needed. Tables are created by the caller via Migrate.
func New(cfg *config.Config) (*sqlstore.Store, error) {
	path := cfg.Storage.Path

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("sqlite.New: create directory: %w", err)
		}
	}

	store, err := sqlstore.Open(Dialect, path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: %w", err)
	}
	return store, nil
}
