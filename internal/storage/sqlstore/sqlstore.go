// Package sqlstore implements storage.Storage on top of database/sql.
//
// The SQL itself is portable between SQLite and MySQL (both use ?
// placeholders), so the only per-driver knowledge lives in a Dialect:
// the CREATE TABLE statements and how the driver reports a duplicate
// key. The sqlite and mysql packages each supply one.
//
// Every exported method runs exactly one parameterized statement.
// There are no transactions; the database's own statement atomicity is
// all we rely on.
package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/aanand-mishra/booknest-api/internal/storage"
)

// Dialect carries what differs between database drivers.
type Dialect struct {
	// Name is the database/sql driver name, e.g. "sqlite3".
	Name string

	// Schema holds idempotent CREATE TABLE IF NOT EXISTS statements.
	Schema []string

	// IsUniqueViolation reports whether err is a duplicate-key error.
	IsUniqueViolation func(err error) bool
}

// Store is the concrete implementation of storage.Storage.
// The *sql.DB is a connection pool and is safe for concurrent use, so
// a single Store is shared by every request without extra locking.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

var _ storage.Storage = (*Store)(nil)

// Open creates the connection pool. sql.Open does not dial, so a bad
// host or missing database only shows up on Ping, Migrate, or the first
// query.
func Open(dialect Dialect, dsn string) (*Store, error) {
	db, err := sql.Open(dialect.Name, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlstore.Open: %w", err)
	}
	return &Store{db: db, dialect: dialect}, nil
}

// Migrate creates the tables if they do not already exist.
func (s *Store) Migrate() error {
	for _, stmt := range s.dialect.Schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("Migrate: %w", err)
		}
	}
	return nil
}

// Ping verifies a connection can be established.
func (s *Store) Ping() error {
	return s.db.Ping()
}

// Close closes the pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the pool for tests and diagnostics.
func (s *Store) DB() *sql.DB {
	return s.db
}

// classify maps driver errors onto the storage sentinels, keeping the
// driver error in the chain.
func (s *Store) classify(op string, err error) error {
	if s.dialect.IsUniqueViolation != nil && s.dialect.IsUniqueViolation(err) {
		return fmt.Errorf("%s: %w: %w", op, storage.ErrConflict, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// likePattern turns a raw substring into a LIKE pattern that matches it
// literally. '!' is the escape character because a backslash is parsed
// differently by SQLite and MySQL string literals.
func likePattern(substr string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return "%" + r.Replace(substr) + "%"
}

// exec runs a single write and reports ErrNotFound when it touched no rows.
func (s *Store) exec(op, query string, args ...any) error {
	stmt, err := s.db.Prepare(query)
	if err != nil {
		return fmt.Errorf("%s: prepare: %w", op, err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(args...)
	if err != nil {
		return s.classify(op+": exec", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// insert runs a single INSERT and returns the generated id.
func (s *Store) insert(op, query string, args ...any) (int64, error) {
	stmt, err := s.db.Prepare(query)
	if err != nil {
		return 0, fmt.Errorf("%s: prepare: %w", op, err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(args...)
	if err != nil {
		return 0, s.classify(op+": exec", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: last insert id: %w", op, err)
	}
	return lastID, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// queryAll runs a multi-row SELECT and scans each row with scan.
func queryAll[T any](s *Store, op, query string, scan func(scanner) (T, error), args ...any) ([]T, error) {
	stmt, err := s.db.Prepare(query)
	if err != nil {
		return nil, fmt.Errorf("%s: prepare: %w", op, err)
	}
	defer stmt.Close()

	rows, err := stmt.Query(args...)
	if err != nil {
		return nil, fmt.Errorf("%s: query: %w", op, err)
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration: %w", op, err)
	}
	return out, nil
}

// queryOne runs a single-row SELECT, mapping sql.ErrNoRows to ErrNotFound.
func queryOne[T any](s *Store, op, query string, scan func(scanner) (T, error), args ...any) (T, error) {
	var zero T

	stmt, err := s.db.Prepare(query)
	if err != nil {
		return zero, fmt.Errorf("%s: prepare: %w", op, err)
	}
	defer stmt.Close()

	v, err := scan(stmt.QueryRow(args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return zero, storage.ErrNotFound
		}
		return zero, fmt.Errorf("%s: scan: %w", op, err)
	}
	return v, nil
}
