// Package storage defines the record-store contract that any database
// backend must satisfy to work with this application.
//
// Handlers depend only on these interfaces, never on a concrete driver:
// switching between SQLite and MySQL is a config change, and tests can
// pass anything that satisfies the interface.
package storage

import (
	"errors"

	"github.com/aanand-mishra/booknest-api/internal/types"
)

var (
	// ErrNotFound is returned when no row matches the given id or email.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when a write collides with a unique column
	// (student email, book isbn). The driver error is wrapped alongside it.
	ErrConflict = errors.New("unique constraint violated")
)

// StudentStore is the students table contract.
type StudentStore interface {
	// CreateStudent inserts a new student and returns the auto-generated
	// primary-key ID. passwordHash may be empty for students created
	// without an account.
	CreateStudent(student types.Student, passwordHash string) (int64, error)

	// GetStudentByID fetches a single student by primary key.
	// PasswordHash is never populated.
	GetStudentByID(id int64) (types.Student, error)

	// GetStudentByEmail fetches a student together with its password digest.
	GetStudentByEmail(email string) (types.Student, error)

	// GetStudents returns every student, ordered by id.
	// Returns an empty slice (not nil) if there are none.
	GetStudents() ([]types.Student, error)

	// SearchStudents returns students whose name contains the substring.
	SearchStudents(name string) ([]types.Student, error)

	// UpdateStudentByID replaces every field except id and password.
	UpdateStudentByID(id int64, student types.Student) error

	// DeleteStudentByID removes a student record permanently.
	DeleteStudentByID(id int64) error
}

// BookStore is the books table contract.
type BookStore interface {
	CreateBook(book types.Book) (int64, error)
	GetBookByID(id int64) (types.Book, error)
	GetBooks() ([]types.Book, error)
	SearchBooks(title string) ([]types.Book, error)
	UpdateBookByID(id int64, book types.Book) error
	DeleteBookByID(id int64) error
}

// Storage is the full store handle opened at startup and closed at shutdown.
type Storage interface {
	StudentStore
	BookStore

	// Ping checks that the database is reachable.
	Ping() error

	// Close releases the underlying connection pool.
	Close() error
}
