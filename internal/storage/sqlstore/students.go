package sqlstore

import (
	"database/sql"

	"github.com/aanand-mishra/booknest-api/internal/types"
)

// Explicit column lists, never SELECT *: Scan order must match.
const studentColumns = "id, name, email, birthday, gpa"

func scanStudent(row scanner) (types.Student, error) {
	var s types.Student
	err := row.Scan(&s.ID, &s.Name, &s.Email, &s.Birthday, &s.GPA)
	return s, err
}

func scanStudentWithPassword(row scanner) (types.Student, error) {
	var (
		s    types.Student
		hash sql.NullString
	)
	err := row.Scan(&s.ID, &s.Name, &s.Email, &s.Birthday, &s.GPA, &hash)
	s.PasswordHash = hash.String
	return s, err
}

// CreateStudent inserts a student. An empty passwordHash is stored as NULL
// so students added by an administrator simply cannot log in.
func (s *Store) CreateStudent(student types.Student, passwordHash string) (int64, error) {
	return s.insert("CreateStudent",
		"INSERT INTO students (name, email, birthday, gpa, password) VALUES (?, ?, ?, ?, ?)",
		student.Name, student.Email, student.Birthday, student.GPA,
		sql.NullString{String: passwordHash, Valid: passwordHash != ""},
	)
}

// GetStudentByID fetches exactly one student row matched by primary key.
func (s *Store) GetStudentByID(id int64) (types.Student, error) {
	return queryOne(s, "GetStudentByID",
		"SELECT "+studentColumns+" FROM students WHERE id = ? LIMIT 1",
		scanStudent, id)
}

// GetStudentByEmail is the only read that returns the password digest.
func (s *Store) GetStudentByEmail(email string) (types.Student, error) {
	return queryOne(s, "GetStudentByEmail",
		"SELECT "+studentColumns+", password FROM students WHERE email = ? LIMIT 1",
		scanStudentWithPassword, email)
}

// GetStudents returns all student rows as a slice.
func (s *Store) GetStudents() ([]types.Student, error) {
	return queryAll(s, "GetStudents",
		"SELECT "+studentColumns+" FROM students ORDER BY id",
		scanStudent)
}

// SearchStudents matches name as a literal substring.
func (s *Store) SearchStudents(name string) ([]types.Student, error) {
	return queryAll(s, "SearchStudents",
		"SELECT "+studentColumns+" FROM students WHERE name LIKE ? ESCAPE '!' ORDER BY id",
		scanStudent, likePattern(name))
}

// UpdateStudentByID replaces a student's data. The password column is
// deliberately absent from the SET list.
func (s *Store) UpdateStudentByID(id int64, student types.Student) error {
	return s.exec("UpdateStudentByID",
		"UPDATE students SET name = ?, email = ?, birthday = ?, gpa = ? WHERE id = ?",
		student.Name, student.Email, student.Birthday, student.GPA, id)
}

// DeleteStudentByID removes a student row by primary key.
func (s *Store) DeleteStudentByID(id int64) error {
	return s.exec("DeleteStudentByID", "DELETE FROM students WHERE id = ?", id)
}
