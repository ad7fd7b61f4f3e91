// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles:
// handlers, storage, auth and the client can all import types without
// depending on each other.
package types

// Student represents a student record in our system.
//
// PasswordHash is the bcrypt digest of the student's password. It is only
// populated by lookups that need it (login) and the json:"-" tag keeps it
// out of every response body.
type Student struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Birthday     string  `json:"birthday"`
	GPA          float64 `json:"gpa"`
	PasswordHash string  `json:"-"`
}

// StudentRequest is the body accepted by POST /students and PUT /students/{id}.
//
// Numeric fields are pointers so that "missing" and "zero" can be told
// apart: a GPA of 0.0 is valid, an absent GPA is not. The validator's
// "required" tag on a pointer only checks that it is non-nil.
type StudentRequest struct {
	Name     string   `json:"name"     validate:"required"`
	Email    string   `json:"email"    validate:"required,email"`
	Birthday string   `json:"birthday" validate:"required,datetime=2006-01-02"`
	GPA      *float64 `json:"gpa"      validate:"required"`
}

// Student converts the request into a storable record.
// A missing GPA becomes 0; updates are written without prior validation.
func (r StudentRequest) Student() Student {
	s := Student{
		Name:     r.Name,
		Email:    r.Email,
		Birthday: r.Birthday,
	}
	if r.GPA != nil {
		s.GPA = *r.GPA
	}
	return s
}

// RegisterRequest is the body accepted by POST /register.
// bcrypt only looks at the first 72 bytes, longer passwords are rejected.
type RegisterRequest struct {
	StudentRequest
	Password string `json:"password" validate:"required,max=72"`
}

// LoginRequest is the body accepted by POST /login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Token string  `json:"token"`
	User  Student `json:"user"`
}

// Book represents a book record in our system.
// ISBN is unique across all books.
type Book struct {
	ID              int64   `json:"id"`
	Title           string  `json:"title"`
	ISBN            string  `json:"isbn"`
	Price           float64 `json:"price"`
	PublicationYear int     `json:"publication_year"`
	Stock           int     `json:"stock"`
	AuthorName      string  `json:"author_name"`
	Category        string  `json:"category"`
}

// BookRequest is the body accepted by POST /books and PUT /books/{id}.
type BookRequest struct {
	Title           string   `json:"title"            validate:"required"`
	ISBN            string   `json:"isbn"             validate:"required"`
	Price           *float64 `json:"price"            validate:"required"`
	PublicationYear *int     `json:"publication_year" validate:"required"`
	Stock           *int     `json:"stock"            validate:"required"`
	AuthorName      string   `json:"author_name"      validate:"required"`
	Category        string   `json:"category"         validate:"required"`
}

// Book converts the request into a storable record, zeroing absent numbers.
func (r BookRequest) Book() Book {
	b := Book{
		Title:      r.Title,
		ISBN:       r.ISBN,
		AuthorName: r.AuthorName,
		Category:   r.Category,
	}
	if r.Price != nil {
		b.Price = *r.Price
	}
	if r.PublicationYear != nil {
		b.PublicationYear = *r.PublicationYear
	}
	if r.Stock != nil {
		b.Stock = *r.Stock
	}
	return b
}
