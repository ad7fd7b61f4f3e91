// Package student contains all HTTP handlers related to the Student resource,
// including registration, login and the current-profile endpoint.
//
// Every exported function is a factory: it receives its dependencies once,
// at route registration, and returns the http.HandlerFunc that runs on
// every request.
//
//	router.HandleFunc("POST /students", student.New(store))
package student

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/booknest-api/internal/storage"
	"github.com/aanand-mishra/booknest-api/internal/types"
	"github.com/aanand-mishra/booknest-api/internal/utils/request"
	"github.com/aanand-mishra/booknest-api/internal/utils/response"
)

const (
	msgNotFound     = "Student not found"
	msgEmailTaken   = "Email already registered"
	msgBadBody      = "Invalid request body"
	msgInvalidLogin = "Invalid email or password"
)

// TokenIssuer is the part of auth.TokenService used by Login.
type TokenIssuer interface {
	Issue(student types.Student) (string, error)
}

// writeStoreError maps storage failures onto status codes. It is the
// single place where ErrNotFound and ErrConflict become 404 and 409.
func writeStoreError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		response.WriteJSON(w, http.StatusNotFound, response.Message(msgNotFound))
	case errors.Is(err, storage.ErrConflict):
		response.WriteJSON(w, http.StatusConflict, response.Message(msgEmailTaken))
	default:
		slog.Error("student store error", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSON(w, http.StatusInternalServerError, response.StoreError(err))
	}
}

// decodeStudent reads and validates a StudentRequest, writing the 400
// response itself when something is wrong.
func decodeStudent(w http.ResponseWriter, r *http.Request) (types.StudentRequest, bool) {
	var req types.StudentRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(msgBadBody, err))
		return req, false
	}
	if errs := request.Validate(req); errs != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(errs))
		return req, false
	}
	return req, true
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /students
// Creates a student without an account (no password, cannot log in).
//
// Request body (JSON):
//
//	{ "name": "A", "email": "a@x.com", "birthday": "2000-01-01", "gpa": 3.5 }
//
// Success response (201 Created):
//
//	{ "message": "Student added", "id": 1 }
//
// Error responses:
//
//	400 Bad Request: empty body, malformed JSON, or missing fields
//	409 Conflict:    email already used
//	500 Internal:    database error
//
// ─────────────────────────────────────────────────────────────────────────────
func New(store storage.StudentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a student")

		req, ok := decodeStudent(w, r)
		if !ok {
			return
		}

		id, err := store.CreateStudent(req.Student(), "")
		if err != nil {
			writeStoreError(w, "create", err)
			return
		}

		slog.Info("student created", slog.Int64("id", id))
		response.WriteJSON(w, http.StatusCreated, map[string]any{
			"message": "Student added",
			"id":      id,
		})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /students/{id}
//
// A non-numeric {id} is not a client error of its own: it simply matches
// no row, so the response is 404 like any other unknown id.
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(store storage.StudentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting a student", slog.String("id", r.PathValue("id")))

		id, ok := request.PathID(r)
		if !ok {
			response.WriteJSON(w, http.StatusNotFound, response.Message(msgNotFound))
			return
		}

		student, err := store.GetStudentByID(id)
		if err != nil {
			writeStoreError(w, "get", err)
			return
		}

		response.WriteJSON(w, http.StatusOK, student)
	}
}

// GetList handles GET /students and returns [] (not null) when empty.
func GetList(store storage.StudentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all students")

		students, err := store.GetStudents()
		if err != nil {
			writeStoreError(w, "list", err)
			return
		}

		response.WriteJSON(w, http.StatusOK, students)
	}
}

// Search handles GET /students/search/{name}. No match is an empty array.
func Search(store storage.StudentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")
		slog.Info("searching students", slog.String("name", name))

		students, err := store.SearchStudents(name)
		if err != nil {
			writeStoreError(w, "search", err)
			return
		}

		response.WriteJSON(w, http.StatusOK, students)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /students/{id}
// Replaces every field except id and password.
//
// Fields are not validated before the write; the store is the authority.
// Only an unreadable body is rejected up front.
//
// Success response (200 OK):
//
//	{ "status": "ok", "message": "Student updated" }
//
// ─────────────────────────────────────────────────────────────────────────────
func Update(store storage.StudentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("updating a student", slog.String("id", r.PathValue("id")))

		id, ok := request.PathID(r)
		if !ok {
			response.WriteJSON(w, http.StatusNotFound, response.Message(msgNotFound))
			return
		}

		var req types.StudentRequest
		if err := request.DecodeJSON(r, &req); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(msgBadBody, err))
			return
		}

		if err := store.UpdateStudentByID(id, req.Student()); err != nil {
			writeStoreError(w, "update", err)
			return
		}

		slog.Info("student updated", slog.Int64("id", id))
		response.WriteJSON(w, http.StatusOK, response.OK("Student updated"))
	}
}

// Delete handles DELETE /students/{id}. A second delete of the same id is 404.
func Delete(store storage.StudentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("deleting a student", slog.String("id", r.PathValue("id")))

		id, ok := request.PathID(r)
		if !ok {
			response.WriteJSON(w, http.StatusNotFound, response.Message(msgNotFound))
			return
		}

		if err := store.DeleteStudentByID(id); err != nil {
			writeStoreError(w, "delete", err)
			return
		}

		slog.Info("student deleted", slog.Int64("id", id))
		response.WriteJSON(w, http.StatusOK, response.OK("Student deleted"))
	}
}
