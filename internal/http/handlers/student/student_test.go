package student

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/booknest-api/internal/auth"
	"github.com/aanand-mishra/booknest-api/internal/http/middleware"
	"github.com/aanand-mishra/booknest-api/internal/storage"
	"github.com/aanand-mishra/booknest-api/internal/types"
	"github.com/aanand-mishra/booknest-api/internal/utils/response"
)

// brokenStore fails every call with err.
type brokenStore struct{ err error }

func (s brokenStore) CreateStudent(types.Student, string) (int64, error) { return 0, s.err }
func (s brokenStore) GetStudentByID(int64) (types.Student, error)      { return types.Student{}, s.err }
func (s brokenStore) GetStudentByEmail(string) (types.Student, error)  { return types.Student{}, s.err }
func (s brokenStore) GetStudents() ([]types.Student, error)            { return nil, s.err }
func (s brokenStore) SearchStudents(string) ([]types.Student, error)   { return nil, s.err }
func (s brokenStore) UpdateStudentByID(int64, types.Student) error     { return s.err }
func (s brokenStore) DeleteStudentByID(int64) error                    { return s.err }

type stubIssuer struct{ err error }

func (s stubIssuer) Issue(types.Student) (string, error) { return "token", s.err }

func serve(t *testing.T, h http.Handler, method, pattern, target, body string) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()

	mux := http.NewServeMux()
	mux.Handle(method+" "+pattern, h)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(method, target, strings.NewReader(body)))

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w, resp
}

const validStudent = `{"name":"A","email":"a@x.com","birthday":"2000-01-01","gpa":3.5}`

func TestHandlers_DatabaseError(t *testing.T) {
	store := brokenStore{err: errors.New("database is locked")}

	tests := []struct {
		name    string
		handler http.Handler
		method  string
		pattern string
		target  string
		body    string
	}{
		{"create", New(store), http.MethodPost, "/students", "/students", validStudent},
		{"get", GetByID(store), http.MethodGet, "/students/{id}", "/students/1", ""},
		{"list", GetList(store), http.MethodGet, "/students", "/students", ""},
		{"search", Search(store), http.MethodGet, "/students/search/{name}", "/students/search/a", ""},
		{"update", Update(store), http.MethodPut, "/students/{id}", "/students/1", validStudent},
		{"delete", Delete(store), http.MethodDelete, "/students/{id}", "/students/1", ""},
		{"login", Login(store, stubIssuer{}), http.MethodPost, "/login", "/login", `{"email":"a@x.com","password":"p"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := serve(t, tt.handler, tt.method, tt.pattern, tt.target, tt.body)

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Equal(t, "Database error", resp.Message)
			assert.Equal(t, "database is locked", resp.Error)
		})
	}
}

func TestHandlers_MapStoreSentinels(t *testing.T) {
	notFound := brokenStore{err: storage.ErrNotFound}
	w, resp := serve(t, GetByID(notFound), http.MethodGet, "/students/{id}", "/students/7", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, msgNotFound, resp.Message)

	conflict := brokenStore{err: errors.Join(storage.ErrConflict, errors.New("UNIQUE constraint failed"))}
	w, resp = serve(t, New(conflict), http.MethodPost, "/students", "/students", validStudent)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, msgEmailTaken, resp.Message)
}

func TestNew_BadBody(t *testing.T) {
	store := brokenStore{err: errors.New("must not be reached")}

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"empty", "", msgBadBody},
		{"malformed", "{", msgBadBody},
		{"missing gpa", `{"name":"A","email":"a@x.com","birthday":"2000-01-01"}`, "Missing required fields."},
		{"bad email", `{"name":"A","email":"nope","birthday":"2000-01-01","gpa":1}`, "Invalid field values."},
		{"bad birthday", `{"name":"A","email":"a@x.com","birthday":"01/01/2000","gpa":1}`, "Invalid field values."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := serve(t, New(store), http.MethodPost, "/students", "/students", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.message, resp.Message)
		})
	}
}

func TestRegister_PasswordTooLong(t *testing.T) {
	body := `{"name":"A","email":"a@x.com","birthday":"2000-01-01","gpa":1,"password":"` +
		strings.Repeat("x", 73) + `"}`

	w, resp := serve(t, Register(brokenStore{}), http.MethodPost, "/register", "/register", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, resp.Error, "password")
}

func TestLogin_IssueFailure(t *testing.T) {
	digest, err := auth.HashPassword("p")
	require.NoError(t, err)
	store := &credentialStore{student: types.Student{ID: 1, Email: "a@x.com", PasswordHash: digest}}

	w, _ := serve(t, Login(store, stubIssuer{err: errors.New("signing failed")}),
		http.MethodPost, "/login", "/login", `{"email":"a@x.com","password":"p"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestMe_WithoutSession(t *testing.T) {
	w, resp := serve(t, Me(brokenStore{}), http.MethodGet, "/me", "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Access token missing", resp.Message)
}

func TestMe_ReadsCurrentRow(t *testing.T) {
	store := &credentialStore{student: types.Student{ID: 3, Name: "Renamed", Email: "a@x.com", PasswordHash: "digest"}}

	r := httptest.NewRequest(http.MethodGet, "/me", nil)
	r = r.WithContext(middleware.WithClaims(r.Context(), &auth.Claims{ID: 3, Name: "Old"}))
	w := httptest.NewRecorder()
	Me(store).ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Renamed", got["name"])
	assert.NotContains(t, w.Body.String(), "digest")
}

// credentialStore holds a single student.
type credentialStore struct {
	brokenStore
	student types.Student
}

func (s *credentialStore) GetStudentByEmail(email string) (types.Student, error) {
	if email != s.student.Email {
		return types.Student{}, storage.ErrNotFound
	}
	return s.student, nil
}

func (s *credentialStore) GetStudentByID(id int64) (types.Student, error) {
	if id != s.student.ID {
		return types.Student{}, storage.ErrNotFound
	}
	return s.student, nil
}
