package student

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/booknest-api/internal/auth"
	"github.com/aanand-mishra/booknest-api/internal/http/middleware"
	"github.com/aanand-mishra/booknest-api/internal/storage"
	"github.com/aanand-mishra/booknest-api/internal/types"
	"github.com/aanand-mishra/booknest-api/internal/utils/request"
	"github.com/aanand-mishra/booknest-api/internal/utils/response"
)

// dummyDigest is compared against when the email is unknown, so both
// login failures cost one bcrypt comparison.
var dummyDigest, _ = auth.HashPassword("booknest-dummy-password")

// ─────────────────────────────────────────────────────────────────────────────
// Register handles POST /register
//
// Request body (JSON):
//
//	{ "name": "A", "email": "a@x.com", "password": "p",
//	  "birthday": "2000-01-01", "gpa": 3.5 }
//
// Success response (201 Created):
//
//	{ "message": "Registration successful", "studentId": 1 }
//
// Error responses:
//
//	400 Bad Request: missing or malformed fields
//	409 Conflict:    email already registered
//	500 Internal:    hashing or database error
//
// ─────────────────────────────────────────────────────────────────────────────
func Register(store storage.StudentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("registering a student")

		var req types.RegisterRequest
		if err := request.DecodeJSON(r, &req); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(msgBadBody, err))
			return
		}
		if errs := request.Validate(req); errs != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(errs))
			return
		}

		digest, err := auth.HashPassword(req.Password)
		if err != nil {
			slog.Error("error hashing password", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError("Could not register student", err))
			return
		}

		id, err := store.CreateStudent(req.Student(), digest)
		if err != nil {
			writeStoreError(w, "register", err)
			return
		}

		slog.Info("student registered", slog.Int64("id", id))
		response.WriteJSON(w, http.StatusCreated, map[string]any{
			"message":   "Registration successful",
			"studentId": id,
		})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Login handles POST /login
//
// Success response (200 OK):
//
//	{ "token": "<jwt>", "user": { "id": 1, "name": "A", "email": "a@x.com", ... } }
//
// An unknown email and a wrong password produce the same 401 body, so the
// response never reveals which accounts exist.
// ─────────────────────────────────────────────────────────────────────────────
func Login(store storage.StudentStore, issuer TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.LoginRequest
		if err := request.DecodeJSON(r, &req); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(msgBadBody, err))
			return
		}
		if errs := request.Validate(req); errs != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(errs))
			return
		}

		student, err := store.GetStudentByEmail(req.Email)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			auth.VerifyPassword(req.Password, dummyDigest)
			slog.Info("login rejected")
			response.WriteJSON(w, http.StatusUnauthorized, response.Message(msgInvalidLogin))
			return
		case err != nil:
			writeStoreError(w, "login", err)
			return
		}

		if !auth.VerifyPassword(req.Password, student.PasswordHash) {
			slog.Info("login rejected")
			response.WriteJSON(w, http.StatusUnauthorized, response.Message(msgInvalidLogin))
			return
		}

		token, err := issuer.Issue(student)
		if err != nil {
			slog.Error("error issuing token", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError("Could not create session", err))
			return
		}

		slog.Info("student logged in", slog.Int64("id", student.ID))
		response.WriteJSON(w, http.StatusOK, types.LoginResponse{Token: token, User: student})
	}
}

// Me handles GET /me. It must sit behind middleware.RequireSession; the
// profile is re-read so that edits made after login are visible.
func Me(store storage.StudentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFrom(r.Context())
		if !ok {
			response.WriteJSON(w, http.StatusUnauthorized, response.Message("Access token missing"))
			return
		}

		student, err := store.GetStudentByID(claims.ID)
		if err != nil {
			writeStoreError(w, "me", err)
			return
		}

		response.WriteJSON(w, http.StatusOK, student)
	}
}
