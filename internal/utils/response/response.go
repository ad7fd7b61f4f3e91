// Package response writes the JSON bodies shared by the student and book
// handlers: the status/message envelope and its error variants.
package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ─────────────────────────────────────────────────────────────────────────────
// Response is the standard envelope returned for messages and errors.
//
// Success responses may return any JSON shape (a student, a list, an id…).
// Error responses always carry a human-readable message, and Error holds
// the detail (validation failures, raw database error text):
//
//	{ "status": "error", "message": "Missing required fields.", "error": "field gpa is required" }
//
// ─────────────────────────────────────────────────────────────────────────────
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Status string constants.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// OK wraps a success message.
func OK(message string) Response {
	return Response{Status: StatusOK, Message: message}
}

// Message wraps an error message that needs no further detail
// (not found, bad credentials, …).
func Message(message string) Response {
	return Response{Status: StatusError, Message: message}
}

// GeneralError wraps any Go error under a message.
func GeneralError(message string, err error) Response {
	return Response{
		Status:  StatusError,
		Message: message,
		Error:   err.Error(),
	}
}

// StoreError surfaces a database failure verbatim.
func StoreError(err error) Response {
	return GeneralError("Database error", err)
}

// ─────────────────────────────────────────────────────────────────────────────
// ValidationError converts a slice of validator.FieldError values into
// a single human-readable Response.
//
// Example output:
//
//	{ "status": "error", "message": "Missing required fields.",
//	  "error": "field name is required, field gpa is required" }
//
// ─────────────────────────────────────────────────────────────────────────────
func ValidationError(errs validator.ValidationErrors) Response {
	errMessages := make([]string, 0, len(errs))
	message := "Invalid field values."

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			message = "Missing required fields."
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is required", e.Field()))
		case "email":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be a valid email address", e.Field()))
		case "datetime":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be a date in %s format", e.Field(), e.Param()))
		case "max":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must not exceed %s characters", e.Field(), e.Param()))
		default:
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return Response{
		Status:  StatusError,
		Message: message,
		Error:   strings.Join(errMessages, ", "),
	}
}
