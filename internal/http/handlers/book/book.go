// Package book contains the HTTP handlers for the Book resource.
// ISBN is the unique field: a duplicate is reported as 409.
package book

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
	msgNotFound  = "Book not found"
	msgISBNTaken = "ISBN already exists"
	msgBadBody   = "Invalid request body"
)

func writeStoreError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		response.WriteJSON(w, http.StatusNotFound, response.Message(msgNotFound))
	case errors.Is(err, storage.ErrConflict):
		response.WriteJSON(w, http.StatusConflict, response.Message(msgISBNTaken))
	default:
		slog.Error("book store error", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSON(w, http.StatusInternalServerError, response.StoreError(err))
	}
}

// New handles POST /books.
//
//	201 { "message": "Book added", "insertedId": 1 }
//	400 missing fields, 409 duplicate isbn, 500 database error
func New(store storage.BookStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a book")

		var req types.BookRequest
		if err := request.DecodeJSON(r, &req); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(msgBadBody, err))
			return
		}
		if errs := request.Validate(req); errs != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(errs))
			return
		}

		id, err := store.CreateBook(req.Book())
		if err != nil {
			writeStoreError(w, "create", err)
			return
		}

		slog.Info("book created", slog.Int64("id", id))
		response.WriteJSON(w, http.StatusCreated, map[string]any{
			"message":    "Book added",
			"insertedId": id,
		})
	}
}

// GetByID handles GET /books/{id}.
func GetByID(store storage.BookStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting a book", slog.String("id", r.PathValue("id")))

		id, ok := request.PathID(r)
		if !ok {
			response.WriteJSON(w, http.StatusNotFound, response.Message(msgNotFound))
			return
		}

		book, err := store.GetBookByID(id)
		if err != nil {
			writeStoreError(w, "get", err)
			return
		}

		response.WriteJSON(w, http.StatusOK, book)
	}
}

// GetList handles GET /books.
func GetList(store storage.BookStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all books")

		books, err := store.GetBooks()
		if err != nil {
			writeStoreError(w, "list", err)
			return
		}

		response.WriteJSON(w, http.StatusOK, books)
	}
}

// Search handles GET /books/search/{title}.
func Search(store storage.BookStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		title := r.PathValue("title")
		slog.Info("searching books", slog.String("title", title))

		books, err := store.SearchBooks(title)
		if err != nil {
			writeStoreError(w, "search", err)
			return
		}

		response.WriteJSON(w, http.StatusOK, books)
	}
}

// Update handles PUT /books/{id}. Like students, the body is written as-is.
func Update(store storage.BookStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("updating a book", slog.String("id", r.PathValue("id")))

		id, ok := request.PathID(r)
		if !ok {
			response.WriteJSON(w, http.StatusNotFound, response.Message(msgNotFound))
			return
		}

		var req types.BookRequest
		if err := request.DecodeJSON(r, &req); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(msgBadBody, err))
			return
		}

		if err := store.UpdateBookByID(id, req.Book()); err != nil {
			writeStoreError(w, "update", err)
			return
		}

		slog.Info("book updated", slog.Int64("id", id))
		response.WriteJSON(w, http.StatusOK, response.OK("Book updated"))
	}
}

// Delete handles DELETE /books/{id}.
func Delete(store storage.BookStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("deleting a book", slog.String("id", r.PathValue("id")))

		id, ok := request.PathID(r)
		if !ok {
			response.WriteJSON(w, http.StatusNotFound, response.Message(msgNotFound))
			return
		}

		if err := store.DeleteBookByID(id); err != nil {
			writeStoreError(w, "delete", err)
			return
		}

		slog.Info("book deleted", slog.Int64("id", id))
		response.WriteJSON(w, http.StatusOK, response.OK("Book deleted"))
	}
}
