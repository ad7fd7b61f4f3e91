// Package router registers every HTTP route on a Go 1.22 ServeMux.
//
// Route table:
//
//	GET    /                          welcome
//	GET    /students                  list all students   (alias GET /listall)
//	GET    /students/{id}             get one student
//	GET    /students/search/{name}    search by name
//	POST   /students                  create a student    (alias POST /student)
//	PUT    /students/{id}             update a student    (alias PUT /student/{id})
//	DELETE /students/{id}             delete a student    (alias DELETE /student/{id})
//	POST   /register                  register an account
//	POST   /login                     exchange credentials for a token
//	GET    /me                        current profile (Bearer token)
//	GET    /books                     list all books
//	GET    /books/{id}                get one book
//	GET    /books/search/{title}      search by title
//	POST   /books                     create a book
//	PUT    /books/{id}                update a book
//	DELETE /books/{id}                delete a book
//
// The /listall and /student paths are the ones the browser
// frontend calls.
package router

import (
	"net/http"

	"github.com/aanand-mishra/booknest-api/internal/config"
	"github.com/aanand-mishra/booknest-api/internal/http/handlers/book"
	"github.com/aanand-mishra/booknest-api/internal/http/handlers/student"
	"github.com/aanand-mishra/booknest-api/internal/http/middleware"
	"github.com/aanand-mishra/booknest-api/internal/storage"
	"github.com/aanand-mishra/booknest-api/internal/types"
	"github.com/aanand-mishra/booknest-api/internal/utils/response"
)

// Tokens is what the router needs from auth.TokenService.
type Tokens interface {
	middleware.TokenVerifier
	Issue(student types.Student) (string, error)
}

// New builds the application handler, CORS included.
func New(store storage.Storage, tokens Tokens, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Lists may require a session; a bad token there is 401, not 403.
	list := func(h http.HandlerFunc) http.Handler {
		if cfg.Auth.ProtectLists {
			return middleware.RequireSession(tokens, http.StatusUnauthorized)(h)
		}
		return h
	}

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, response.OK("Welcome to the BookNest API."))
	})

	mux.Handle("GET /students", list(student.GetList(store)))
	mux.Handle("GET /listall", list(student.GetList(store)))
	mux.HandleFunc("GET /students/{id}", student.GetByID(store))
	mux.HandleFunc("GET /students/search/{name}", student.Search(store))
	mux.HandleFunc("POST /students", student.New(store))
	mux.HandleFunc("POST /student", student.New(store))
	mux.HandleFunc("PUT /students/{id}", student.Update(store))
	mux.HandleFunc("PUT /student/{id}", student.Update(store))
	mux.HandleFunc("DELETE /students/{id}", student.Delete(store))
	mux.HandleFunc("DELETE /student/{id}", student.Delete(store))

	mux.HandleFunc("POST /register", student.Register(store))
	mux.HandleFunc("POST /login", student.Login(store, tokens))
	mux.Handle("GET /me", middleware.RequireSession(tokens, http.StatusForbidden)(student.Me(store)))

	mux.Handle("GET /books", list(book.GetList(store)))
	mux.HandleFunc("GET /books/{id}", book.GetByID(store))
	mux.HandleFunc("GET /books/search/{title}", book.Search(store))
	mux.HandleFunc("POST /books", book.New(store))
	mux.HandleFunc("PUT /books/{id}", book.Update(store))
	mux.HandleFunc("DELETE /books/{id}", book.Delete(store))

	return middleware.CORS(cfg.CORS.AllowedOrigin)(mux)
}
