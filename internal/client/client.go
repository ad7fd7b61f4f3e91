// Package client is a Go client for the BookNest API. It does what the
// browser frontend does: keep the bearer token after login and send it
// on later calls.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/aanand-mishra/booknest-api/internal/types"
)

// APIError is returned for any non-2xx response.
type APIError struct {
	Status  int
	Message string
	Detail  string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%d %s: %s", e.Status, e.Message, e.Detail)
	}
	return fmt.Sprintf("%d %s", e.Status, e.Message)
}

// Client talks to one API server. Like a browser tab it holds a single
// session and is meant to be driven from one goroutine.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// New creates a client for baseURL. A nil httpClient uses http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// Token returns the current session token, "" when logged out.
func (c *Client) Token() string { return c.token }

// SetToken installs a token obtained elsewhere.
func (c *Client) SetToken(token string) { c.token = token }

// Logout forgets the session token. Tokens are stateless, so nothing is sent.
func (c *Client) Logout() { c.token = "" }

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var envelope struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&envelope) == nil && envelope.Message != "" {
			apiErr.Message = envelope.Message
			apiErr.Detail = envelope.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func idPath(prefix string, id int64) string {
	return prefix + "/" + strconv.FormatInt(id, 10)
}

// Register creates an account and returns the new student id.
func (c *Client) Register(ctx context.Context, req types.RegisterRequest) (int64, error) {
	var out struct {
		StudentID int64 `json:"studentId"`
	}
	if err := c.do(ctx, http.MethodPost, "/register", req, &out); err != nil {
		return 0, err
	}
	return out.StudentID, nil
}

// Login exchanges credentials for a token, keeps it, and returns the profile.
func (c *Client) Login(ctx context.Context, email, password string) (types.Student, error) {
	var out types.LoginResponse
	err := c.do(ctx, http.MethodPost, "/login", types.LoginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return types.Student{}, err
	}
	c.token = out.Token
	return out.User, nil
}

// Me returns the profile of the logged-in student.
func (c *Client) Me(ctx context.Context) (types.Student, error) {
	var out types.Student
	err := c.do(ctx, http.MethodGet, "/me", nil, &out)
	return out, err
}

func (c *Client) ListStudents(ctx context.Context) ([]types.Student, error) {
	var out []types.Student
	err := c.do(ctx, http.MethodGet, "/students", nil, &out)
	return out, err
}

func (c *Client) GetStudent(ctx context.Context, id int64) (types.Student, error) {
	var out types.Student
	err := c.do(ctx, http.MethodGet, idPath("/students", id), nil, &out)
	return out, err
}

func (c *Client) SearchStudents(ctx context.Context, name string) ([]types.Student, error) {
	var out []types.Student
	err := c.do(ctx, http.MethodGet, "/students/search/"+url.PathEscape(name), nil, &out)
	return out, err
}

func (c *Client) CreateStudent(ctx context.Context, req types.StudentRequest) (int64, error) {
	var out struct {
		ID int64 `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/students", req, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (c *Client) UpdateStudent(ctx context.Context, id int64, req types.StudentRequest) error {
	return c.do(ctx, http.MethodPut, idPath("/students", id), req, nil)
}

func (c *Client) DeleteStudent(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/students", id), nil, nil)
}

func (c *Client) ListBooks(ctx context.Context) ([]types.Book, error) {
	var out []types.Book
	err := c.do(ctx, http.MethodGet, "/books", nil, &out)
	return out, err
}

func (c *Client) GetBook(ctx context.Context, id int64) (types.Book, error) {
	var out types.Book
	err := c.do(ctx, http.MethodGet, idPath("/books", id), nil, &out)
	return out, err
}

func (c *Client) SearchBooks(ctx context.Context, title string) ([]types.Book, error) {
	var out []types.Book
	err := c.do(ctx, http.MethodGet, "/books/search/"+url.PathEscape(title), nil, &out)
	return out, err
}

func (c *Client) CreateBook(ctx context.Context, req types.BookRequest) (int64, error) {
	var out struct {
		InsertedID int64 `json:"insertedId"`
	}
	if err := c.do(ctx, http.MethodPost, "/books", req, &out); err != nil {
		return 0, err
	}
	return out.InsertedID, nil
}

func (c *Client) UpdateBook(ctx context.Context, id int64, req types.BookRequest) error {
	return c.do(ctx, http.MethodPut, idPath("/books", id), req, nil)
}

func (c *Client) DeleteBook(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/books", id), nil, nil)
}
