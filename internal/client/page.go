package client

import (
	"context"
	"errors"
	"sync"
)

// State is where a page is in its submit cycle.
type State int

const (
	Idle State = iota
	Submitting
)

func (s State) String() string {
	if s == Submitting {
		return "submitting"
	}
	return "idle"
}

// ErrBusy is returned when Submit is called while another submit runs.
var ErrBusy = errors.New("a submission is already in progress")

// Page holds one list view: its rows and the outcome of the last action.
//
// Every successful mutation is followed by a full reload of the list;
// there is no local patching and no retry of a failed mutation.
type Page[T any] struct {
	list func(context.Context) ([]T, error)

	mu      sync.Mutex
	state   State
	rows    []T
	message string
}

// NewPage creates a page that fills itself with list.
func NewPage[T any](list func(context.Context) ([]T, error)) *Page[T] {
	return &Page[T]{list: list}
}

// Load fetches the list, replacing the current rows on success.
func (p *Page[T]) Load(ctx context.Context) error {
	rows, err := p.list(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.message = errorMessage(err)
		return err
	}
	p.rows = rows
	p.message = ""
	return nil
}

// Submit runs mutate once. On success the list is reloaded; on failure
// the error message is kept for display and the rows are left alone.
func (p *Page[T]) Submit(ctx context.Context, mutate func(context.Context) error) error {
	p.mu.Lock()
	if p.state == Submitting {
		p.mu.Unlock()
		return ErrBusy
	}
	p.state = Submitting
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.state = Idle
		p.mu.Unlock()
	}()

	if err := mutate(ctx); err != nil {
		p.mu.Lock()
		p.message = errorMessage(err)
		p.mu.Unlock()
		return err
	}

	return p.Load(ctx)
}

// State reports whether a submit is running.
func (p *Page[T]) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Rows returns a copy of the rows from the last successful load.
func (p *Page[T]) Rows() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]T(nil), p.rows...)
}

// Message is the error from the last action, "" after a success.
func (p *Page[T]) Message() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.message
}

func errorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
