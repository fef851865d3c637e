// Package listview keeps a client side list of records in step with a
// paginated resource endpoint: a debounced search, categorical filters, a
// local re-filter of the fetched page and the create/edit/delete cycle.
package listview

import (
	"context"
	"errors"
)

// Record is what a list row needs to offer.
type Record interface {
	Key() string
	SearchFields() []string
}

// Filters are exact match filters. Empty means "any".
type Filters struct {
	Department string
	Status     string
}

func (f Filters) Match(record Filters) bool {
	if f.Department != "" && f.Department != record.Department {
		return false
	}
	if f.Status != "" && f.Status != record.Status {
		return false
	}
	return true
}

type Query struct {
	Search string
	Filters
	Page  int
	Limit int
}

type Page[T any] struct {
	Items      []T
	Total      int64
	Page       int
	Limit      int
	TotalPages int
	HasMore    bool
}

// Source is the remote side of a list. Sources that can also edit or delete
// records implement Updater or Deleter.
type Source[T Record, D any] interface {
	List(ctx context.Context, q Query) (Page[T], error)
	Create(ctx context.Context, draft D) (T, error)
}

type Updater[T Record, D any] interface {
	Update(ctx context.Context, key string, draft D) (T, error)
}

type Deleter interface {
	Delete(ctx context.Context, key string) error
}

// StatusSetter moves a record to another status in place, such as approving
// a leave request.
type StatusSetter[T Record] interface {
	SetStatus(ctx context.Context, key, status string) (T, error)
}

var (
	ErrNotSupported    = errors.New("listview: operation not supported by source")
	ErrModalClosed     = errors.New("listview: no form is open")
	ErrNoPendingDelete = errors.New("listview: no delete awaiting confirmation")
	ErrUnknownRecord   = errors.New("listview: record not in snapshot")
	ErrClosed          = errors.New("listview: controller closed")
)

type ModalMode int

const (
	ModalClosed ModalMode = iota
	ModalCreate
	ModalEdit
)

func (m ModalMode) String() string {
	switch m {
	case ModalCreate:
		return "create"
	case ModalEdit:
		return "edit"
	default:
		return "closed"
	}
}

// Modal is the form state. Key is set only in ModalEdit.
type Modal struct {
	Mode ModalMode
	Key  string
}
