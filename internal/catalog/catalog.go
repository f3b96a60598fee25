// Package catalog provides the library catalog store backed by SQLite.
package catalog

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested book does not exist.
var ErrNotFound = errors.New("book not found")

// Book is one catalog entry. Authors and Categories carry the joined
// labels produced by the search query (comma-separated, distinct).
type Book struct {
	ID          int64
	Title       string
	EANISBN13   string
	UPCISBN10   string
	Description string
	Publisher   string
	PublishDate string
	PageLength  int64
	Authors     string
	Categories  string
}

// Option is one (id, label) pair for the author/genre dropdowns.
type Option struct {
	ID    int64
	Label string
}

// NewBook holds the fields required to insert a catalog entry.
// Title, AuthorID and CategoryID are required; the rest may be empty.
type NewBook struct {
	Title       string
	Description string
	EANISBN13   string
	UPCISBN10   string
	Publisher   string
	PublishDate string // expects YYYY-MM-DD
	AuthorID    int64
	CategoryID  int64
}

// SearchFilter is the store-level query. Zero values mean "no filter".
// IDs, when non-nil, restricts results to the given book IDs (used to
// apply full-text matches from the search index); an empty non-nil
// slice matches nothing.
type SearchFilter struct {
	Title      string
	AuthorID   int64
	CategoryID int64
	IDs        []int64
	SortBy     string // title, description, publisher, publish_date
	SortDir    string // asc, desc
}

// Store is the catalog persistence interface.
type Store interface {
	// SearchBooks runs a filtered search and returns rows with joined
	// author/category labels, ordered by the whitelisted sort column
	// (default: title ascending).
	SearchBooks(ctx context.Context, f SearchFilter) ([]Book, error)

	// ListBooks returns every book with joined labels, ordered by ID.
	ListBooks(ctx context.Context) ([]Book, error)

	// GetBook returns a single book by ID, or ErrNotFound.
	GetBook(ctx context.Context, id int64) (*Book, error)

	// AddBook inserts a book plus its author/category junction rows in
	// one transaction and returns the new book ID.
	AddBook(ctx context.Context, b NewBook) (int64, error)

	// AuthorOptions returns (id, full name) pairs sorted by name.
	AuthorOptions(ctx context.Context) ([]Option, error)

	// CategoryOptions returns (id, category name) pairs sorted by name.
	CategoryOptions(ctx context.Context) ([]Option, error)

	Close() error
}
