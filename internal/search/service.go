package search

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/openshelf/openshelf/internal/catalog"
)

// Service is the query collaborator behind the search view: it applies
// structured filters through the catalog store and the free-text query
// through the full-text index, combined with AND.
type Service struct {
	store  catalog.Store
	index  *Index
	logger *slog.Logger
}

// NewService creates a search service.
func NewService(store catalog.Store, index *Index, logger *slog.Logger) *Service {
	return &Service{store: store, index: index, logger: logger}
}

// Search executes the criteria and returns result rows. When no filter
// field is set it performs no query and returns nil, matching the
// "no search performed" display state.
func (s *Service) Search(ctx context.Context, c Criteria) ([]catalog.Book, error) {
	if !c.HasFilter() {
		return nil, nil
	}

	filter := catalog.SearchFilter{
		Title:      c.Title,
		AuthorID:   c.AuthorIDInt(),
		CategoryID: c.CategoryIDInt(),
		SortBy:     string(c.SortBy),
		SortDir:    string(c.SortDir),
	}

	if c.NLP != "" {
		ids, err := s.index.Match(ctx, c.NLP)
		if err != nil {
			return nil, fmt.Errorf("free-text query failed: %w", err)
		}
		s.logger.Debug("free-text matches", "query", c.NLP, "count", len(ids))
		if len(ids) == 0 {
			return nil, nil
		}
		filter.IDs = ids
	}

	books, err := s.store.SearchBooks(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("catalog search failed: %w", err)
	}
	return books, nil
}

// Options returns the author and category dropdown option lists.
func (s *Service) Options(ctx context.Context) (authors, categories []catalog.Option, err error) {
	authors, err = s.store.AuthorOptions(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load author options: %w", err)
	}
	categories, err = s.store.CategoryOptions(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load category options: %w", err)
	}
	return authors, categories, nil
}

// IndexBook makes a newly added book findable by the free-text query.
func (s *Service) IndexBook(ctx context.Context, id int64) error {
	book, err := s.store.GetBook(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load book for indexing: %w", err)
	}
	return s.index.IndexBook(ctx, *book)
}

// Reindex rebuilds the full-text index from the catalog.
func (s *Service) Reindex(ctx context.Context) (int, error) {
	books, err := s.store.ListBooks(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list books for reindex: %w", err)
	}
	if err := s.index.Reindex(ctx, books); err != nil {
		return 0, err
	}
	s.logger.Info("search index rebuilt", "books", len(books))
	return len(books), nil
}
