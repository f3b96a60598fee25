package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// sortColumns whitelists the ORDER BY targets for SearchBooks. Anything
// else falls back to the default (title ascending).
var sortColumns = map[string]bool{
	"title":        true,
	"description":  true,
	"publisher":    true,
	"publish_date": true,
}

const bookSelect = `
	SELECT
	  b.id,
	  b.title,
	  b.ean_isbn13,
	  b.upc_isbn10,
	  b.description,
	  b.publisher,
	  b.publish_date,
	  b.page_length,
	  GROUP_CONCAT(DISTINCT a.full_name) AS authors,
	  GROUP_CONCAT(DISTINCT c.name) AS categories
	FROM books b
	LEFT JOIN book_authors ba ON ba.book_id = b.id
	LEFT JOIN authors a ON a.id = ba.author_id
	LEFT JOIN book_categories bc ON bc.book_id = b.id
	LEFT JOIN categories c ON c.id = bc.category_id
`

// SearchBooks runs a filtered search. Title matches against title or
// description (LIKE), author/category filters match the junction
// tables, and IDs (when non-nil) restricts the result set.
func (s *SQLiteStore) SearchBooks(ctx context.Context, f SearchFilter) ([]Book, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	var where []string
	var args []any

	if f.Title != "" {
		where = append(where, "(b.title LIKE ? OR b.description LIKE ?)")
		pattern := "%" + f.Title + "%"
		args = append(args, pattern, pattern)
	}
	if f.AuthorID > 0 {
		where = append(where, "ba.author_id = ?")
		args = append(args, f.AuthorID)
	}
	if f.CategoryID > 0 {
		where = append(where, "bc.category_id = ?")
		args = append(args, f.CategoryID)
	}
	if f.IDs != nil {
		if len(f.IDs) == 0 {
			return nil, nil
		}
		placeholders := strings.Repeat("?,", len(f.IDs))
		where = append(where, fmt.Sprintf("b.id IN (%s)", placeholders[:len(placeholders)-1]))
		for _, id := range f.IDs {
			args = append(args, id)
		}
	}

	query := bookSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " GROUP BY b.id"
	query += orderClause(f.SortBy, f.SortDir)

	return s.queryBooks(ctx, query, args...)
}

// orderClause returns the ORDER BY suffix for a whitelisted sort column
// and direction, defaulting to title ascending.
func orderClause(sortBy, sortDir string) string {
	if sortColumns[sortBy] && (sortDir == "asc" || sortDir == "desc") {
		return fmt.Sprintf(" ORDER BY b.%s %s", sortBy, strings.ToUpper(sortDir))
	}
	return " ORDER BY b.title ASC"
}

// ListBooks returns every book with joined labels, ordered by ID.
func (s *SQLiteStore) ListBooks(ctx context.Context) ([]Book, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	return s.queryBooks(ctx, bookSelect+" GROUP BY b.id ORDER BY b.id")
}

// GetBook returns a single book by ID.
func (s *SQLiteStore) GetBook(ctx context.Context, id int64) (*Book, error) {
	books, err := s.queryBooks(ctx, bookSelect+" WHERE b.id = ? GROUP BY b.id", id)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, ErrNotFound
	}
	return &books[0], nil
}

// AddBook inserts a book and its junction rows in one transaction.
func (s *SQLiteStore) AddBook(ctx context.Context, b NewBook) (int64, error) {
	if s.db == nil {
		return 0, fmt.Errorf("database not opened")
	}
	if b.Title == "" {
		return 0, errors.New("title is required")
	}
	if b.AuthorID <= 0 {
		return 0, errors.New("author is required")
	}
	if b.CategoryID <= 0 {
		return 0, errors.New("category is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO books (title, description, ean_isbn13, upc_isbn10, publisher, publish_date)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		b.Title,
		nullable(b.Description),
		nullable(b.EANISBN13),
		nullable(b.UPCISBN10),
		nullable(b.Publisher),
		nullable(b.PublishDate),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert book: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read new book id: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO book_authors (book_id, author_id) VALUES (?, ?)`, id, b.AuthorID); err != nil {
		return 0, fmt.Errorf("failed to link author: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO book_categories (book_id, category_id) VALUES (?, ?)`, id, b.CategoryID); err != nil {
		return 0, fmt.Errorf("failed to link category: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit book: %w", err)
	}
	return id, nil
}

func (s *SQLiteStore) queryBooks(ctx context.Context, query string, args ...any) ([]Book, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	var books []Book
	for rows.Next() {
		var b Book
		var ean, upc, desc, pub, date, authors, categories sql.NullString
		var pages sql.NullInt64

		if err := rows.Scan(&b.ID, &b.Title, &ean, &upc, &desc, &pub, &date, &pages, &authors, &categories); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}

		b.EANISBN13 = ean.String
		b.UPCISBN10 = upc.String
		b.Description = desc.String
		b.Publisher = pub.String
		b.PublishDate = date.String
		b.PageLength = pages.Int64
		b.Authors = authors.String
		b.Categories = categories.String
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate books: %w", err)
	}
	return books, nil
}

// nullable maps "" to NULL so empty optional fields are stored as
// absent rather than empty strings.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
