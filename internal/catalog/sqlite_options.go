package catalog

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// AuthorOptions returns (id, full name) pairs for the author dropdown.
func (s *SQLiteStore) AuthorOptions(ctx context.Context) ([]Option, error) {
	return s.options(ctx, `SELECT id, full_name FROM authors`)
}

// CategoryOptions returns (id, name) pairs for the genre dropdown.
func (s *SQLiteStore) CategoryOptions(ctx context.Context) ([]Option, error) {
	return s.options(ctx, `SELECT id, name FROM categories`)
}

func (s *SQLiteStore) options(ctx context.Context, query string) ([]Option, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	var opts []Option
	for rows.Next() {
		var o Option
		if err := rows.Scan(&o.ID, &o.Label); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		opts = append(opts, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate options: %w", err)
	}

	sortOptions(opts)
	return opts, nil
}

// sortOptions orders labels with locale-aware collation rather than
// SQLite's binary ORDER BY, so accented names sort where readers
// expect them.
func sortOptions(opts []Option) {
	c := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(opts, func(i, j int) bool {
		return c.CompareString(opts[i].Label, opts[j].Label) < 0
	})
}
