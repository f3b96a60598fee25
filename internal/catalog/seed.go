package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// seedTable maps a CSV file in the seeds directory onto a catalog table.
// Columns missing from the CSV header are inserted as NULL.
type seedTable struct {
	file    string
	table   string
	columns []string
}

var seedTables = []seedTable{
	{"authors.csv", "authors", []string{"id", "full_name"}},
	{"categories.csv", "categories", []string{"id", "name"}},
	{"books.csv", "books", []string{"id", "title", "ean_isbn13", "upc_isbn10", "description", "publisher", "publish_date", "page_length"}},
	{"book_authors.csv", "book_authors", []string{"book_id", "author_id"}},
	{"book_categories.csv", "book_categories", []string{"book_id", "category_id"}},
}

// SeedResult reports how many rows each seed file loaded.
type SeedResult struct {
	File string
	Rows int
}

// Seed loads the catalog tables from CSV files in seedsDir. Files are
// loaded in dependency order (authors and categories before books,
// junctions last). A missing file is an error; a missing column is not.
func (s *SQLiteStore) Seed(ctx context.Context, seedsDir string) ([]SeedResult, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	var results []SeedResult
	for _, st := range seedTables {
		n, err := s.seedOne(ctx, filepath.Join(seedsDir, st.file), st)
		if err != nil {
			return results, fmt.Errorf("failed to seed %s: %w", st.table, err)
		}
		results = append(results, SeedResult{File: st.file, Rows: n})
	}
	return results, nil
}

func (s *SQLiteStore) seedOne(ctx context.Context, path string, st seedTable) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read header: %w", err)
	}

	// Map expected columns to header positions; -1 means absent.
	pos := make([]int, len(st.columns))
	for i, col := range st.columns {
		pos[i] = -1
		for j, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), col) {
				pos[i] = j
				break
			}
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(st.columns)), ",")
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		st.table, strings.Join(st.columns, ", "), placeholders,
	))
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	count := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("failed to read row: %w", err)
		}

		values := make([]any, len(st.columns))
		for i, p := range pos {
			if p < 0 || p >= len(record) || record[p] == "" {
				values[i] = nil
				continue
			}
			values[i] = record[p]
		}

		if _, err := stmt.ExecContext(ctx, values...); err != nil {
			return count, fmt.Errorf("failed to insert row %d: %w", count+1, err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return count, fmt.Errorf("failed to commit: %w", err)
	}
	return count, nil
}
