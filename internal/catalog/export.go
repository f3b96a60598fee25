package catalog

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Export dumps the five catalog tables as CSV files into dir, creating
// it if necessary. File and column layout mirror the seed format, so
// an exported catalog can be re-seeded as-is.
func (s *SQLiteStore) Export(ctx context.Context, dir string) ([]SeedResult, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	var results []SeedResult
	for _, st := range seedTables {
		n, err := s.exportOne(ctx, filepath.Join(dir, st.file), st)
		if err != nil {
			return results, fmt.Errorf("failed to export %s: %w", st.table, err)
		}
		results = append(results, SeedResult{File: st.file, Rows: n})
	}
	return results, nil
}

func (s *SQLiteStore) exportOne(ctx context.Context, path string, st seedTable) (int, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		"SELECT %s FROM %s ORDER BY %s",
		strings.Join(st.columns, ", "), st.table, st.columns[0],
	))
	if err != nil {
		return 0, fmt.Errorf("failed to query table: %w", err)
	}
	defer rows.Close()

	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(st.columns); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	count := 0
	record := make([]string, len(st.columns))
	values := make([]sql.NullString, len(st.columns))
	ptrs := make([]any, len(st.columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return count, fmt.Errorf("failed to scan row: %w", err)
		}
		for i, v := range values {
			record[i] = v.String
		}
		if err := w.Write(record); err != nil {
			return count, fmt.Errorf("failed to write row: %w", err)
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return count, fmt.Errorf("failed to iterate rows: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return count, fmt.Errorf("failed to flush csv: %w", err)
	}
	return count, nil
}
