package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSeedFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func writeSeedDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeSeedFile(t, dir, "authors.csv", "id,full_name\n1,Frank Herbert\n2,Ursula K. Le Guin\n")
	writeSeedFile(t, dir, "categories.csv", "id,name\n1,Science Fiction\n")
	// books.csv deliberately omits the page_length column.
	writeSeedFile(t, dir, "books.csv",
		"id,title,ean_isbn13,upc_isbn10,description,publisher,publish_date\n"+
			"1,Dune,9780441013593,,Spice and sandworms,Chilton,1965-08-01\n"+
			"2,The Dispossessed,,,,Harper & Row,1974-05-01\n")
	writeSeedFile(t, dir, "book_authors.csv", "book_id,author_id\n1,1\n2,2\n")
	writeSeedFile(t, dir, "book_categories.csv", "book_id,category_id\n1,1\n2,1\n")

	return dir
}

func TestSeed(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	results, err := store.Seed(ctx, writeSeedDir(t))
	require.NoError(t, err)
	require.Len(t, results, 5)
	assert.Equal(t, SeedResult{File: "authors.csv", Rows: 2}, results[0])
	assert.Equal(t, SeedResult{File: "books.csv", Rows: 2}, results[2])

	books, err := store.ListBooks(ctx)
	require.NoError(t, err)
	require.Len(t, books, 2)

	assert.Equal(t, "Dune", books[0].Title)
	assert.Equal(t, "Frank Herbert", books[0].Authors)
	assert.Equal(t, "Science Fiction", books[0].Categories)
	// Missing column loads as NULL, surfaces as zero value.
	assert.Equal(t, int64(0), books[0].PageLength)
	// Empty CSV field loads as NULL, surfaces as empty string.
	assert.Equal(t, "", books[1].Description)
}

func TestSeed_MissingFile(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.Seed(context.Background(), t.TempDir())
	assert.ErrorContains(t, err, "failed to seed authors")
}

func TestExportRoundTrip(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, err := store.Seed(ctx, writeSeedDir(t))
	require.NoError(t, err)

	exportDir := filepath.Join(t.TempDir(), "csv_data")
	results, err := store.Export(ctx, exportDir)
	require.NoError(t, err)
	require.Len(t, results, 5)

	// Re-seed a fresh store from the export and compare.
	second := setupTestStore(t)
	_, err = second.Seed(ctx, exportDir)
	require.NoError(t, err)

	want, err := store.ListBooks(ctx)
	require.NoError(t, err)
	got, err := second.ListBooks(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
