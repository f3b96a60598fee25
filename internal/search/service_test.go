package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/openshelf/internal/catalog"
	"github.com/openshelf/openshelf/internal/testutil"
)

func setupTestService(t *testing.T) (*Service, catalog.Store) {
	t.Helper()

	store, err := catalog.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate())

	index, err := NewMemIndex()
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	ctx := context.Background()
	_, err = store.DB().ExecContext(ctx, `
		INSERT INTO authors (id, full_name) VALUES (1, 'Frank Herbert'), (2, 'Ursula K. Le Guin');
		INSERT INTO categories (id, name) VALUES (1, 'Science Fiction'), (2, 'Fantasy');
	`)
	require.NoError(t, err)

	svc := NewService(store, index, testutil.NewTestLogger(t))

	books := []catalog.NewBook{
		{Title: "Dune", Description: "A desert planet and its spice", AuthorID: 1, CategoryID: 1},
		{Title: "The Dispossessed", Description: "An ambiguous utopia between two worlds", AuthorID: 2, CategoryID: 1},
		{Title: "A Wizard of Earthsea", Description: "A young wizard learns the cost of power", AuthorID: 2, CategoryID: 2},
	}
	for _, b := range books {
		id, err := store.AddBook(ctx, b)
		require.NoError(t, err)
		require.NoError(t, svc.IndexBook(ctx, id))
	}

	return svc, store
}

func TestService_Search_NoFilterPerformsNoQuery(t *testing.T) {
	svc, _ := setupTestService(t)

	books, err := svc.Search(context.Background(), Criteria{})
	require.NoError(t, err)
	assert.Nil(t, books)

	// Sort state alone still performs no query.
	books, err = svc.Search(context.Background(), Criteria{SortBy: ColumnTitle, SortDir: Desc})
	require.NoError(t, err)
	assert.Nil(t, books)
}

func TestService_Search_StructuredFilters(t *testing.T) {
	svc, _ := setupTestService(t)

	books, err := svc.Search(context.Background(), Criteria{AuthorID: "2"})
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "A Wizard of Earthsea", books[0].Title)
}

func TestService_Search_FreeText(t *testing.T) {
	svc, _ := setupTestService(t)

	books, err := svc.Search(context.Background(), Criteria{NLP: "desert spice"})
	require.NoError(t, err)
	require.NotEmpty(t, books)
	assert.Equal(t, "Dune", books[0].Title)
}

func TestService_Search_FreeTextCombinesWithFilters(t *testing.T) {
	svc, _ := setupTestService(t)

	// "wizard" matches only the Earthsea book; the category filter for
	// Science Fiction excludes it, so the combined query is empty.
	books, err := svc.Search(context.Background(), Criteria{NLP: "wizard", CategoryID: "1"})
	require.NoError(t, err)
	assert.Empty(t, books)

	books, err = svc.Search(context.Background(), Criteria{NLP: "wizard", CategoryID: "2"})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "A Wizard of Earthsea", books[0].Title)
}

func TestService_Search_FreeTextNoMatches(t *testing.T) {
	svc, _ := setupTestService(t)

	books, err := svc.Search(context.Background(), Criteria{NLP: "submarine"})
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestService_Options(t *testing.T) {
	svc, _ := setupTestService(t)

	authors, categories, err := svc.Options(context.Background())
	require.NoError(t, err)
	require.Len(t, authors, 2)
	require.Len(t, categories, 2)
	assert.Equal(t, "Frank Herbert", authors[0].Label)
	assert.Equal(t, "Fantasy", categories[0].Label)
}

func TestService_Reindex(t *testing.T) {
	svc, store := setupTestService(t)
	ctx := context.Background()

	_, err := store.AddBook(ctx, catalog.NewBook{Title: "Solaris", Description: "A sentient ocean", AuthorID: 1, CategoryID: 1})
	require.NoError(t, err)

	// Not yet indexed: the free-text query cannot see it.
	books, err := svc.Search(ctx, Criteria{NLP: "sentient ocean"})
	require.NoError(t, err)
	assert.Empty(t, books)

	n, err := svc.Reindex(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	books, err = svc.Search(ctx, Criteria{NLP: "sentient ocean"})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Solaris", books[0].Title)
}
