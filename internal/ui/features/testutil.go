// Package features provides shared test utilities for UI feature tests.
package features

import (
	"context"
	"log/slog"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/openshelf/internal/catalog"
	"github.com/openshelf/openshelf/internal/search"
	"github.com/openshelf/openshelf/internal/testutil"
	"github.com/openshelf/openshelf/internal/ui/templates"
)

// TestBook creates a catalog entry with minimal boilerplate. Author
// and Category are labels; the fixture creates them on first use.
type TestBook struct {
	Title       string
	Description string
	Publisher   string
	PublishDate string
	Author      string
	Category    string
}

// TestFixture holds the dependencies feature handler tests need.
type TestFixture struct {
	Store        *catalog.SQLiteStore
	Service      *search.Service
	Renderer     *templates.Renderer
	SessionStore *sessions.CookieStore
	Logger       *slog.Logger
}

// SetupTestFixture builds an in-memory catalog, an ephemeral search
// index, and a service seeded with the given books.
func SetupTestFixture(t *testing.T, books ...TestBook) *TestFixture {
	t.Helper()
	ctx := context.Background()

	logger := testutil.NewTestLogger(t)

	store, err := catalog.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate())

	index, err := search.NewMemIndex()
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	service := search.NewService(store, index, logger)

	renderer, err := templates.New(logger)
	require.NoError(t, err)

	fixture := &TestFixture{
		Store:        store,
		Service:      service,
		Renderer:     renderer,
		SessionStore: sessions.NewCookieStore([]byte("test-secret")),
		Logger:       logger,
	}

	authorIDs := map[string]int64{}
	categoryIDs := map[string]int64{}
	for _, b := range books {
		authorID, ok := authorIDs[b.Author]
		if !ok {
			res, err := store.DB().ExecContext(ctx, `INSERT INTO authors (full_name) VALUES (?)`, b.Author)
			require.NoError(t, err)
			authorID, err = res.LastInsertId()
			require.NoError(t, err)
			authorIDs[b.Author] = authorID
		}

		categoryID, ok := categoryIDs[b.Category]
		if !ok {
			res, err := store.DB().ExecContext(ctx, `INSERT INTO categories (name) VALUES (?)`, b.Category)
			require.NoError(t, err)
			categoryID, err = res.LastInsertId()
			require.NoError(t, err)
			categoryIDs[b.Category] = categoryID
		}

		id, err := store.AddBook(ctx, catalog.NewBook{
			Title:       b.Title,
			Description: b.Description,
			Publisher:   b.Publisher,
			PublishDate: b.PublishDate,
			AuthorID:    authorID,
			CategoryID:  categoryID,
		})
		require.NoError(t, err)
		require.NoError(t, service.IndexBook(ctx, id))
	}

	return fixture
}

// AuthorID returns the ID of a fixture author by name.
func (f *TestFixture) AuthorID(t *testing.T, name string) int64 {
	t.Helper()
	return f.lookupID(t, `SELECT id FROM authors WHERE full_name = ?`, name)
}

// CategoryID returns the ID of a fixture category by name.
func (f *TestFixture) CategoryID(t *testing.T, name string) int64 {
	t.Helper()
	return f.lookupID(t, `SELECT id FROM categories WHERE name = ?`, name)
}

func (f *TestFixture) lookupID(t *testing.T, query, arg string) int64 {
	t.Helper()
	var id int64
	require.NoError(t, f.Store.DB().QueryRow(query, arg).Scan(&id))
	return id
}
