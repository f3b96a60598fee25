package books

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/openshelf/internal/search"
	"github.com/openshelf/openshelf/internal/ui/features"
)

func setupTestHandlers(t *testing.T, books ...features.TestBook) (*Handlers, *features.TestFixture) {
	t.Helper()

	fixture := features.SetupTestFixture(t, books...)
	handlers := NewHandlers(fixture.Store, fixture.Service, fixture.Renderer, fixture.SessionStore, fixture.Logger, 2026)
	return handlers, fixture
}

func postForm(t *testing.T, h *Handlers, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/add", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.AddSubmit(rec, req)
	return rec
}

func TestAddPage_RendersForm(t *testing.T) {
	h, _ := setupTestHandlers(t, features.TestBook{Title: "Dune", Author: "Frank Herbert", Category: "Science Fiction"})

	req := httptest.NewRequest(http.MethodGet, "/add", nil)
	rec := httptest.NewRecorder()
	h.AddPage(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `form method="post" action="/add"`)
	assert.Contains(t, body, "Frank Herbert")
	assert.Contains(t, body, "Science Fiction")
}

func TestAddSubmit_RequiresTitleAuthorGenre(t *testing.T) {
	h, fixture := setupTestHandlers(t, features.TestBook{Title: "Dune", Author: "Frank Herbert", Category: "Science Fiction"})
	authorID := strconv.FormatInt(fixture.AuthorID(t, "Frank Herbert"), 10)

	tests := []struct {
		name string
		form url.Values
	}{
		{"missing title", url.Values{"author_id": {authorID}, "category_id": {"1"}}},
		{"missing author", url.Values{"title": {"Solaris"}, "category_id": {"1"}}},
		{"missing genre", url.Values{"title": {"Solaris"}, "author_id": {authorID}}},
		{"non-numeric author", url.Values{"title": {"Solaris"}, "author_id": {"abc"}, "category_id": {"1"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postForm(t, h, tt.form)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), "Title, Author, and Genre are required.")
		})
	}
}

func TestAddSubmit_EchoesFormOnValidationError(t *testing.T) {
	h, _ := setupTestHandlers(t, features.TestBook{Title: "Dune", Author: "Frank Herbert", Category: "Science Fiction"})

	rec := postForm(t, h, url.Values{
		"title":     {""},
		"publisher": {"Chilton"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="publisher" value="Chilton"`)
}

func TestAddSubmit_InsertsAndRedirects(t *testing.T) {
	h, fixture := setupTestHandlers(t, features.TestBook{Title: "Dune", Author: "Frank Herbert", Category: "Science Fiction"})
	ctx := context.Background()

	rec := postForm(t, h, url.Values{
		"title":        {"The Dispossessed"},
		"description":  {"An ambiguous utopia"},
		"publisher":    {"Harper & Row"},
		"publish_date": {"1974-05-01"},
		"author_id":    {strconv.FormatInt(fixture.AuthorID(t, "Frank Herbert"), 10)},
		"category_id":  {strconv.FormatInt(fixture.CategoryID(t, "Science Fiction"), 10)},
	})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/add", rec.Header().Get("Location"))

	books, err := fixture.Store.ListBooks(ctx)
	require.NoError(t, err)
	require.Len(t, books, 2)

	// The flash set during the redirect shows on the next GET.
	req := httptest.NewRequest(http.MethodGet, "/add", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	rec2 := httptest.NewRecorder()
	h.AddPage(rec2, req)

	require.Equal(t, http.StatusOK, rec2.Code)
	assert.Contains(t, rec2.Body.String(), "was successfully added.")

	// The new book is immediately findable by the free-text query.
	found, err := fixture.Service.Search(ctx, search.Criteria{NLP: "ambiguous utopia"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "The Dispossessed", found[0].Title)
}
