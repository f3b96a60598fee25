package books

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/sessions"

	"github.com/openshelf/openshelf/internal/catalog"
	"github.com/openshelf/openshelf/internal/search"
	"github.com/openshelf/openshelf/internal/ui/features/common"
	"github.com/openshelf/openshelf/internal/ui/templates"
)

const sessionName = "openshelf"

// Handlers provides HTTP handlers for the add-book feature.
type Handlers struct {
	store        catalog.Store
	service      *search.Service
	renderer     *templates.Renderer
	sessionStore sessions.Store
	logger       *slog.Logger
	year         int
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(store catalog.Store, service *search.Service, renderer *templates.Renderer, sessionStore sessions.Store, logger *slog.Logger, year int) *Handlers {
	if year == 0 {
		year = templates.DefaultYear
	}
	return &Handlers{
		store:        store,
		service:      service,
		renderer:     renderer,
		sessionStore: sessionStore,
		logger:       logger,
		year:         year,
	}
}

// AddPage renders the add-book form, showing any flash message from a
// previous submission.
func (h *Handlers) AddPage(w http.ResponseWriter, r *http.Request) {
	var flash string
	if session, err := h.sessionStore.Get(r, sessionName); err == nil {
		if flashes := session.Flashes(); len(flashes) > 0 {
			if msg, ok := flashes[0].(string); ok {
				flash = msg
			}
		}
		_ = session.Save(r, w)
	}

	h.renderPage(w, r, PageData{Flash: flash})
}

// AddSubmit validates and inserts a new book, indexes it, and
// redirects back to the form so a refresh does not resubmit.
func (h *Handlers) AddSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		http.Error(w, "failed to parse form", http.StatusBadRequest)
		return
	}

	form := FormState{
		Title:       strings.TrimSpace(r.PostFormValue("title")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
		EANISBN13:   strings.TrimSpace(r.PostFormValue("ean_isbn13")),
		UPCISBN10:   strings.TrimSpace(r.PostFormValue("upc_isbn10")),
		Publisher:   strings.TrimSpace(r.PostFormValue("publisher")),
		PublishDate: strings.TrimSpace(r.PostFormValue("publish_date")),
		AuthorID:    strings.TrimSpace(r.PostFormValue("author_id")),
		CategoryID:  strings.TrimSpace(r.PostFormValue("category_id")),
	}

	authorID, _ := strconv.ParseInt(form.AuthorID, 10, 64)
	categoryID, _ := strconv.ParseInt(form.CategoryID, 10, 64)

	if form.Title == "" || authorID <= 0 || categoryID <= 0 {
		h.renderPage(w, r, PageData{
			Error: "Title, Author, and Genre are required.",
			Form:  form,
		})
		return
	}

	id, err := h.store.AddBook(ctx, catalog.NewBook{
		Title:       form.Title,
		Description: form.Description,
		EANISBN13:   form.EANISBN13,
		UPCISBN10:   form.UPCISBN10,
		Publisher:   form.Publisher,
		PublishDate: form.PublishDate,
		AuthorID:    authorID,
		CategoryID:  categoryID,
	})
	if err != nil {
		h.logger.Error("failed to add book", "title", form.Title, "error", err)
		h.renderPage(w, r, PageData{
			Error: "Error adding book: " + err.Error(),
			Form:  form,
		})
		return
	}

	if err := h.service.IndexBook(ctx, id); err != nil {
		// The book is saved; it just won't match free-text queries
		// until the next reindex.
		h.logger.Error("failed to index new book", "id", id, "error", err)
	}

	if session, err := h.sessionStore.Get(r, sessionName); err == nil {
		session.AddFlash(fmt.Sprintf("Book %q was successfully added.", form.Title))
		_ = session.Save(r, w)
	}

	http.Redirect(w, r, "/add", http.StatusSeeOther)
}

func (h *Handlers) renderPage(w http.ResponseWriter, r *http.Request, page PageData) {
	authors, categories, err := h.service.Options(r.Context())
	if err != nil {
		h.logger.Error("failed to load options", "error", err)
		http.Error(w, "failed to load options", http.StatusInternalServerError)
		return
	}

	page.Title = "Add a New Book"
	page.Year = h.year
	page.Authors = common.BuildOptions(authors, page.Form.AuthorID)
	page.Categories = common.BuildOptions(categories, page.Form.CategoryID)

	if err := h.renderer.Render(w, "add", page); err != nil {
		h.logger.Error("failed to render add page", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
