package search

import (
	"log/slog"
	"net/http"

	"github.com/openshelf/openshelf/internal/search"
	"github.com/openshelf/openshelf/internal/ui/templates"
)

// Handlers provides HTTP handlers for the search feature.
type Handlers struct {
	service  *search.Service
	renderer *templates.Renderer
	logger   *slog.Logger
	year     int
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *search.Service, renderer *templates.Renderer, logger *slog.Logger, year int) *Handlers {
	if year == 0 {
		year = templates.DefaultYear
	}
	return &Handlers{
		service:  service,
		renderer: renderer,
		logger:   logger,
		year:     year,
	}
}

// Home redirects the root URL to the search page.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/search", http.StatusFound)
}

// SearchPage runs the search described by the query parameters and
// renders the filter form plus results.
func (h *Handlers) SearchPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	criteria := search.ParseCriteria(r.URL.Query())

	books, err := h.service.Search(ctx, criteria)
	if err != nil {
		h.logger.Error("search failed", "error", err)
		http.Error(w, "search failed", http.StatusInternalServerError)
		return
	}

	authors, categories, err := h.service.Options(ctx)
	if err != nil {
		h.logger.Error("failed to load options", "error", err)
		http.Error(w, "failed to load options", http.StatusInternalServerError)
		return
	}

	page := BuildPage(criteria, books, authors, categories, h.year)
	if err := h.renderer.Render(w, "search", page); err != nil {
		h.logger.Error("failed to render search page", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
