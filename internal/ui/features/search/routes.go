package search

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/openshelf/openshelf/internal/search"
	"github.com/openshelf/openshelf/internal/ui/templates"
)

// SetupRoutes registers the search feature routes.
func SetupRoutes(router chi.Router, service *search.Service, renderer *templates.Renderer, logger *slog.Logger, year int) {
	handlers := NewHandlers(service, renderer, logger, year)

	router.Get("/", handlers.Home)
	router.Get("/search", handlers.SearchPage)
}
