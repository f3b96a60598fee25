package books

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/openshelf/openshelf/internal/catalog"
	"github.com/openshelf/openshelf/internal/search"
	"github.com/openshelf/openshelf/internal/ui/templates"
)

// SetupRoutes registers the add-book feature routes.
func SetupRoutes(router chi.Router, store catalog.Store, service *search.Service, renderer *templates.Renderer, sessionStore sessions.Store, logger *slog.Logger, year int) {
	handlers := NewHandlers(store, service, renderer, sessionStore, logger, year)

	router.Get("/add", handlers.AddPage)
	router.Post("/add", handlers.AddSubmit)
}
