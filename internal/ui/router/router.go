// Package router sets up HTTP routes for the catalog server.
package router

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/openshelf/openshelf/internal/catalog"
	"github.com/openshelf/openshelf/internal/search"
	booksFeature "github.com/openshelf/openshelf/internal/ui/features/books"
	searchFeature "github.com/openshelf/openshelf/internal/ui/features/search"
	"github.com/openshelf/openshelf/internal/ui/resources"
	"github.com/openshelf/openshelf/internal/ui/templates"
)

// SetupRoutes registers all feature routes on the given router.
func SetupRoutes(
	router chi.Router,
	store catalog.Store,
	service *search.Service,
	renderer *templates.Renderer,
	sessionStore sessions.Store,
	logger *slog.Logger,
	year int,
) {
	// Static assets
	router.Handle("/static/*", resources.Handler())

	searchFeature.SetupRoutes(router, service, renderer, logger, year)
	booksFeature.SetupRoutes(router, store, service, renderer, sessionStore, logger, year)
}
