// Package ui provides the web server for the library catalog.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	"github.com/openshelf/openshelf/internal/catalog"
	"github.com/openshelf/openshelf/internal/search"
	"github.com/openshelf/openshelf/internal/ui/router"
	"github.com/openshelf/openshelf/internal/ui/templates"
)

// Server is the catalog web server.
type Server struct {
	store        catalog.Store
	service      *search.Service
	renderer     *templates.Renderer
	sessionStore *sessions.CookieStore
	port         int
	year         int
	watch        bool
	logger       *slog.Logger
}

// Config holds configuration for the web server.
type Config struct {
	Store         catalog.Store
	Service       *search.Service
	Renderer      *templates.Renderer
	Port          int
	FooterYear    int
	SessionSecret string
	Watch         bool
	Logger        *slog.Logger
}

// NewServer creates a new web server instance.
func NewServer(cfg Config) *Server {
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.MaxAge(86400 * 30) // 30 days
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	return &Server{
		store:        cfg.Store,
		service:      cfg.Service,
		renderer:     cfg.Renderer,
		sessionStore: sessionStore,
		port:         cfg.Port,
		year:         cfg.FooterYear,
		watch:        cfg.Watch,
		logger:       cfg.Logger,
	}
}

// Serve starts the server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting catalog server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	eg, egctx := errgroup.WithContext(ctx)

	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	router.SetupRoutes(r, s.store, s.service, s.renderer, s.sessionStore, s.logger, s.year)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Reload templates on change when serving from disk
	if s.watch {
		eg.Go(func() error {
			return s.renderer.Watch(egctx)
		})
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down catalog server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
