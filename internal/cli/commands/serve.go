package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/openshelf/openshelf/internal/ui"
	"github.com/openshelf/openshelf/internal/ui/templates"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Port         int
	Watch        bool
	TemplatesDir string
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the catalog web server",
		Long: `Start the web server for browsing and searching the catalog.

The server renders the search page, the sortable results table, and the
add-book form. Free-text queries run against the full-text index.`,
		Example: `  # Start on the default port
  openshelf serve

  # Start on a custom port
  openshelf serve --port 3000

  # Serve templates from disk and reload them on change
  openshelf serve --templates-dir internal/ui/templates --watch`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 0, "Port to serve on (default: 8065)")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Reload templates on change (requires --templates-dir)")
	cmd.Flags().StringVar(&opts.TemplatesDir, "templates-dir", "", "Serve templates from disk instead of the embedded copies")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	cfg := cc.Cfg

	port := cfg.Port
	if opts.Port != 0 {
		port = opts.Port
	}

	watch := cfg.Watch
	if cmd.Flags().Changed("watch") {
		watch = opts.Watch
	}

	templatesDir := cfg.TemplatesDir
	if cmd.Flags().Changed("templates-dir") {
		templatesDir = opts.TemplatesDir
	}

	if watch && templatesDir == "" {
		return fmt.Errorf("--watch requires --templates-dir")
	}
	renderer, err := newRenderer(templatesDir, cc)
	if err != nil {
		return err
	}

	server := ui.NewServer(ui.Config{
		Store:         cc.Store,
		Service:       cc.Service,
		Renderer:      renderer,
		Port:          port,
		FooterYear:    cfg.FooterYear,
		SessionSecret: sessionSecret(cfg.SessionSecret),
		Watch:         watch,
		Logger:        cc.Logger,
	})

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Starting catalog server on http://localhost:%d\n", port)
	fmt.Fprintln(out, "Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Serve(ctx)
}

func newRenderer(dir string, cc *CommandContext) (*templates.Renderer, error) {
	if dir != "" {
		return templates.NewFromDir(dir, cc.Logger)
	}
	return templates.New(cc.Logger)
}

// sessionSecret returns the configured session secret, falling back to
// a fixed development secret when none is set.
func sessionSecret(configured string) string {
	if configured != "" {
		return configured
	}
	// Default secret for development (nolint:gosec)
	return "openshelf-dev-secret-change-in-production" //nolint:gosec
}
