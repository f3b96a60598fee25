// Package templates renders the page shell and views. Templates are
// embedded in the binary; in dev mode they can be reloaded from disk.
package templates

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

//go:embed *.html
var embedded embed.FS

// pages lists the content templates, each rendered inside layout.html.
var pages = []string{"search", "add"}

// DefaultYear is the footer year used when the caller does not
// configure one.
const DefaultYear = 2026

// Renderer renders named pages within the shared layout.
type Renderer struct {
	mu  sync.RWMutex
	set map[string]*template.Template

	dir    string // non-empty: reload source for dev mode
	logger *slog.Logger
}

// New creates a renderer backed by the embedded templates.
func New(logger *slog.Logger) (*Renderer, error) {
	r := &Renderer{logger: logger}
	if err := r.load(embedded); err != nil {
		return nil, err
	}
	return r, nil
}

// NewFromDir creates a renderer that parses templates from dir so they
// can be edited and reloaded without a rebuild.
func NewFromDir(dir string, logger *slog.Logger) (*Renderer, error) {
	r := &Renderer{dir: dir, logger: logger}
	if err := r.reloadFromDir(); err != nil {
		return nil, err
	}
	return r, nil
}

// Render writes the named page to w. data must carry the fields the
// layout needs (Title, Year) alongside the page's own fields.
func (r *Renderer) Render(w io.Writer, page string, data any) error {
	r.mu.RLock()
	tmpl, ok := r.set[page]
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("unknown page template: %s", page)
	}
	return tmpl.ExecuteTemplate(w, "layout.html", data)
}

// Watch reloads templates from disk when they change, blocking until
// the context is cancelled. Renderers backed by the embedded
// filesystem cannot be watched.
func (r *Renderer) Watch(ctx context.Context) error {
	if r.dir == "" {
		return fmt.Errorf("renderer is not backed by a directory")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(r.dir); err != nil {
		return fmt.Errorf("failed to watch template directory: %w", err)
	}

	var debounce *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if filepath.Ext(event.Name) != ".html" {
				continue
			}

			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(100*time.Millisecond, func() {
				if err := r.reloadFromDir(); err != nil {
					r.logger.Error("template reload failed", "error", err)
					return
				}
				r.logger.Debug("templates reloaded", "file", event.Name)
			})

		case err := <-watcher.Errors:
			r.logger.Error("template watcher error", "error", err)
		}
	}
}

func (r *Renderer) reloadFromDir() error {
	return r.load(os.DirFS(r.dir))
}

func (r *Renderer) load(fsys fs.FS) error {
	set := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := template.ParseFS(fsys, "layout.html", page+".html")
		if err != nil {
			return fmt.Errorf("failed to parse %s template: %w", page, err)
		}
		set[page] = tmpl
	}

	r.mu.Lock()
	r.set = set
	r.mu.Unlock()
	return nil
}
