// Package commands implements the openshelf subcommands.
package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/openshelf/openshelf/internal/catalog"
	"github.com/openshelf/openshelf/internal/cli/config"
	"github.com/openshelf/openshelf/internal/search"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg     *config.Config
	Logger  *slog.Logger
	Store   *catalog.SQLiteStore
	Index   *search.Index
	Service *search.Service
}

// NewCommandContext opens the catalog database and the search index.
// Returns the context and a cleanup function that must be called
// (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cc, cleanup, err := NewStoreContext(cmd)
	if err != nil {
		return nil, nil, err
	}

	index, err := search.OpenIndex(cc.Cfg.IndexPath)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to open search index: %w", err)
	}

	cc.Index = index
	cc.Service = search.NewService(cc.Store, index, cc.Logger)

	return cc, func() {
		_ = index.Close()
		cleanup()
	}, nil
}

// NewStoreContext opens only the catalog database. Commands that never
// touch the search index use this to avoid creating an index file.
func NewStoreContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cfg := config.GetCurrentConfig()
	logger := config.GetLogger(cmd.Context())

	store, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	cc := &CommandContext{
		Cfg:    cfg,
		Logger: logger,
		Store:  store,
	}

	return cc, func() { _ = store.Close() }, nil
}

func openStore(cfg *config.Config) (*catalog.SQLiteStore, error) {
	if dir := filepath.Dir(cfg.DatabasePath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	store, err := catalog.Open(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}

	if err := store.Migrate(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate catalog database: %w", err)
	}

	return store, nil
}
