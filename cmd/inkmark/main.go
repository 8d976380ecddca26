// Command inkmark stores and consolidates document highlights.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/inkmark/internal/adapters/driven/config/file"
	"github.com/custodia-labs/inkmark/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/inkmark/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/inkmark/internal/adapters/driving/cli"
	"github.com/custodia-labs/inkmark/internal/core/geometry"
	"github.com/custodia-labs/inkmark/internal/core/ports/driven"
	"github.com/custodia-labs/inkmark/internal/core/services"
	"github.com/custodia-labs/inkmark/internal/logger"
)

// version is set via -ldflags at build time.
var version = "dev"

// Config keys read at startup.
const (
	keyDataDir = "storage.data_dir"
	keyBackend = "storage.backend"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configStore, err := file.NewConfigStore(os.Getenv("INKMARK_HOME"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	highlightStore, closeStore, err := openHighlightStore(configStore)
	if err != nil {
		return err
	}
	defer closeStore()

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("reading geometry settings: %w", err)
	}
	normalizer := geometry.NewNormalizer(settings)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Highlight: services.NewHighlightService(highlightStore, normalizer),
		Selection: services.NewSelectionService(services.NewAncestorPageResolver(), normalizer),
		Settings:  settingsService,
	})

	return cli.Execute(ctx)
}

// openHighlightStore opens the configured backend: SQLite by default, or
// a throwaway in-memory store when storage.backend is "memory".
func openHighlightStore(config driven.ConfigStore) (driven.HighlightStore, func(), error) {
	if config.GetString(keyBackend) == "memory" {
		logger.Info("using in-memory highlight store; nothing will be saved")
		return memory.NewHighlightStore(), func() {}, nil
	}

	store, err := sqlite.NewStore(config.GetString(keyDataDir))
	if err != nil {
		return nil, nil, fmt.Errorf("opening highlight store: %w", err)
	}
	logger.Debug("opened highlight store", "path", store.Path())

	return store.HighlightStore(), func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing highlight store", "err", err)
		}
	}, nil
}
