// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, process execution, database, storage)
// that domain systems require.
package infrastructure

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/JaimeStill/canopy/internal/config"
	"github.com/JaimeStill/canopy/pkg/database"
	"github.com/JaimeStill/canopy/pkg/lifecycle"
	"github.com/JaimeStill/canopy/pkg/process"
	"github.com/JaimeStill/canopy/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
// Storage is nil when no storage account is configured.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Runner    *process.Runner
	Database  database.System
	Storage   storage.System
}

// NewLogger builds the service logger from the log_level and log_format settings.
func NewLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level()}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := NewLogger(cfg, os.Stderr)

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	infra := &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Runner:    process.New(),
		Database:  db,
	}

	if !cfg.Storage.Configured() {
		logger.Warn("storage not configured, image archiving disabled")
		return infra, nil
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}
	infra.Storage = store

	return infra, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if i.Storage != nil {
		if err := i.Storage.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("storage start failed: %w", err)
		}
	}
	return nil
}
