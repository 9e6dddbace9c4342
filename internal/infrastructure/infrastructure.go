// Package infrastructure builds the process-wide systems every domain
// module shares.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/JaimeStill/revisor/internal/config"
	"github.com/JaimeStill/revisor/internal/oracle"
	"github.com/JaimeStill/revisor/pkg/database"
	"github.com/JaimeStill/revisor/pkg/lifecycle"
	"github.com/JaimeStill/revisor/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Oracle    oracle.Analyzer
}

// New constructs each system without contacting any backend. Connections
// are made by the startup hooks Start registers.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Level(),
	}))

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	logger.Debug("infrastructure constructed", "env", cfg.Env(), "oracle_model", cfg.Oracle.Model)

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Storage:   store,
		Oracle:    oracle.New(&cfg.Oracle, logger),
	}, nil
}

// Start registers the database and storage systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	return nil
}
