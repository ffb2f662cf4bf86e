package cmd

import (
	"errors"
	"fmt"

	"stock-sync/core/config"
	"stock-sync/core/database"
	"stock-sync/core/logger"
	"stock-sync/core/mapping"
	"stock-sync/core/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app bundles what every command needs after startup.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	storage storage.Client
	db      *gorm.DB
}

// newApp loads configuration, builds the logger and opens the backend the
// configured mapping source needs. Only unusable configuration is an error.
func newApp() (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if !cfg.Mapping.IsValidSource() {
		return nil, fmt.Errorf("unknown mapping source %q", cfg.Mapping.Source)
	}

	a := &app{cfg: cfg, logger: l}

	// An unreachable mapping backend leaves the loader without it, so the run
	// proceeds with an empty mapping instead of aborting.
	switch cfg.Mapping.Source {
	case mapping.SourceStorage:
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			l.Error("Mapping storage unavailable - using empty mapping", zap.Error(err))
		} else {
			a.storage = client
		}
	case mapping.SourceDatabase:
		db, err := database.Connect(cfg.Database)
		if err != nil {
			l.Error("Mapping database unavailable - using empty mapping", zap.Error(err))
		} else {
			a.db = db
		}
	}

	return a, nil
}

// mappingLoader returns a loader wired to the configured source.
func (a *app) mappingLoader() *mapping.Loader {
	var opts []mapping.Option
	if a.storage != nil {
		opts = append(opts, mapping.WithStorage(a.storage, a.cfg.Storage.Bucket))
	}
	if a.db != nil {
		opts = append(opts, mapping.WithDatabase(a.db))
	}
	return mapping.NewLoader(a.cfg.Mapping, a.logger, opts...)
}

// Close releases the database connection and flushes the logger.
func (a *app) Close() error {
	var errs []error
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	_ = a.logger.Sync()
	return errors.Join(errs...)
}
