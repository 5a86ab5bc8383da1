package storage

import (
	"context"
	"fmt"

	"github.com/yourname/healthcoach/internal"
	"github.com/yourname/healthcoach/internal/config"
)

// NewRepository opens the backend selected by cfg.StorageBackend.
func NewRepository(ctx context.Context, cfg *config.Config, logger internal.Logger) (RowRepository, error) {
	switch cfg.StorageBackend {
	case config.BackendFile:
		return NewFileStorage(cfg.DataFile, logger)
	case config.BackendSQLite:
		return NewSQLiteStorage(cfg.SQLitePath, logger)
	case config.BackendPostgres:
		return NewPostgresStorage(ctx, cfg.PostgresDSN, logger)
	}
	return nil, fmt.Errorf("storage: unknown backend %q", cfg.StorageBackend)
}

// Open builds a locked Store on top of the configured backend.
func Open(ctx context.Context, cfg *config.Config, logger internal.Logger) (*Store, error) {
	repo, err := NewRepository(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return NewStore(repo, logger), nil
}
