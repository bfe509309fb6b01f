package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/xavierca1/agency-admin/internal/config"
	"github.com/xavierca1/agency-admin/internal/infra/database"
	"github.com/xavierca1/agency-admin/internal/logger"
)

// bootstrap loads config, installs the logger and opens the database.
// Every command starts here.
func bootstrap() (*config.Config, *sql.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if _, err := logger.Init(cfg.Logger); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.NewDBConnection(cfg.Database.Driver, cfg.Database.URL, database.PoolConfig{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.Lifetime(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("database connected", "driver", cfg.Database.Driver)
	return cfg, db, nil
}
