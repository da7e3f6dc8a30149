// cmd/actorpop/bootstrap.go
package main

import (
	"context"
	"fmt"

	"github.com/sixmovies/actorpop/internal/config"
	"github.com/sixmovies/actorpop/internal/database"
	"github.com/sixmovies/actorpop/internal/logging"
)

// connected bundles the pieces every subcommand needs: loaded config, a
// connected database manager, and a logger built from that config.
type connected struct {
	cfg     *config.Config
	logger  logging.EngineLogger
	manager *database.Manager
}

// bootstrap loads configuration, builds the logger, and connects to the
// database. Callers must call close() when done.
func bootstrap(ctx context.Context, configFile string) (*connected, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	logger, err := logging.NewLogger(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}

	manager, err := database.NewManager(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("building database manager: %w", err)
	}
	if err := manager.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	return &connected{cfg: cfg, logger: logger, manager: manager}, nil
}

func (c *connected) close() {
	c.manager.Close()
	_ = c.logger.Sync()
}
