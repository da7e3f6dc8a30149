// internal/migrations/migrator.go
package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/sixmovies/actorpop/internal/logging"
)

const migrationsDir = "sql"

// Migrator applies and rolls back the embedded schema migrations against a
// pgxpool-backed database, via goose's database/sql driver shim.
type Migrator struct {
	db     *sql.DB
	logger logging.EngineLogger
}

// NewMigrator wraps pool in a database/sql connection goose can drive.
// The returned *sql.DB shares pool's underlying connections; closing it
// does not close pool.
func NewMigrator(pool *pgxpool.Pool, logger logging.EngineLogger) (*Migrator, error) {
	db := stdlib.OpenDBFromPool(pool)
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("setting goose dialect: %w", err)
	}
	goose.SetBaseFS(FS)
	return &Migrator{db: db, logger: logger}, nil
}

// Up applies every pending migration.
func (m *Migrator) Up(ctx context.Context) error {
	m.logger.Info("applying schema migrations")
	if err := goose.UpContext(ctx, m.db, migrationsDir); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	version, err := goose.GetDBVersionContext(ctx, m.db)
	if err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	m.logger.Info("schema migrations applied", zap.Int64("version", version))
	return nil
}

// Down rolls back the single most recent migration.
func (m *Migrator) Down(ctx context.Context) error {
	m.logger.Info("rolling back last migration")
	if err := goose.DownContext(ctx, m.db, migrationsDir); err != nil {
		return fmt.Errorf("rolling back migration: %w", err)
	}
	return nil
}

// Status logs the current migration state.
func (m *Migrator) Status(ctx context.Context) error {
	if err := goose.StatusContext(ctx, m.db, migrationsDir); err != nil {
		return fmt.Errorf("reading migration status: %w", err)
	}
	return nil
}
