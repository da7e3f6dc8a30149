// internal/database/manager.go
package database

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/sixmovies/actorpop/internal/config"
	"github.com/sixmovies/actorpop/internal/core/ports"
	"github.com/sixmovies/actorpop/internal/logging"
	"github.com/sixmovies/actorpop/internal/resilience"
)

// Manager owns the pgxpool connection pool backing every repository
// adapter and the UnitOfWork transaction boundary.
type Manager struct {
	pool    *pgxpool.Pool
	config  *config.DatabaseConfig
	logger  logging.EngineLogger
	breaker *resilience.DatabaseBreaker

	activeConnections  int64
	connectionAttempts int64
	connectionFailures int64

	mutex sync.RWMutex
}

// NewManager constructs a Manager. Connect must be called before the pool
// is usable. Every health-check ping and transaction begin the Manager
// issues is routed through a circuit breaker (the transaction body and its
// commit are not), so a struggling Postgres instance fails fast
// instead of piling up blocked goroutines across a long-running
// recalculation run.
func NewManager(cfg *config.DatabaseConfig, logger logging.EngineLogger) (*Manager, error) {
	if cfg == nil {
		return nil, errors.New("database config cannot be nil")
	}
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &Manager{
		config:  cfg,
		logger:  logger,
		breaker: resilience.NewDatabaseBreaker("postgres", logger),
	}, nil
}

// Connect establishes the connection pool and verifies it with a ping.
func (m *Manager) Connect(ctx context.Context) error {
	m.logger.Info("establishing database connection pool",
		logging.Fields.Database(m.config.Host, m.config.Port, m.config.Database)...,
	)

	poolConfig, err := pgxpool.ParseConfig(m.buildConnectionString())
	if err != nil {
		return errors.Wrap(err, "failed to parse connection string")
	}

	poolConfig.MaxConns = int32(m.config.MaxConnections)
	poolConfig.MinConns = int32(m.config.MinConnections)
	poolConfig.MaxConnLifetime = m.config.MaxConnLifetime
	poolConfig.MaxConnIdleTime = m.config.MaxConnIdleTime
	poolConfig.HealthCheckPeriod = m.config.HealthCheckPeriod

	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		m.logger.Debug("database connection created")
		return nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, m.config.ConnectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		atomic.AddInt64(&m.connectionFailures, 1)
		return errors.Wrap(err, "failed to create connection pool")
	}

	m.mutex.Lock()
	m.pool = pool
	m.mutex.Unlock()

	if err := m.HealthCheck(ctx); err != nil {
		pool.Close()
		return errors.Wrap(err, "initial connection health check failed")
	}

	m.logger.Info("database connection pool established",
		zap.Int("max_connections", m.config.MaxConnections),
		zap.Int("min_connections", m.config.MinConnections),
	)

	return nil
}

// Pool exposes the underlying pgxpool.Pool for repository adapters.
func (m *Manager) Pool() *pgxpool.Pool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.pool
}

// HealthCheck pings the database through the circuit breaker, bounded by
// ctx.
func (m *Manager) HealthCheck(ctx context.Context) error {
	pool := m.Pool()
	if pool == nil {
		return errors.New("connection pool not initialized")
	}
	atomic.AddInt64(&m.connectionAttempts, 1)
	if err := m.breaker.Execute(ctx, pool.Ping); err != nil {
		atomic.AddInt64(&m.connectionFailures, 1)
		return err
	}
	return nil
}

// Close gracefully shuts down the pool.
func (m *Manager) Close() {
	m.mutex.Lock()
	pool := m.pool
	m.pool = nil
	m.mutex.Unlock()

	if pool != nil {
		pool.Close()
		m.logger.Info("database connection pool closed")
	}
}

func (m *Manager) buildConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		m.config.Username,
		m.config.Password,
		m.config.Host,
		m.config.Port,
		m.config.Database,
		m.config.SSLMode,
	)
}

// tx wraps a pgx.Tx to satisfy ports.Tx.
type tx struct {
	pgxTx pgx.Tx
}

func (t *tx) Exec(ctx context.Context, sql string, args ...interface{}) error {
	_, err := t.pgxTx.Exec(ctx, sql, args...)
	return err
}

// PgxTx exposes the underlying pgx.Tx for repository adapters that need
// batch or copy-from access beyond ports.Tx's single-statement Exec.
func PgxTx(t ports.Tx) (pgx.Tx, bool) {
	wrapped, ok := t.(*tx)
	if !ok {
		return nil, false
	}
	return wrapped.pgxTx, true
}

// WithTransaction implements ports.UnitOfWork: it begins a pgx transaction,
// runs fn, and commits on nil error or rolls back otherwise.
func (m *Manager) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx ports.Tx) error) error {
	pool := m.Pool()
	if pool == nil {
		return errors.New("connection pool not initialized")
	}

	var pgxTx pgx.Tx
	err := m.breaker.Execute(ctx, func(ctx context.Context) error {
		begun, beginErr := pool.Begin(ctx)
		if beginErr != nil {
			return beginErr
		}
		pgxTx = begun
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}

	defer func() {
		if r := recover(); r != nil {
			_ = pgxTx.Rollback(ctx)
			panic(r)
		}
	}()

	if err := fn(ctx, &tx{pgxTx: pgxTx}); err != nil {
		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			m.logger.Error("failed to rollback transaction", rollbackErr, zap.Error(err))
		}
		return err
	}

	if err := pgxTx.Commit(ctx); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}
	return nil
}

var _ ports.UnitOfWork = (*Manager)(nil)
