// Package db provides database connection management for PostgreSQL.
// It uses pgx as the database driver for better performance and features.
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"qaboard/src/infra/config"
	"qaboard/src/infra/logger"
	"qaboard/src/infra/metrics"
)

// ConnPool is the subset of *pgxpool.Pool the gateway relies on.
type ConnPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// Querier runs statements either on the pool or inside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Postgres wraps a pgx connection pool with helper methods.
type Postgres struct {
	Pool ConnPool
	log  *slog.Logger
}

// New creates a new PostgreSQL connection pool.
// It validates the connection by pinging the database.
func New(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*Postgres, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	poolCfg.MinConns = int32(cfg.MaxIdleConns)
	poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("database connection established",
		"host", cfg.Host,
		"port", cfg.Port,
		"database", cfg.Name,
		"max_conns", cfg.MaxOpenConns,
	)

	return NewWithPool(pool, log), nil
}

// NewWithPool wraps an existing pool. Tests use it with a mock pool.
func NewWithPool(pool ConnPool, log *slog.Logger) *Postgres {
	return &Postgres{
		Pool: pool,
		log:  log,
	}
}

// Close closes the connection pool.
// Call this during graceful shutdown.
func (p *Postgres) Close() {
	if p.Pool != nil {
		p.Pool.Close()
		logger.Info(p.log, "database connection closed")
	}
}

// Health checks if the database is reachable.
func (p *Postgres) Health(ctx context.Context) error {
	return p.Pool.Ping(ctx)
}

// Exec runs a single statement on a pooled connection.
func (p *Postgres) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return p.Pool.Exec(ctx, sql, args...)
}

// Query runs a single statement that returns rows.
func (p *Postgres) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return p.Pool.Query(ctx, sql, args...)
}

// QueryRow runs a single statement that returns at most one row.
func (p *Postgres) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return p.Pool.QueryRow(ctx, sql, args...)
}

// WithTx runs fn inside a transaction on a dedicated connection.
//
// The transaction commits only if fn returns nil. An error or panic from fn
// rolls back every statement fn issued; a panic keeps propagating after the
// rollback. The connection returns to the pool on every path, including
// cancellation of ctx.
func (p *Postgres) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	tx, err := p.Pool.Begin(ctx)
	if err != nil {
		metrics.StorageTransactions.WithLabelValues(metrics.TxBeginError).Inc()
		return fmt.Errorf("begin transaction: %w", err)
	}

	finished := false
	defer func() {
		if finished {
			return
		}
		// Rollback must still reach the server when ctx is already cancelled,
		// otherwise the connection is not released cleanly.
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			logger.Error(p.log, "transaction rollback failed", "err", rbErr)
		}
		metrics.StorageTransactions.WithLabelValues(metrics.TxRollback).Inc()
	}()

	if err := fn(tx); err != nil {
		logger.Debug(p.log, "transaction rolled back", "err", err)
		return err
	}

	// A failed commit leaves the transaction closed; pgx has already
	// discarded it, so there is nothing left to roll back.
	finished = true
	if err := tx.Commit(ctx); err != nil {
		metrics.StorageTransactions.WithLabelValues(metrics.TxCommitError).Inc()
		return fmt.Errorf("commit transaction: %w", err)
	}
	metrics.StorageTransactions.WithLabelValues(metrics.TxCommit).Inc()
	return nil
}
