// Package db opens the relational store behind the repositories. PostgreSQL
// is reached through a pgx pool exposed as *sql.DB so that the same squirrel
// queries also run against the embedded SQLite driver.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/yigit/placement-portal/internal/config"
)

// DB wraps the database/sql handle together with its SQL dialect
type DB struct {
	SQL    *sql.DB
	Driver string
	// DSN is reused by the migrator, which needs a connection of its own
	DSN string

	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// Querier is satisfied by both *sql.DB and *sql.Tx
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Open connects to the configured driver
func Open(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*DB, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		return NewPostgresDB(ctx, cfg, logger)
	case config.DriverSQLite:
		return NewSQLiteDB(ctx, cfg.Database.Path, logger)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// Builder returns a squirrel statement builder using the dialect's placeholders
func (db *DB) Builder() sq.StatementBuilderType {
	if db.Driver == config.DriverPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// Ping verifies the connection is alive
func (db *DB) Ping(ctx context.Context) error {
	return db.SQL.PingContext(ctx)
}

// Close releases the handle and, for postgres, the underlying pool
func (db *DB) Close() {
	if db.SQL != nil {
		if err := db.SQL.Close(); err != nil {
			db.logger.Warn().Err(err).Msg("Failed to close database handle")
		}
	}
	if db.pool != nil {
		db.pool.Close()
	}
}

// TransactionFn is a function that executes within a transaction
type TransactionFn func(ctx context.Context, tx Querier) error

// WithTransaction runs a function within a transaction
func (db *DB) WithTransaction(ctx context.Context, fn TransactionFn) error {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
	}

	tx, err := db.SQL.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			db.logger.Error().Err(rbErr).Msg("Failed to rollback transaction")
			return fmt.Errorf("error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
