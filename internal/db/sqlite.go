package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/placement-portal/internal/config"
	_ "modernc.org/sqlite"
)

// NewSQLiteDB opens a SQLite database at the given path with WAL and foreign keys enabled
func NewSQLiteDB(ctx context.Context, path string, logger zerolog.Logger) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// a single connection keeps the pragmas below in effect for every query
	sqlDB.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := sqlDB.ExecContext(ctx, pragma); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Info().Str("path", path).Msg("Opened SQLite database")

	return &DB{
		SQL:    sqlDB,
		Driver: config.DriverSQLite,
		DSN:    path,
		logger: logger,
	}, nil
}
