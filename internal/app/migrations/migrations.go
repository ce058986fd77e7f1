// Package migrations embeds the schema for each supported dialect and applies
// it with golang-migrate.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
	"github.com/yigit/placement-portal/internal/config"
	_ "modernc.org/sqlite"
)

//go:embed postgres/*.sql sqlite/*.sql
var migrationFS embed.FS

// Migrator applies the embedded migrations on a dedicated connection.
// golang-migrate closes the handle it is given, so the application pool is
// never passed in.
type Migrator struct {
	driver string
	dsn    string
	logger zerolog.Logger
}

// NewMigrator creates a migrator for driver (postgres or sqlite) and its DSN
func NewMigrator(driver, dsn string, logger zerolog.Logger) *Migrator {
	return &Migrator{driver: driver, dsn: dsn, logger: logger}
}

func (m *Migrator) open() (*migrate.Migrate, error) {
	var (
		sqlDriver string
		dir       string
	)
	switch m.driver {
	case config.DriverPostgres:
		sqlDriver, dir = "pgx/v5", "postgres"
	case config.DriverSQLite:
		sqlDriver, dir = "sqlite", "sqlite"
	default:
		return nil, fmt.Errorf("unsupported migration driver %q", m.driver)
	}

	source, err := iofs.New(migrationFS, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	db, err := sql.Open(sqlDriver, m.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open migration connection: %w", err)
	}

	var instance database.Driver
	if m.driver == config.DriverPostgres {
		instance, err = migratepgx.WithInstance(db, &migratepgx.Config{})
	} else {
		instance, err = migratesqlite.WithInstance(db, &migratesqlite.Config{})
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	mg, err := migrate.NewWithInstance("iofs", source, m.driver, instance)
	if err != nil {
		instance.Close()
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}
	return mg, nil
}

// Up applies every pending migration
func (m *Migrator) Up() error {
	mg, err := m.open()
	if err != nil {
		return err
	}
	defer m.close(mg)

	if err := mg.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, err := mg.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read migration version: %w", err)
	}
	m.logger.Info().Uint("version", version).Bool("dirty", dirty).Str("driver", m.driver).Msg("Migrations applied")
	return nil
}

// Down rolls back every migration
func (m *Migrator) Down() error {
	mg, err := m.open()
	if err != nil {
		return err
	}
	defer m.close(mg)

	if err := mg.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}
	return nil
}

func (m *Migrator) close(mg *migrate.Migrate) {
	srcErr, dbErr := mg.Close()
	if srcErr != nil {
		m.logger.Warn().Err(srcErr).Msg("Failed to close migration source")
	}
	if dbErr != nil {
		m.logger.Warn().Err(dbErr).Msg("Failed to close migration connection")
	}
}
