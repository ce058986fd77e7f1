package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/yigit/placement-portal/internal/app/migrations"
	"github.com/yigit/placement-portal/internal/bootstrap"
	"github.com/yigit/placement-portal/internal/config"
	"github.com/yigit/placement-portal/internal/pkg/logger"
	"github.com/yigit/placement-portal/internal/server"
)

// @title Placement Portal API
// @version 1.0
// @description API for the campus placement portal: registration, login, job listings, students and applications

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	configPath := flag.String("config", bootstrap.DefaultConfigPath, "path to the YAML configuration file")
	flag.Parse()

	// migrate up|down runs the schema migrations and exits
	if flag.Arg(0) == "migrate" {
		if err := runMigrations(*configPath, flag.Arg(1)); err != nil {
			logger.Error().Err(err).Msg("Migration failed")
			os.Exit(1)
		}
		os.Exit(0)
	}

	srv, err := server.NewServer(*configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}

func runMigrations(configPath, direction string) error {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return err
	}

	dsn := cfg.Database.Path
	if cfg.Database.Driver == config.DriverPostgres {
		dsn = cfg.GetPostgresConnectionString()
	}
	migrator := migrations.NewMigrator(cfg.Database.Driver, dsn, lgr)

	switch direction {
	case "", "up":
		return migrator.Up()
	case "down":
		return migrator.Down()
	default:
		return fmt.Errorf("unknown migration direction %q, expected up or down", direction)
	}
}
