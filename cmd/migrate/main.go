package main

import (
	"errors"
	"flag"
	"fmt"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/liamcoop/erpassistant/internal/config"
	"github.com/liamcoop/erpassistant/internal/logger"
)

func main() {
	var databaseURL string
	var migrationsPath string
	var command string
	var steps int

	flag.StringVar(&databaseURL, "database", "", "Database URL (defaults to DATABASE_URL)")
	flag.StringVar(&migrationsPath, "path", "migrations", "Path to migrations directory")
	flag.StringVar(&command, "command", "up", "Migration command: up, down, steps, version, force")
	flag.IntVar(&steps, "steps", 0, "Number of migrations to apply (negative rolls back), for -command steps")
	flag.Parse()

	// Fall back to the service configuration (.env, config.yaml, environment)
	if databaseURL == "" {
		cfg, err := config.Load()
		if err != nil {
			logger.Fatal("failed to load configuration", "error", err)
		}
		databaseURL = cfg.DatabaseURL
	}

	if databaseURL == "" {
		logger.Fatal("database URL is required; use -database or DATABASE_URL")
	}

	logger.Info("connecting to database", "migrations", migrationsPath)

	m, err := migrate.New(
		fmt.Sprintf("file://%s", migrationsPath),
		databaseURL,
	)
	if err != nil {
		logger.Fatal("failed to create migration instance", "error", err)
	}
	defer m.Close()

	switch command {
	case "up":
		logger.Info("running migrations up")
		report(m.Up(), "migrations completed")

	case "down":
		logger.Info("rolling back migrations")
		report(m.Down(), "rollback completed")

	case "steps":
		if steps == 0 {
			logger.Fatal("steps command requires a non-zero -steps value")
		}
		logger.Info("migrating by steps", "steps", steps)
		report(m.Steps(steps), "steps applied")

	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			logger.Info("no migrations applied")
			return
		}
		if err != nil {
			logger.Fatal("failed to get version", "error", err)
		}
		logger.Info("current version", "version", version, "dirty", dirty)

	case "force":
		if flag.NArg() < 1 {
			logger.Fatal("force command requires a version number: -command force <version>")
		}
		version, err := strconv.Atoi(flag.Arg(0))
		if err != nil {
			logger.Fatal("invalid version number", "error", err)
		}
		if err := m.Force(version); err != nil {
			logger.Fatal("failed to force version", "error", err)
		}
		logger.Info("forced version", "version", version)

	default:
		logger.Fatal("unknown command (use: up, down, steps, version, force)", "command", command)
	}
}

// report logs the outcome of a migration run, treating ErrNoChange as success
func report(err error, done string) {
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("no migrations to run, database is up to date")
	case err != nil:
		logger.Fatal("migration failed", "error", err)
	default:
		logger.Info(done)
	}
}
