package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/todo-api/internal/config"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/platform/migrations"
)

// handleMigrations runs a goose command against the configured database.
// It's used both for the -migrate flag and for migrating on startup.
func handleMigrations(
	ctx context.Context,
	cfg *config.Config,
	db *sql.DB,
	command string,
	verbose bool,
	log *slog.Logger,
) error {
	if db == nil {
		return fmt.Errorf("driver %q has no database to migrate", cfg.Database.Driver)
	}

	dialect, err := migrations.DialectForDriver(cfg.Database.Driver)
	if err != nil {
		return err
	}

	log.Info("Executing migrations",
		"command", command,
		"verbose", verbose,
		"mode", getExecutionMode(),
		"database_host", extractHostFromURL(cfg.Database.URL))

	if err := migrations.Run(logger.WithLogger(ctx, log), db, dialect, command, verbose); err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}
	return nil
}
