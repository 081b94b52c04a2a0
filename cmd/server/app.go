package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/todo-api/internal/config"
	"github.com/phrazzld/todo-api/internal/platform/memory"
	"github.com/phrazzld/todo-api/internal/platform/postgres"
	"github.com/phrazzld/todo-api/internal/platform/sqlite"
	"github.com/phrazzld/todo-api/internal/service"
	"github.com/phrazzld/todo-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	// db is nil for the memory driver.
	db *sql.DB

	taskStore store.TaskStore

	taskService       service.TaskService
	statisticsService service.StatisticsService
}

// newApplication creates a new application instance with all dependencies initialized.
// The database, if any, must already be open and migrated.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.taskStore, err = newTaskStore(cfg, db, logger)
	if err != nil {
		return nil, err
	}

	app.taskService, err = service.NewTaskService(app.taskStore, nil, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	app.statisticsService, err = service.NewStatisticsService(app.taskStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create statistics service: %w", err)
	}

	logger.Info("Application initialized successfully", "database_driver", cfg.Database.Driver)
	return app, nil
}

// newTaskStore picks the store adapter for the configured driver.
func newTaskStore(cfg *config.Config, db *sql.DB, logger *slog.Logger) (store.TaskStore, error) {
	switch cfg.Database.Driver {
	case config.DriverMemory:
		return memory.NewTaskStore(logger), nil
	case config.DriverSQLite, config.DriverPostgres:
		if db == nil {
			return nil, fmt.Errorf("driver %q requires a database connection", cfg.Database.Driver)
		}
		if cfg.Database.Driver == config.DriverSQLite {
			return sqlite.NewSQLiteTaskStore(db, logger), nil
		}
		return postgres.NewPostgresTaskStore(db, logger), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	closeDatabase(app.db, app.logger)
}
