package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/pressly/goose/v3"
)

// TableName is the name of the table used by goose to track migrations.
const TableName = "schema_migrations"

// Dialect identifies the SQL flavour of a migration set.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite3"
)

// Supported migration commands.
const (
	CommandUp      = "up"
	CommandDown    = "down"
	CommandReset   = "reset"
	CommandStatus  = "status"
	CommandVersion = "version"
)

// ErrUnknownCommand is returned by Run for a command it does not support.
var ErrUnknownCommand = errors.New("unknown migration command")

// ErrUnsupportedDialect is returned for a dialect without embedded migrations.
var ErrUnsupportedDialect = errors.New("unsupported migration dialect")

//go:embed sql/postgres/*.sql sql/sqlite/*.sql
var embedded embed.FS

// DialectForDriver maps a configured database driver name to its migration
// dialect.
func DialectForDriver(driver string) (Dialect, error) {
	switch driver {
	case "postgres", "pgx":
		return DialectPostgres, nil
	case "sqlite", "sqlite3":
		return DialectSQLite, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedDialect, driver)
	}
}

func (d Dialect) dir() (string, error) {
	switch d {
	case DialectPostgres:
		return "sql/postgres", nil
	case DialectSQLite:
		return "sql/sqlite", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedDialect, d)
	}
}

// Up applies all pending migrations.
func Up(ctx context.Context, db *sql.DB, dialect Dialect) error {
	return Run(ctx, db, dialect, CommandUp, false)
}

// Run executes a goose command against db using the embedded migrations for
// dialect. Every log line carries a correlation id so a whole run can be
// traced.
func Run(ctx context.Context, db *sql.DB, dialect Dialect, command string, verbose bool) error {
	if db == nil {
		return errors.New("migrations: nil database")
	}

	dir, err := dialect.dir()
	if err != nil {
		return err
	}

	migrationLogger := logger.FromContext(ctx).With(
		"correlation_id", uuid.New().String(),
		"component", "migrations",
		"command", command,
		"dialect", string(dialect),
	)

	startTime := time.Now()
	migrationLogger.Info("starting migration operation",
		"operation", fmt.Sprintf("goose %s", command),
		"verbose", verbose)

	goose.SetBaseFS(embedded)
	goose.SetLogger(&slogGooseLogger{logger: migrationLogger})
	goose.SetVerbose(verbose)
	goose.SetTableName(TableName)
	if err := goose.SetDialect(string(dialect)); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	previous := currentVersion(ctx, db, migrationLogger)

	switch command {
	case CommandUp:
		err = goose.UpContext(ctx, db, dir)
	case CommandDown:
		err = goose.DownContext(ctx, db, dir)
	case CommandReset:
		err = goose.ResetContext(ctx, db, dir)
	case CommandStatus:
		err = goose.StatusContext(ctx, db, dir)
	case CommandVersion:
		err = goose.VersionContext(ctx, db, dir)
	default:
		migrationLogger.Error("unknown migration command",
			"valid_commands", []string{CommandUp, CommandDown, CommandReset, CommandStatus, CommandVersion})
		return fmt.Errorf("%w: %s (expected up, down, reset, status or version)", ErrUnknownCommand, command)
	}

	duration := time.Since(startTime)
	if err != nil {
		migrationLogger.Error("migration command failed",
			"error", err,
			"duration_ms", duration.Milliseconds())
		return fmt.Errorf("migration command '%s' failed: %w", command, err)
	}

	if command == CommandUp || command == CommandDown || command == CommandReset {
		current := currentVersion(ctx, db, migrationLogger)
		if current != previous {
			migrationLogger.Info("database schema version changed",
				"previous_version", previous,
				"new_version", current)
		} else {
			migrationLogger.Info("database schema version unchanged", "version", current)
		}
	}

	migrationLogger.Info("migration operation completed",
		"duration_ms", duration.Milliseconds())
	return nil
}

// CurrentVersion reports the latest applied migration version, 0 for a clean
// database.
func CurrentVersion(ctx context.Context, db *sql.DB, dialect Dialect) (int64, error) {
	goose.SetTableName(TableName)
	if err := goose.SetDialect(string(dialect)); err != nil {
		return 0, fmt.Errorf("failed to set dialect: %w", err)
	}
	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return 0, fmt.Errorf("failed to read migration version: %w", err)
	}
	return version, nil
}

func currentVersion(ctx context.Context, db *sql.DB, l *slog.Logger) int64 {
	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		l.Warn("failed to retrieve current migration version", "error", err)
		return -1
	}
	return version
}
