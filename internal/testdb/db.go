package testdb

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/phrazzld/todo-api/internal/ciutil"
	"github.com/phrazzld/todo-api/internal/platform/migrations"
	"github.com/phrazzld/todo-api/internal/platform/postgres"
	"github.com/phrazzld/todo-api/internal/platform/sqlite"
)

// connectTimeout bounds the initial ping against an integration database.
const connectTimeout = 5 * time.Second

// OpenSQLite returns a migrated SQLite database stored in a fresh temporary
// directory. It is closed when the test ends.
func OpenSQLite(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "todo.db"))
	if err != nil {
		t.Fatalf("failed to open sqlite test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := migrations.Up(context.Background(), db, migrations.DialectSQLite); err != nil {
		t.Fatalf("failed to migrate sqlite test database: %v", err)
	}
	return db
}

// OpenPostgres connects to the integration database, applies migrations and
// empties the task table, resetting its id sequence. The test is skipped
// when no database URL is configured. In CI a missing URL is an error.
func OpenPostgres(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := ciutil.TestDatabaseURL(nil)
	if dbURL == "" {
		if ciutil.IsCI() {
			t.Fatalf("%s or %s must be set for integration tests in CI",
				ciutil.EnvTestDatabaseURL, ciutil.EnvDatabaseURL)
		}
		t.Skipf("Skipping integration test - %s or %s environment variable required",
			ciutil.EnvTestDatabaseURL, ciutil.EnvDatabaseURL)
	}

	db, err := postgres.Open(dbURL)
	if err != nil {
		t.Fatalf("failed to open postgres test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("Database connection failed: %v", err)
	}
	if err := migrations.Up(ctx, db, migrations.DialectPostgres); err != nil {
		t.Fatalf("failed to migrate postgres test database: %v", err)
	}
	if _, err := db.ExecContext(ctx, `TRUNCATE task_items RESTART IDENTITY`); err != nil {
		t.Fatalf("failed to reset task_items: %v", err)
	}
	return db
}
