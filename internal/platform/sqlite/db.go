package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	// registers the "sqlite3" database/sql driver
	_ "github.com/mattn/go-sqlite3"
)

// DriverName is the database/sql driver registered by go-sqlite3.
const DriverName = "sqlite3"

// defaultParams are appended to a DSN unless it already sets them.
var defaultParams = []string{
	"_busy_timeout=5000",
	"_foreign_keys=on",
	"_txlock=immediate",
}

// Open opens a SQLite database at dsn, which may be a file path, a file: URI
// or ":memory:". Busy timeout, foreign keys and immediate transaction locking
// are enabled by default.
//
// An in-memory database lives inside a single connection, so the pool is
// capped at one connection for it.
func Open(dsn string) (*sql.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("sqlite: empty dsn")
	}

	db, err := sql.Open(DriverName, withDefaultParams(dsn))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if isMemory(dsn) {
		db.SetMaxOpenConns(1)
	}

	return db, nil
}

func withDefaultParams(dsn string) string {
	var missing []string
	for _, p := range defaultParams {
		key := p[:strings.Index(p, "=")+1]
		if !strings.Contains(dsn, key) {
			missing = append(missing, p)
		}
	}
	if len(missing) == 0 {
		return dsn
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(missing, "&")
}

func isMemory(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}
