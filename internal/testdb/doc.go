// Package testdb provides database fixtures for tests: a migrated SQLite
// database in a temporary directory, and a migrated, emptied Postgres
// database for integration tests that is skipped when no URL is configured.
//
// Postgres URLs are read from TODO_TEST_DATABASE_URL, falling back to
// DATABASE_URL.
package testdb
