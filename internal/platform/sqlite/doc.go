// Package sqlite provides the SQLite implementation of the store.TaskStore
// interface on top of github.com/mattn/go-sqlite3. It is the zero-setup
// backend for local development and single-node deployments.
package sqlite
