// Package postgres provides the PostgreSQL implementation of the
// store.TaskStore interface. It handles query construction, error mapping
// from pgx error codes and data mapping between domain.Task and the
// task_items table.
package postgres
