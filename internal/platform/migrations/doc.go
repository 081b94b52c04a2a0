// Package migrations embeds the task_items schema for every supported SQL
// dialect and applies it with goose. Versions are tracked in the
// schema_migrations table.
package migrations
