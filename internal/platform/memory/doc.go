// Package memory provides an in-process implementation of store.TaskStore.
// It backs the "memory" database driver and the service and router tests.
// Data does not survive a restart.
package memory
