package store

import (
	"context"
	"strings"
	"time"

	"github.com/phrazzld/todo-api/internal/domain"
)

// TaskStatus selects tasks by completion state.
type TaskStatus int

// Supported completion filters.
const (
	StatusAll TaskStatus = iota
	StatusCompleted
	StatusNotCompleted
)

// ParseTaskStatus converts the filterStatus query value into a TaskStatus.
// Anything other than "completed" or "not-completed" means no filtering.
func ParseTaskStatus(s string) TaskStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "completed":
		return StatusCompleted
	case "not-completed":
		return StatusNotCompleted
	default:
		return StatusAll
	}
}

// String returns the query value for the status.
func (s TaskStatus) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusNotCompleted:
		return "not-completed"
	default:
		return "all"
	}
}

// TaskFilter narrows List-style queries.
// Search is matched case-insensitively as a substring of the task title.
type TaskFilter struct {
	Status TaskStatus
	Search string
}

// Matches reports whether task satisfies the filter. Adapters that filter in
// memory use it; SQL adapters translate the same rules into WHERE clauses.
func (f TaskFilter) Matches(task *domain.Task) bool {
	switch f.Status {
	case StatusCompleted:
		if !task.IsCompleted {
			return false
		}
	case StatusNotCompleted:
		if task.IsCompleted {
			return false
		}
	}

	if f.Search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(task.Title), strings.ToLower(f.Search))
}

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// List returns every task ordered by ID.
	List(ctx context.Context) ([]*domain.Task, error)

	// GetByID retrieves a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// Create validates and saves a new task, assigning task.ID.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// Update replaces every field of the task identified by task.ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete permanently removes a task.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	// Complete marks a task as completed, setting EndDate to now when it is unset,
	// and returns the updated task. The read and the write are atomic.
	// Returns ErrTaskNotFound if the task does not exist.
	Complete(ctx context.Context, id int64, now time.Time) (*domain.Task, error)

	// Filter returns the tasks matching filter, ordered by ID.
	Filter(ctx context.Context, filter TaskFilter) ([]*domain.Task, error)

	// Count returns the number of tasks matching filter.
	Count(ctx context.Context, filter TaskFilter) (int, error)
}
