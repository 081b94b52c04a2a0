package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/store"
)

// TaskService provides task-related operations
type TaskService interface {
	// List returns all tasks ordered by id.
	List(ctx context.Context) ([]*domain.Task, error)

	// GetByID returns a single task or store.ErrTaskNotFound.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// Create validates and persists a new task. Any id on the input is
	// ignored; the stored id is written back to task.ID.
	Create(ctx context.Context, task *domain.Task) error

	// Update replaces the task identified by pathID. task.ID must equal
	// pathID, otherwise ErrIDMismatch is returned and nothing is written.
	Update(ctx context.Context, pathID int64, task *domain.Task) error

	// Delete removes a task or returns store.ErrTaskNotFound.
	Delete(ctx context.Context, id int64) error

	// Complete marks a task as completed and returns it. EndDate is set to
	// the current time only when it was empty.
	Complete(ctx context.Context, id int64) (*domain.Task, error)

	// FilteredList returns tasks matching a filterStatus of "completed" or
	// "not-completed" (anything else means all) whose title contains
	// searchQuery, case-insensitively.
	FilteredList(ctx context.Context, filterStatus, searchQuery string) ([]*domain.Task, error)
}

// Clock returns the current time.
type Clock func() time.Time

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	tasks  store.TaskStore
	now    Clock
	logger *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if the task store is nil. A nil clock means time.Now.
func NewTaskService(tasks store.TaskStore, clock Clock, logger *slog.Logger) (TaskService, error) {
	if tasks == nil {
		return nil, domain.NewValidationError("tasks", "cannot be nil", domain.ErrValidation)
	}

	if clock == nil {
		clock = time.Now
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		tasks:  tasks,
		now:    clock,
		logger: logger.With(slog.String("component", "task_service")),
	}, nil
}

// List implements TaskService.List
func (s *taskServiceImpl) List(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list tasks",
			slog.String("error", err.Error()))
		return nil, NewTaskServiceError("list", "failed to list tasks", err)
	}
	return tasks, nil
}

// GetByID implements TaskService.GetByID
func (s *taskServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("retrieving task", slog.Int64("task_id", id))

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to retrieve task",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return nil, NewTaskServiceError("get_task", "failed to retrieve task", err)
	}
	return task, nil
}

// Create implements TaskService.Create
func (s *taskServiceImpl) Create(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return ErrNilTask
	}

	log := logger.FromContextOrDefault(ctx, s.logger)

	task.ID = 0
	if err := task.Validate(); err != nil {
		log.Debug("task validation failed", slog.String("error", err.Error()))
		return err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return err
		}
		log.Error("failed to create task", slog.String("error", err.Error()))
		return NewTaskServiceError("create_task", "failed to save task", err)
	}

	log.Info("task created", slog.Int64("task_id", task.ID))
	return nil
}

// Update implements TaskService.Update
func (s *taskServiceImpl) Update(ctx context.Context, pathID int64, task *domain.Task) error {
	if task == nil {
		return ErrNilTask
	}

	log := logger.FromContextOrDefault(ctx, s.logger)

	if task.ID != pathID {
		log.Debug("task id mismatch",
			slog.Int64("path_id", pathID),
			slog.Int64("body_id", task.ID))
		return ErrIDMismatch
	}

	if err := task.Validate(); err != nil {
		log.Debug("task validation failed",
			slog.Int64("task_id", task.ID),
			slog.String("error", err.Error()))
		return err
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		switch {
		case store.IsNotFoundError(err):
			return store.ErrTaskNotFound
		case errors.Is(err, domain.ErrValidation):
			return err
		}
		log.Error("failed to update task",
			slog.Int64("task_id", task.ID),
			slog.String("error", err.Error()))
		return NewTaskServiceError("update_task", "failed to update task", err)
	}

	log.Info("task updated", slog.Int64("task_id", task.ID))
	return nil
}

// Delete implements TaskService.Delete
func (s *taskServiceImpl) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.tasks.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			return store.ErrTaskNotFound
		}
		log.Error("failed to delete task",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return NewTaskServiceError("delete_task", "failed to delete task", err)
	}

	log.Info("task deleted", slog.Int64("task_id", id))
	return nil
}

// Complete implements TaskService.Complete
func (s *taskServiceImpl) Complete(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.tasks.Complete(ctx, id, s.now())
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to complete task",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return nil, NewTaskServiceError("complete_task", "failed to complete task", err)
	}

	log.Info("task completed", slog.Int64("task_id", id))
	return task, nil
}

// FilteredList implements TaskService.FilteredList
func (s *taskServiceImpl) FilteredList(
	ctx context.Context,
	filterStatus, searchQuery string,
) ([]*domain.Task, error) {
	filter := store.TaskFilter{
		Status: store.ParseTaskStatus(filterStatus),
		Search: searchQuery,
	}

	tasks, err := s.tasks.Filter(ctx, filter)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to filter tasks",
			slog.String("status", filter.Status.String()),
			slog.String("error", err.Error()))
		return nil, NewTaskServiceError("filter_tasks", "failed to filter tasks", err)
	}
	return tasks, nil
}
