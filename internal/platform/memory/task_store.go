package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/store"
)

// TaskStore implements store.TaskStore with a map guarded by a RWMutex.
// Tasks are copied on the way in and out so callers never share state with
// the store.
type TaskStore struct {
	mu     sync.RWMutex
	tasks  map[int64]*domain.Task
	lastID int64
	logger *slog.Logger
}

// NewTaskStore creates an empty in-memory task store.
// If logger is nil, a default logger will be used.
func NewTaskStore(logger *slog.Logger) *TaskStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStore{
		tasks:  make(map[int64]*domain.Task),
		logger: logger.With(slog.String("component", "task_store"), slog.String("driver", "memory")),
	}
}

var _ store.TaskStore = (*TaskStore)(nil)

// List implements store.TaskStore.List
func (s *TaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	return s.Filter(ctx, store.TaskFilter{})
}

// GetByID implements store.TaskStore.GetByID
func (s *TaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return task.Clone(), nil
}

// Create implements store.TaskStore.Create
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := task.Validate(); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("task validation failed during create",
			slog.String("error", err.Error()))
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	task.ID = s.lastID
	s.tasks[task.ID] = task.Clone()

	logger.FromContextOrDefault(ctx, s.logger).Info("task created successfully",
		slog.Int64("task_id", task.ID))
	return nil
}

// Update implements store.TaskStore.Update
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := task.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[task.ID]; !ok {
		return store.ErrTaskNotFound
	}
	s.tasks[task.ID] = task.Clone()
	return nil
}

// Delete implements store.TaskStore.Delete
func (s *TaskStore) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(s.tasks, id)
	return nil
}

// Complete implements store.TaskStore.Complete
func (s *TaskStore) Complete(ctx context.Context, id int64, now time.Time) (*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	task.Complete(now)
	return task.Clone(), nil
}

// Filter implements store.TaskStore.Filter
func (s *TaskStore) Filter(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]*domain.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		if filter.Matches(task) {
			tasks = append(tasks, task.Clone())
		}
	}

	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

// Count implements store.TaskStore.Count
func (s *TaskStore) Count(ctx context.Context, filter store.TaskFilter) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, task := range s.tasks {
		if filter.Matches(task) {
			count++
		}
	}
	return count, nil
}
