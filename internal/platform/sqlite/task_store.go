package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/store"
)

const taskColumns = `id, title, description, end_date, is_completed`

// SQLiteTaskStore implements the store.TaskStore interface
// using a SQLite database as the storage backend.
type SQLiteTaskStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteTaskStore creates a new SQLite implementation of the TaskStore interface.
// If logger is nil, a default logger will be used.
func NewSQLiteTaskStore(db *sql.DB, logger *slog.Logger) *SQLiteTaskStore {
	if db == nil {
		// ALLOW-PANIC: constructor invariant, wiring bug if reached
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &SQLiteTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store"), slog.String("driver", "sqlite")),
	}
}

var _ store.TaskStore = (*SQLiteTaskStore)(nil)

// List implements store.TaskStore.List
func (s *SQLiteTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	return s.Filter(ctx, store.TaskFilter{})
}

// GetByID implements store.TaskStore.GetByID
func (s *SQLiteTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("retrieving task by ID", slog.Int64("task_id", id))

	task, err := getTask(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return nil, err
		}
		log.Error("failed to get task",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "get", "failed to query task", MapError(err))
	}
	return task, nil
}

// Create implements store.TaskStore.Create
func (s *SQLiteTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create", slog.String("error", err.Error()))
		return err
	}

	result, err := s.db.ExecContext(
		ctx,
		`INSERT INTO task_items (title, description, end_date, is_completed) VALUES (?, ?, ?, ?)`,
		task.Title,
		task.Description,
		nullTime(task.EndDate),
		task.IsCompleted,
	)
	if err != nil {
		log.Error("failed to create task", slog.String("error", err.Error()))
		return store.NewStoreError("task", "create", "failed to insert task", MapError(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return store.NewStoreError("task", "create", "failed to read generated id", err)
	}
	task.ID = id

	log.Info("task created successfully", slog.Int64("task_id", task.ID))
	return nil
}

// Update implements store.TaskStore.Update
func (s *SQLiteTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.Int64("task_id", task.ID),
			slog.String("error", err.Error()))
		return err
	}

	if err := updateTask(ctx, s.db, task); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return err
		}
		log.Error("failed to update task",
			slog.Int64("task_id", task.ID),
			slog.String("error", err.Error()))
		return store.NewStoreError("task", "update", "failed to update task", MapError(err))
	}

	log.Info("task updated successfully", slog.Int64("task_id", task.ID))
	return nil
}

// Delete implements store.TaskStore.Delete
func (s *SQLiteTaskStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM task_items WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return store.NewStoreError("task", "delete", "failed to delete task", MapError(err))
	}

	if err := checkRowsAffected(result); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return err
		}
		return store.NewStoreError("task", "delete", "failed to delete task", err)
	}

	log.Info("task deleted successfully", slog.Int64("task_id", id))
	return nil
}

// Complete implements store.TaskStore.Complete
// Transactions start with BEGIN IMMEDIATE, so the read and the write hold
// the database write lock together.
func (s *SQLiteTaskStore) Complete(ctx context.Context, id int64, now time.Time) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var completed *domain.Task
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		task, err := getTask(ctx, tx, id)
		if err != nil {
			return err
		}

		task.Complete(now)
		if err := updateTask(ctx, tx, task); err != nil {
			return err
		}

		completed = task
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return nil, err
		}
		log.Error("failed to complete task",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "complete", "failed to complete task", MapError(err))
	}

	log.Info("task completed", slog.Int64("task_id", id))
	return completed, nil
}

// Filter implements store.TaskStore.Filter
func (s *SQLiteTaskStore) Filter(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	where, args := buildWhere(filter)
	rows, err := s.db.QueryContext(ctx, `SELECT `+taskColumns+` FROM task_items`+where+` ORDER BY id ASC`, args...)
	if err != nil {
		log.Error("failed to query tasks",
			slog.String("status", filter.Status.String()),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "list", "failed to query tasks", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, store.NewStoreError("task", "list", "failed to scan task row", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("task", "list", "error iterating task rows", err)
	}

	return tasks, nil
}

// Count implements store.TaskStore.Count
func (s *SQLiteTaskStore) Count(ctx context.Context, filter store.TaskFilter) (int, error) {
	where, args := buildWhere(filter)

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM task_items`+where, args...).Scan(&count); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to count tasks",
			slog.String("status", filter.Status.String()),
			slog.String("error", err.Error()))
		return 0, store.NewStoreError("task", "count", "failed to count tasks", MapError(err))
	}
	return count, nil
}

// buildWhere renders filter as a WHERE clause. lower() in SQLite only folds
// ASCII letters.
func buildWhere(filter store.TaskFilter) (string, []any) {
	var conditions []string
	var args []any

	switch filter.Status {
	case store.StatusCompleted:
		conditions = append(conditions, "is_completed = 1")
	case store.StatusNotCompleted:
		conditions = append(conditions, "is_completed = 0")
	}

	if filter.Search != "" {
		conditions = append(conditions, "instr(lower(title), lower(?)) > 0")
		args = append(args, filter.Search)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func getTask(ctx context.Context, db store.DBTX, id int64) (*domain.Task, error) {
	task, err := scanTask(db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM task_items WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func updateTask(ctx context.Context, db store.DBTX, task *domain.Task) error {
	result, err := db.ExecContext(
		ctx,
		`UPDATE task_items SET title = ?, description = ?, end_date = ?, is_completed = ? WHERE id = ?`,
		task.Title,
		task.Description,
		nullTime(task.EndDate),
		task.IsCompleted,
		task.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(result)
}

func checkRowsAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrTaskNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var endDate sql.NullTime

	if err := row.Scan(&task.ID, &task.Title, &task.Description, &endDate, &task.IsCompleted); err != nil {
		return nil, err
	}

	if endDate.Valid {
		t := endDate.Time.UTC()
		task.EndDate = &t
	}
	return &task, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
