package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/store"
)

const taskColumns = `id, title, description, end_date, is_completed`

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db *sql.DB, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		// ALLOW-PANIC: constructor invariant, wiring bug if reached
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store"), slog.String("driver", "postgres")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// List implements store.TaskStore.List
func (s *PostgresTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	return s.Filter(ctx, store.TaskFilter{})
}

// GetByID implements store.TaskStore.GetByID
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("retrieving task by ID", slog.Int64("task_id", id))

	task, err := getTask(ctx, s.db, id, false)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			log.Debug("task not found", slog.Int64("task_id", id))
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
// It validates the task, inserts it and sets task.ID to the generated key.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create", slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO task_items (title, description, end_date, is_completed)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		task.Title,
		task.Description,
		nullTime(task.EndDate),
		task.IsCompleted,
	).Scan(&task.ID)
	if err != nil {
		log.Error("failed to create task", slog.String("error", err.Error()))
		return store.NewStoreError("task", "create", "failed to insert task", MapError(err))
	}

	log.Info("task created successfully", slog.Int64("task_id", task.ID))
	return nil
}

// Update implements store.TaskStore.Update
// A single UPDATE is issued; zero affected rows means the task does not exist.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.Int64("task_id", task.ID),
			slog.String("error", err.Error()))
		return err
	}

	if err := updateTask(ctx, s.db, task); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			log.Debug("task not found for update", slog.Int64("task_id", task.ID))
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
func (s *PostgresTaskStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM task_items WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return store.NewStoreError("task", "delete", "failed to delete task", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			log.Debug("task not found for delete", slog.Int64("task_id", id))
			return err
		}
		return store.NewStoreError("task", "delete", "failed to delete task", err)
	}

	log.Info("task deleted successfully", slog.Int64("task_id", id))
	return nil
}

// Complete implements store.TaskStore.Complete
// The row is locked for the duration of the read-modify-write.
func (s *PostgresTaskStore) Complete(ctx context.Context, id int64, now time.Time) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var completed *domain.Task
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		task, err := getTask(ctx, tx, id, true)
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
			log.Debug("task not found for complete", slog.Int64("task_id", id))
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
func (s *PostgresTaskStore) Filter(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	where, args := buildWhere(filter)
	query := `SELECT ` + taskColumns + ` FROM task_items` + where + ` ORDER BY id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
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
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("task", "list", "failed to scan task row", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "list", "error iterating task rows", err)
	}

	return tasks, nil
}

// Count implements store.TaskStore.Count
func (s *PostgresTaskStore) Count(ctx context.Context, filter store.TaskFilter) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	where, args := buildWhere(filter)

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM task_items`+where, args...).Scan(&count); err != nil {
		log.Error("failed to count tasks",
			slog.String("status", filter.Status.String()),
			slog.String("error", err.Error()))
		return 0, store.NewStoreError("task", "count", "failed to count tasks", MapError(err))
	}

	return count, nil
}

// buildWhere renders filter as a WHERE clause with positional parameters.
func buildWhere(filter store.TaskFilter) (string, []any) {
	var conditions []string
	var args []any

	switch filter.Status {
	case store.StatusCompleted:
		conditions = append(conditions, "is_completed = TRUE")
	case store.StatusNotCompleted:
		conditions = append(conditions, "is_completed = FALSE")
	}

	if filter.Search != "" {
		args = append(args, filter.Search)
		conditions = append(conditions, fmt.Sprintf("strpos(lower(title), lower($%d)) > 0", len(args)))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func getTask(ctx context.Context, db store.DBTX, id int64, forUpdate bool) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM task_items WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	task, err := scanTask(db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func updateTask(ctx context.Context, db store.DBTX, task *domain.Task) error {
	query := `
		UPDATE task_items
		SET title = $1, description = $2, end_date = $3, is_completed = $4
		WHERE id = $5
	`
	result, err := db.ExecContext(
		ctx,
		query,
		task.Title,
		task.Description,
		nullTime(task.EndDate),
		task.IsCompleted,
		task.ID,
	)
	if err != nil {
		return err
	}
	return CheckRowsAffected(result, store.ErrTaskNotFound)
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
