package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/store"
)

// StatisticsService provides aggregate task counts
type StatisticsService interface {
	// GetStatistics returns total, completed and not-completed counts.
	GetStatistics(ctx context.Context) (*domain.Statistics, error)
}

type statisticsServiceImpl struct {
	tasks  store.TaskStore
	logger *slog.Logger
}

// NewStatisticsService creates a new StatisticsService.
// It returns an error if the task store is nil.
func NewStatisticsService(tasks store.TaskStore, logger *slog.Logger) (StatisticsService, error) {
	if tasks == nil {
		return nil, domain.NewValidationError("tasks", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &statisticsServiceImpl{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "statistics_service")),
	}, nil
}

// GetStatistics implements StatisticsService.GetStatistics
// The not-completed count is derived so the three numbers always add up.
func (s *statisticsServiceImpl) GetStatistics(ctx context.Context) (*domain.Statistics, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	total, err := s.tasks.Count(ctx, store.TaskFilter{Status: store.StatusAll})
	if err != nil {
		log.Error("failed to count tasks", slog.String("error", err.Error()))
		return nil, NewTaskServiceError("statistics", "failed to count tasks", err)
	}

	completed, err := s.tasks.Count(ctx, store.TaskFilter{Status: store.StatusCompleted})
	if err != nil {
		log.Error("failed to count completed tasks", slog.String("error", err.Error()))
		return nil, NewTaskServiceError("statistics", "failed to count completed tasks", err)
	}

	stats := domain.NewStatistics(total, completed)
	log.Debug("computed task statistics",
		slog.Int("total", stats.TotalTasks),
		slog.Int("completed", stats.CompletedTasks))
	return stats, nil
}
