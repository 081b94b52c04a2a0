package api

import (
	"time"

	"github.com/phrazzld/todo-api/internal/domain"
)

// TaskRequest defines the payload for creating or replacing a task.
// JSON keys are matched case-insensitively, so PascalCase clients work too.
type TaskRequest struct {
	// ID is ignored on create. On update it must equal the id in the path.
	ID          int64      `json:"id"`
	Title       string     `json:"title"       validate:"required"`
	Description string     `json:"description" validate:"required"`
	EndDate     *time.Time `json:"endDate"`
	IsCompleted bool       `json:"isCompleted"`
}

// ToDomain converts the request into a domain Task.
func (req TaskRequest) ToDomain() *domain.Task {
	return &domain.Task{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		EndDate:     req.EndDate,
		IsCompleted: req.IsCompleted,
	}
}

// TaskResponse represents a task returned to clients.
type TaskResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	EndDate     *time.Time `json:"endDate"`
	IsCompleted bool       `json:"isCompleted"`
}

// StatisticsResponse holds aggregate task counts.
type StatisticsResponse struct {
	TotalTasks        int `json:"totalTasks"`
	CompletedTasks    int `json:"completedTasks"`
	NotCompletedTasks int `json:"notCompletedTasks"`
}

func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		EndDate:     task.EndDate,
		IsCompleted: task.IsCompleted,
	}
}

// tasksToResponse never returns nil so an empty list encodes as [].
func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, taskToResponse(task))
	}
	return out
}

func statisticsToResponse(stats *domain.Statistics) StatisticsResponse {
	return StatisticsResponse{
		TotalTasks:        stats.TotalTasks,
		CompletedTasks:    stats.CompletedTasks,
		NotCompletedTasks: stats.NotCompletedTasks,
	}
}
