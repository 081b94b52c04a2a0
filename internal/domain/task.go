package domain

import (
	"strings"
	"time"
)

// Task is a single to-do item.
//
// ID is assigned by the store when the task is created and never changes
// afterwards. EndDate is optional; it is set explicitly by the caller or
// implicitly when the task is completed.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	EndDate     *time.Time `json:"endDate"`
	IsCompleted bool       `json:"isCompleted"`
}

// NewTask creates a pending Task and validates it.
func NewTask(title, description string, endDate *time.Time) (*Task, error) {
	task := &Task{
		Title:       title,
		Description: description,
		EndDate:     endDate,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks that the required text fields are present.
// It reports every failing field at once.
func (t *Task) Validate() error {
	var errs ValidationErrors

	if strings.TrimSpace(t.Title) == "" {
		errs = append(errs, NewValidationError("title", "Title is required", ErrEmptyContent))
	}
	if strings.TrimSpace(t.Description) == "" {
		errs = append(errs, NewValidationError("description", "Description is required", ErrEmptyContent))
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Complete marks the task as done. EndDate is only set when it has no value
// yet, so completing twice keeps the first completion time.
func (t *Task) Complete(now time.Time) {
	t.IsCompleted = true
	if t.EndDate == nil {
		completedAt := now.UTC()
		t.EndDate = &completedAt
	}
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	if t.EndDate != nil {
		endDate := *t.EndDate
		c.EndDate = &endDate
	}
	return &c
}

// Statistics holds aggregate task counts.
// TotalTasks always equals CompletedTasks + NotCompletedTasks.
type Statistics struct {
	TotalTasks        int `json:"totalTasks"`
	CompletedTasks    int `json:"completedTasks"`
	NotCompletedTasks int `json:"notCompletedTasks"`
}

// NewStatistics derives the not-completed count from the other two.
func NewStatistics(total, completed int) *Statistics {
	return &Statistics{
		TotalTasks:        total,
		CompletedTasks:    completed,
		NotCompletedTasks: total - completed,
	}
}
