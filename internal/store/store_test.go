package store_test

import (
	"testing"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestParseTaskStatus(t *testing.T) {
	tests := map[string]store.TaskStatus{
		"completed":     store.StatusCompleted,
		"COMPLETED":     store.StatusCompleted,
		" completed ":   store.StatusCompleted,
		"not-completed": store.StatusNotCompleted,
		"":              store.StatusAll,
		"all":           store.StatusAll,
		"done":          store.StatusAll,
	}

	for input, want := range tests {
		assert.Equal(t, want, store.ParseTaskStatus(input), "input %q", input)
	}
}

func TestTaskStatusString(t *testing.T) {
	assert.Equal(t, "completed", store.StatusCompleted.String())
	assert.Equal(t, "not-completed", store.StatusNotCompleted.String())
	assert.Equal(t, "all", store.StatusAll.String())
}

func TestTaskFilterMatches(t *testing.T) {
	pending := &domain.Task{Title: "Test Task 1", Description: "first"}
	done := &domain.Task{Title: "Completed Task 2", Description: "second", IsCompleted: true}

	tests := []struct {
		name   string
		filter store.TaskFilter
		task   *domain.Task
		want   bool
	}{
		{name: "no filter", filter: store.TaskFilter{}, task: pending, want: true},
		{name: "completed keeps done", filter: store.TaskFilter{Status: store.StatusCompleted}, task: done, want: true},
		{name: "completed drops pending", filter: store.TaskFilter{Status: store.StatusCompleted}, task: pending, want: false},
		{name: "not-completed keeps pending", filter: store.TaskFilter{Status: store.StatusNotCompleted}, task: pending, want: true},
		{name: "not-completed drops done", filter: store.TaskFilter{Status: store.StatusNotCompleted}, task: done, want: false},
		{name: "search is case-insensitive", filter: store.TaskFilter{Search: "task 2"}, task: done, want: true},
		{name: "search misses", filter: store.TaskFilter{Search: "task 2"}, task: pending, want: false},
		{name: "search ignores description", filter: store.TaskFilter{Search: "second"}, task: done, want: false},
		{
			name:   "status and search combined",
			filter: store.TaskFilter{Status: store.StatusCompleted, Search: "TASK"},
			task:   done,
			want:   true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.filter.Matches(tc.task))
		})
	}
}
