package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/memory"
	"github.com/phrazzld/todo-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)

func newTestTaskService(t *testing.T) (TaskService, store.TaskStore) {
	t.Helper()

	tasks := memory.NewTaskStore(nil)
	svc, err := NewTaskService(tasks, func() time.Time { return fixedNow }, nil)
	require.NoError(t, err)
	return svc, tasks
}

func TestNewTaskService(t *testing.T) {
	_, err := NewTaskService(nil, nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "tasks")

	svc, err := NewTaskService(memory.NewTaskStore(nil), nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestTaskService_CreateAssignsUniquePositiveIDs(t *testing.T) {
	svc, _ := newTestTaskService(t)
	ctx := context.Background()

	seen := make(map[int64]bool)
	for i := 0; i < 20; i++ {
		task := &domain.Task{Title: "t", Description: "d"}
		require.NoError(t, svc.Create(ctx, task))
		assert.Greater(t, task.ID, int64(0))
		assert.False(t, seen[task.ID], "id %d assigned twice", task.ID)
		seen[task.ID] = true
	}
}

func TestTaskService_CreateIgnoresClientID(t *testing.T) {
	svc, _ := newTestTaskService(t)

	task := &domain.Task{ID: 500, Title: "t", Description: "d"}
	require.NoError(t, svc.Create(context.Background(), task))
	assert.Equal(t, int64(1), task.ID)
}

func TestTaskService_CreateValidation(t *testing.T) {
	tests := []struct {
		name       string
		task       *domain.Task
		wantFields []string
	}{
		{name: "empty title", task: &domain.Task{Description: "d"}, wantFields: []string{"title"}},
		{name: "empty description", task: &domain.Task{Title: "t"}, wantFields: []string{"description"}},
		{name: "whitespace only", task: &domain.Task{Title: " ", Description: "\t"}, wantFields: []string{"title", "description"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, tasks := newTestTaskService(t)

			err := svc.Create(context.Background(), tt.task)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)

			fields := domain.ValidationFields(err)
			for _, f := range tt.wantFields {
				assert.Contains(t, fields, f)
			}

			count, err := tasks.Count(context.Background(), store.TaskFilter{})
			require.NoError(t, err)
			assert.Zero(t, count, "nothing is persisted")
		})
	}

	svc, _ := newTestTaskService(t)
	assert.ErrorIs(t, svc.Create(context.Background(), nil), ErrNilTask)
}

func TestTaskService_NonExistentIDIsNotFound(t *testing.T) {
	svc, _ := newTestTaskService(t)
	ctx := context.Background()

	_, err := svc.GetByID(ctx, 42)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	err = svc.Update(ctx, 42, &domain.Task{ID: 42, Title: "t", Description: "d"})
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, 42), store.ErrTaskNotFound)

	_, err = svc.Complete(ctx, 42)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestTaskService_Update(t *testing.T) {
	svc, _ := newTestTaskService(t)
	ctx := context.Background()

	task := &domain.Task{Title: "t", Description: "d"}
	require.NoError(t, svc.Create(ctx, task))

	t.Run("id mismatch is a conflict", func(t *testing.T) {
		err := svc.Update(ctx, task.ID, &domain.Task{ID: task.ID + 1, Title: "x", Description: "y"})
		assert.ErrorIs(t, err, ErrIDMismatch)
		assert.ErrorIs(t, err, domain.ErrConflict)

		got, err := svc.GetByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, "t", got.Title, "nothing written on mismatch")
	})

	t.Run("missing body id is a conflict", func(t *testing.T) {
		err := svc.Update(ctx, task.ID, &domain.Task{Title: "x", Description: "y"})
		assert.ErrorIs(t, err, ErrIDMismatch)
	})

	t.Run("validation", func(t *testing.T) {
		err := svc.Update(ctx, task.ID, &domain.Task{ID: task.ID, Title: "", Description: "y"})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("replaces all fields", func(t *testing.T) {
		end := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		err := svc.Update(ctx, task.ID, &domain.Task{
			ID: task.ID, Title: "new", Description: "desc", EndDate: &end, IsCompleted: true,
		})
		require.NoError(t, err)

		got, err := svc.GetByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, "new", got.Title)
		assert.Equal(t, "desc", got.Description)
		assert.True(t, got.IsCompleted)
		assert.True(t, end.Equal(*got.EndDate))
	})
}

func TestTaskService_CompleteIsIdempotent(t *testing.T) {
	svc, _ := newTestTaskService(t)
	ctx := context.Background()

	task := &domain.Task{Title: "t", Description: "d"}
	require.NoError(t, svc.Create(ctx, task))

	first, err := svc.Complete(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, first.IsCompleted)
	require.NotNil(t, first.EndDate)
	assert.True(t, fixedNow.Equal(*first.EndDate))

	second, err := svc.Complete(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, second.IsCompleted)
	assert.True(t, first.EndDate.Equal(*second.EndDate))
}

func TestTaskService_CompleteKeepsPresetEndDate(t *testing.T) {
	svc, _ := newTestTaskService(t)
	ctx := context.Background()

	due := fixedNow.Add(72 * time.Hour)
	task := &domain.Task{Title: "t", Description: "d", EndDate: &due}
	require.NoError(t, svc.Create(ctx, task))

	completed, err := svc.Complete(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, due.Equal(*completed.EndDate))
}

func TestTaskService_FilteredList(t *testing.T) {
	svc, _ := newTestTaskService(t)
	ctx := context.Background()

	for _, title := range []string{"Test Task 1", "Completed Task 2", "Test Task 3"} {
		require.NoError(t, svc.Create(ctx, &domain.Task{Title: title, Description: "d"}))
	}
	_, err := svc.Complete(ctx, 2)
	require.NoError(t, err)

	tests := []struct {
		name         string
		filterStatus string
		searchQuery  string
		want         []string
	}{
		{name: "completed only", filterStatus: "completed", want: []string{"Completed Task 2"}},
		{name: "completed with search", filterStatus: "completed", searchQuery: "task 2", want: []string{"Completed Task 2"}},
		{name: "not completed", filterStatus: "not-completed", want: []string{"Test Task 1", "Test Task 3"}},
		{name: "unknown status means all", filterStatus: "whatever", want: []string{"Test Task 1", "Completed Task 2", "Test Task 3"}},
		{name: "search only", searchQuery: "TEST", want: []string{"Test Task 1", "Test Task 3"}},
		{name: "no match", filterStatus: "not-completed", searchQuery: "task 2", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks, err := svc.FilteredList(ctx, tt.filterStatus, tt.searchQuery)
			require.NoError(t, err)

			titles := make([]string, 0, len(tasks))
			for _, task := range tasks {
				if tt.filterStatus == "completed" {
					assert.True(t, task.IsCompleted)
				}
				titles = append(titles, task.Title)
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func TestTaskService_StoreFailuresAreWrapped(t *testing.T) {
	ctx := context.Background()
	dbErr := store.NewStoreError("task", "list", "failed to query tasks", errors.New("connection refused"))

	mockStore := &MockTaskStore{}
	mockStore.On("List", mock.Anything).Return(nil, dbErr)
	mockStore.On("GetByID", mock.Anything, int64(1)).Return(nil, dbErr)
	mockStore.On("Delete", mock.Anything, int64(1)).Return(dbErr)
	mockStore.On("Complete", mock.Anything, int64(1), fixedNow).Return(nil, dbErr)
	mockStore.On("Filter", mock.Anything, store.TaskFilter{Status: store.StatusCompleted}).Return(nil, dbErr)
	mockStore.On("Create", mock.Anything, mock.Anything).Return(dbErr)
	mockStore.On("Update", mock.Anything, mock.Anything).Return(dbErr)

	svc, err := NewTaskService(mockStore, func() time.Time { return fixedNow }, nil)
	require.NoError(t, err)

	assertWrapped := func(t *testing.T, err error) {
		t.Helper()
		require.Error(t, err)
		var svcErr *TaskServiceError
		assert.ErrorAs(t, err, &svcErr)
		var storeErr *store.StoreError
		assert.ErrorAs(t, err, &storeErr)
		assert.False(t, errors.Is(err, store.ErrNotFound))
	}

	_, err = svc.List(ctx)
	assertWrapped(t, err)
	_, err = svc.GetByID(ctx, 1)
	assertWrapped(t, err)
	assertWrapped(t, svc.Delete(ctx, 1))
	_, err = svc.Complete(ctx, 1)
	assertWrapped(t, err)
	_, err = svc.FilteredList(ctx, "completed", "")
	assertWrapped(t, err)
	assertWrapped(t, svc.Create(ctx, &domain.Task{Title: "t", Description: "d"}))
	assertWrapped(t, svc.Update(ctx, 1, &domain.Task{ID: 1, Title: "t", Description: "d"}))

	mockStore.AssertExpectations(t)
}

func TestTaskServiceError(t *testing.T) {
	inner := errors.New("inner")
	err := NewTaskServiceError("get_task", "failed", inner)
	assert.Equal(t, "task service get_task failed: failed: inner", err.Error())
	assert.ErrorIs(t, err, inner)

	assert.Equal(t, "task service x failed: y", NewTaskServiceError("x", "y", nil).Error())
}
