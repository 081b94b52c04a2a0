package service

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/memory"
	"github.com/phrazzld/todo-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewStatisticsService(t *testing.T) {
	_, err := NewStatisticsService(nil, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestStatisticsService_TotalsAddUp(t *testing.T) {
	tasks := memory.NewTaskStore(nil)
	svc, err := NewTaskService(tasks, nil, nil)
	require.NoError(t, err)
	stats, err := NewStatisticsService(tasks, nil)
	require.NoError(t, err)
	ctx := context.Background()

	check := func(wantTotal, wantCompleted int) {
		t.Helper()
		got, err := stats.GetStatistics(ctx)
		require.NoError(t, err)
		assert.Equal(t, wantTotal, got.TotalTasks)
		assert.Equal(t, wantCompleted, got.CompletedTasks)
		assert.Equal(t, got.TotalTasks, got.CompletedTasks+got.NotCompletedTasks)
	}

	check(0, 0)

	for i := 0; i < 5; i++ {
		require.NoError(t, svc.Create(ctx, &domain.Task{Title: "t", Description: "d"}))
	}
	check(5, 0)

	_, err = svc.Complete(ctx, 1)
	require.NoError(t, err)
	_, err = svc.Complete(ctx, 2)
	require.NoError(t, err)
	check(5, 2)

	require.NoError(t, svc.Delete(ctx, 1))
	check(4, 1)
}

func TestStatisticsService_StoreFailure(t *testing.T) {
	mockStore := &MockTaskStore{}
	mockStore.On("Count", mock.Anything, store.TaskFilter{Status: store.StatusAll}).Return(3, nil)
	mockStore.On("Count", mock.Anything, store.TaskFilter{Status: store.StatusCompleted}).
		Return(0, errors.New("boom"))

	stats, err := NewStatisticsService(mockStore, nil)
	require.NoError(t, err)

	_, err = stats.GetStatistics(context.Background())
	var svcErr *TaskServiceError
	assert.ErrorAs(t, err, &svcErr)
	mockStore.AssertExpectations(t)
}
