package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "generic error", err: errors.New("some error"), expected: false},
		{name: "ErrNotFound", err: ErrNotFound, expected: true},
		{name: "ErrTaskNotFound", err: ErrTaskNotFound, expected: true},
		{
			name:     "wrapped ErrTaskNotFound",
			err:      fmt.Errorf("failed to find task: %w", ErrTaskNotFound),
			expected: true,
		},
		{
			name:     "StoreError wrapping ErrTaskNotFound",
			err:      NewStoreError("task", "delete", "no row", ErrTaskNotFound),
			expected: true,
		},
		{name: "ErrDuplicate", err: ErrDuplicate, expected: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsNotFoundError(tc.err))
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(ErrDuplicate))
	assert.True(t, IsDuplicateError(fmt.Errorf("insert: %w", ErrDuplicate)))
	assert.False(t, IsDuplicateError(ErrNotFound))
	assert.False(t, IsDuplicateError(nil))
}

func TestStoreError(t *testing.T) {
	cause := errors.New("connection reset")

	withCause := NewStoreError("task", "update", "exec failed", cause)
	assert.Equal(t, "update operation on task failed: exec failed: connection reset", withCause.Error())
	assert.ErrorIs(t, withCause, cause)

	withoutCause := NewStoreError("task", "list", "scan failed", nil)
	assert.Equal(t, "list operation on task failed: scan failed", withoutCause.Error())
	assert.Nil(t, withoutCause.Unwrap())
}

func TestTaskNotFoundMessage(t *testing.T) {
	assert.Equal(t, "entity not found: task", ErrTaskNotFound.Error())
}
