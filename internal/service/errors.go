package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/todo-api/internal/domain"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check for them with errors.Is(); the API layer maps them to HTTP
// status codes.
var (
	// ErrIDMismatch indicates the id in the request path differs from the id
	// in the task body. API layer should map this to HTTP 400 Bad Request.
	ErrIDMismatch = fmt.Errorf("%w: task id does not match request id", domain.ErrConflict)

	// ErrNilTask is returned when a nil task is passed to a write operation.
	ErrNilTask = errors.New("task cannot be nil")
)

// TaskServiceError is a custom error type for unexpected task service errors.
type TaskServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError creates a new TaskServiceError.
func NewTaskServiceError(operation, message string, err error) *TaskServiceError {
	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
