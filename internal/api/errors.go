package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var (
		syntaxErr    *json.SyntaxError
		typeErr      *json.UnmarshalTypeError
		maxBytesErr  *http.MaxBytesError
		validateErrs validator.ValidationErrors
	)

	switch {
	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Request body errors
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge

	case errors.Is(err, shared.ErrEmptyBody),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.As(err, &syntaxErr),
		errors.As(err, &typeErr):
		return http.StatusBadRequest

	// Bad request errors, including an id that contradicts the path
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, store.ErrInvalidEntity),
		errors.As(err, &validateErrs):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var (
		syntaxErr    *json.SyntaxError
		typeErr      *json.UnmarshalTypeError
		maxBytesErr  *http.MaxBytesError
		validateErrs validator.ValidationErrors
	)

	switch {
	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"

	case errors.As(err, &maxBytesErr):
		return "Request body too large"

	case errors.As(err, &syntaxErr),
		errors.Is(err, io.ErrUnexpectedEOF):
		return "Invalid request format"

	case errors.As(err, &typeErr):
		if typeErr.Field != "" {
			return fmt.Sprintf("Invalid value for %s", typeErr.Field)
		}
		return "Invalid request format"

	case errors.Is(err, domain.ErrConflict):
		return "Task id does not match the id in the request path"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid task id"

	case errors.Is(err, domain.ErrValidation),
		errors.As(err, &validateErrs):
		return "Validation failed"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, store.ErrDuplicate):
		return "Task already exists"

	default:
		return "An unexpected error occurred"
	}
}

// ValidationFields returns field-level messages for domain validation errors
// and struct tag failures. It returns nil for any other error.
func ValidationFields(err error) map[string]string {
	var validateErrs validator.ValidationErrors
	if errors.As(err, &validateErrs) {
		fields := make(map[string]string, len(validateErrs))
		for _, fe := range validateErrs {
			fields[fe.Field()] = fmt.Sprintf("%s %s", fe.StructField(), getValidationTagMessage(fe.Tag()))
		}
		return fields
	}
	return domain.ValidationFields(err)
}

// HandleAPIError writes the response for err. Not-found errors produce an
// empty 404; validation errors carry field detail; anything unexpected gets
// defaultMsg (or a generic message) while the full error is only logged.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	status := MapErrorToStatusCode(err)

	if status == http.StatusNotFound {
		logger.FromContext(r.Context()).Debug("resource not found",
			"path", r.URL.Path,
			"method", r.Method,
			"trace_id", shared.GetTraceID(r.Context()))
		w.WriteHeader(http.StatusNotFound)
		return
	}

	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && defaultMsg != "" {
		message = defaultMsg
	}

	var opts []shared.ResponseOption
	if fields := ValidationFields(err); len(fields) > 0 {
		opts = append(opts, shared.WithFields(fields))
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}

// HandleValidationError writes a 400 response for a request that failed
// validation, whatever kind of validation error err is.
func HandleValidationError(w http.ResponseWriter, r *http.Request, err error) {
	var opts []shared.ResponseOption
	if fields := ValidationFields(err); len(fields) > 0 {
		opts = append(opts, shared.WithFields(fields))
	}
	shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Validation failed", err, opts...)
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "is required"
	case "min":
		return "is too short"
	case "max":
		return "is too long"
	case "oneof":
		return "has an invalid value"
	default:
		return "is invalid"
	}
}
