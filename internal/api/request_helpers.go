package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/todo-api/internal/domain"
)

// getPathID extracts a positive integer id from the URL path parameters.
//
// Returns a ValidationError wrapping domain.ErrInvalidID when the parameter
// is missing, not a number, or not positive.
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrInvalidID)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// locationFor builds the Location header for a newly created resource
// relative to the collection path it was posted to.
func locationFor(r *http.Request, id int64) string {
	path := r.URL.Path
	for len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}
	return path + "/" + strconv.FormatInt(id, 10)
}
