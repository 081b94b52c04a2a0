package main

import (
	"net/url"

	"github.com/phrazzld/todo-api/internal/ciutil"
)

// getExecutionMode returns a string describing the execution environment
// This helps with log filtering and diagnostic analysis
func getExecutionMode() string {
	if ciutil.IsCI() {
		return "ci"
	}
	return "local"
}

// maskDatabaseURL masks the password in a database URL for safe logging.
// SQLite paths have no user info and are returned unchanged.
func maskDatabaseURL(dbURL string) string {
	parsedURL, err := url.Parse(dbURL)
	if err != nil {
		return "invalid-url"
	}

	if parsedURL.User != nil {
		if _, hasPassword := parsedURL.User.Password(); hasPassword {
			parsedURL.User = url.UserPassword(parsedURL.User.Username(), "****")
			return parsedURL.String()
		}
	}

	return dbURL
}

// extractHostFromURL extracts the hostname from a database URL for logging.
// It returns "local" for SQLite paths, which have no host.
func extractHostFromURL(dbURL string) string {
	parsedURL, err := url.Parse(dbURL)
	if err != nil {
		return "unknown"
	}
	if parsedURL.Hostname() == "" {
		return "local"
	}
	return parsedURL.Hostname()
}
