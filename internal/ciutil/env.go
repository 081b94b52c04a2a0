package ciutil

import (
	"log/slog"
	"os"
)

// Common environment variable names used across the codebase.
const (
	// CI environment detection variables
	EnvCI            = "CI"
	EnvGitHubActions = "GITHUB_ACTIONS"
	EnvGitLabCI      = "GITLAB_CI"
	EnvJenkinsURL    = "JENKINS_URL"
	EnvTravisCI      = "TRAVIS"
	EnvCircleCI      = "CIRCLECI"

	// Database connection environment variables used by integration tests
	EnvTestDatabaseURL = "TODO_TEST_DATABASE_URL" // Preferred
	EnvDatabaseURL     = "DATABASE_URL"
)

// metadataEnvVars maps CI variables copied onto log records to their
// attribute names.
var metadataEnvVars = map[string]string{
	"GITHUB_RUN_ID":     "ci_run_id",
	"GITHUB_SHA":        "ci_commit",
	"GITHUB_REF_NAME":   "ci_branch",
	"GITHUB_WORKFLOW":   "ci_workflow",
	"GITHUB_JOB":        "ci_job",
	"GITHUB_REPOSITORY": "ci_repository",
}

// IsCI returns true if the current environment is a CI environment.
// It checks for common CI environment variables across different CI providers.
func IsCI() bool {
	return os.Getenv(EnvCI) != "" ||
		os.Getenv(EnvGitHubActions) != "" ||
		os.Getenv(EnvGitLabCI) != "" ||
		os.Getenv(EnvJenkinsURL) != "" ||
		os.Getenv(EnvTravisCI) != "" ||
		os.Getenv(EnvCircleCI) != ""
}

// Metadata returns the CI attributes that are set in the environment,
// always including "ci": "true".
func Metadata() map[string]string {
	metadata := map[string]string{"ci": "true"}
	for env, key := range metadataEnvVars {
		if v := os.Getenv(env); v != "" {
			metadata[key] = v
		}
	}
	return metadata
}

// GetEnvWithFallbacks returns the value of the first non-empty environment variable
// from the provided list. If no environment variables are set, it returns the defaultValue.
// Using anything but the first name logs a warning when logger is non-nil.
func GetEnvWithFallbacks(envVars []string, defaultValue string, logger *slog.Logger) string {
	for i, envVar := range envVars {
		if val := os.Getenv(envVar); val != "" {
			if i > 0 && logger != nil {
				logger.Warn("Using fallback environment variable",
					"used_var", envVar,
					"preferred_var", envVars[0])
			}
			return val
		}
	}
	return defaultValue
}

// TestDatabaseURL returns the Postgres URL integration tests should use,
// or "" when none is configured.
func TestDatabaseURL(logger *slog.Logger) string {
	return GetEnvWithFallbacks([]string{EnvTestDatabaseURL, EnvDatabaseURL}, "", logger)
}
