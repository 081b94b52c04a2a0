package ciutil_test

import (
	"os"
	"testing"

	"github.com/phrazzld/todo-api/internal/ciutil"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
)

func clearCIEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		ciutil.EnvCI, ciutil.EnvGitHubActions, ciutil.EnvGitLabCI, ciutil.EnvJenkinsURL, ciutil.EnvTravisCI, ciutil.EnvCircleCI,
		ciutil.EnvTestDatabaseURL, ciutil.EnvDatabaseURL, "GITHUB_RUN_ID", "GITHUB_SHA", "GITHUB_REF_NAME", "GITHUB_WORKFLOW", "GITHUB_JOB", "GITHUB_REPOSITORY",
	} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
}

func TestIsCI(t *testing.T) {
	tests := []struct {
		name string
		env  string
	}{
		{"generic", ciutil.EnvCI},
		{"github actions", ciutil.EnvGitHubActions},
		{"gitlab", ciutil.EnvGitLabCI},
		{"jenkins", ciutil.EnvJenkinsURL},
		{"travis", ciutil.EnvTravisCI},
		{"circle", ciutil.EnvCircleCI},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearCIEnv(t)
			assert.False(t, ciutil.IsCI())
			t.Setenv(tc.env, "true")
			assert.True(t, ciutil.IsCI())
		})
	}
}

func TestMetadata(t *testing.T) {
	clearCIEnv(t)
	assert.Equal(t, map[string]string{"ci": "true"}, ciutil.Metadata())

	t.Setenv("GITHUB_RUN_ID", "42")
	t.Setenv("GITHUB_SHA", "abc123")
	assert.Equal(t, map[string]string{"ci": "true", "ci_run_id": "42", "ci_commit": "abc123"}, ciutil.Metadata())
}

func TestGetEnvWithFallbacks(t *testing.T) {
	clearCIEnv(t)
	log, logBuf := logger.GetTestLogger(t)
	vars := []string{ciutil.EnvTestDatabaseURL, ciutil.EnvDatabaseURL}

	assert.Equal(t, "default", ciutil.GetEnvWithFallbacks(vars, "default", log))
	assert.Empty(t, logBuf.String())

	t.Setenv(ciutil.EnvDatabaseURL, "postgres://fallback")
	assert.Equal(t, "postgres://fallback", ciutil.GetEnvWithFallbacks(vars, "", log))
	logger.AssertLogContains(t, logBuf, "Using fallback environment variable")

	logBuf.Reset()
	t.Setenv(ciutil.EnvTestDatabaseURL, "postgres://preferred")
	assert.Equal(t, "postgres://preferred", ciutil.TestDatabaseURL(log))
	assert.Empty(t, logBuf.String())
}
