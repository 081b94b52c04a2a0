package logger_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	for _, key := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "TRAVIS", "CIRCLECI"} {
		t.Setenv(key, "")
	}

	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	tests := []struct {
		name       string
		level      string
		debugShown bool
		infoShown  bool
	}{
		{name: "debug", level: "debug", debugShown: true, infoShown: true},
		{name: "info", level: "info", debugShown: false, infoShown: true},
		{name: "upper case", level: "WARN", debugShown: false, infoShown: false},
		{name: "invalid falls back to info", level: "verbose", debugShown: false, infoShown: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf := &logger.TestLogBuffer{}

			l, err := logger.Setup(logger.LoggerConfig{Level: tc.level, Output: buf})
			require.NoError(t, err)
			require.NotNil(t, l)
			assert.Same(t, l, slog.Default(), "Setup should install the default logger")

			l.Debug("debug message")
			l.Info("info message")

			assert.Equal(t, tc.debugShown, containsMsg(t, buf, "debug message"))
			assert.Equal(t, tc.infoShown, containsMsg(t, buf, "info message"))
		})
	}
}

func TestSetup_CIHandler(t *testing.T) {
	t.Setenv("CI", "true")
	t.Setenv("GITHUB_RUN_ID", "12345")

	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	buf := &logger.TestLogBuffer{}
	l, err := logger.Setup(logger.LoggerConfig{Level: "info", Output: buf})
	require.NoError(t, err)

	l.Info("hello from ci", "task_id", 7)

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "true", entries[0]["ci"])
	assert.Equal(t, "12345", entries[0]["ci_run_id"])
	assert.Equal(t, float64(7), entries[0]["task_id"])
}

func TestCIHandler_WithAttrsAndGroup(t *testing.T) {
	buf := &logger.TestLogBuffer{}
	h := logger.NewCIHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug, AddSource: true})

	l := slog.New(h).With("component", "test").WithGroup("req")
	l.Debug("grouped", "id", 1)

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, "test", entries[0]["component"])
	assert.Contains(t, entries[0], "req")
	assert.Contains(t, buf.String(), "source_line")
}

func TestParseLevel(t *testing.T) {
	level, ok := logger.ParseLevel("error")
	assert.True(t, ok)
	assert.Equal(t, slog.LevelError, level)

	level, ok = logger.ParseLevel("nope")
	assert.False(t, ok)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestFromContextOrDefault(t *testing.T) {
	defaultLogger := slog.Default()
	customLogger, _ := logger.GetTestLogger(t)

	tests := []struct {
		name     string
		ctx      context.Context
		expected *slog.Logger
	}{
		{
			name:     "nil_context_returns_default",
			ctx:      nil,
			expected: defaultLogger,
		},
		{
			name:     "context_without_logger_returns_default",
			ctx:      context.Background(),
			expected: defaultLogger,
		},
		{
			name:     "context_with_logger_returns_context_logger",
			ctx:      logger.WithLogger(context.Background(), customLogger),
			expected: customLogger,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			//nolint:staticcheck // nil context is part of the contract
			result := logger.FromContextOrDefault(tt.ctx, defaultLogger)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestWithLogger(t *testing.T) {
	t.Run("valid_logger", func(t *testing.T) {
		customLogger, _ := logger.GetTestLogger(t)
		ctx := logger.WithLogger(context.Background(), customLogger)
		assert.Equal(t, customLogger, logger.FromContext(ctx))
	})

	t.Run("nil_logger_panics", func(t *testing.T) {
		assert.Panics(t, func() {
			logger.WithLogger(context.Background(), nil)
		})
	})
}

func containsMsg(t *testing.T, buf *logger.TestLogBuffer, msg string) bool {
	t.Helper()

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	for _, e := range entries {
		if e["msg"] == msg {
			return true
		}
	}
	return false
}
