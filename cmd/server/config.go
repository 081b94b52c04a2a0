package main

import (
	"fmt"

	"github.com/phrazzld/todo-api/internal/config"
)

// loadAppConfig loads the application configuration from defaults, the
// optional config and .env files, and TODO_* environment variables.
func loadAppConfig(opts config.Options) (*config.Config, error) {
	cfg, err := config.LoadWithOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
