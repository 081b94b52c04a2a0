// Package main is the entry point for the todo API server. It loads
// configuration, prepares the task store and serves the HTTP API until it
// receives SIGINT or SIGTERM.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/phrazzld/todo-api/internal/config"
)

// cliOptions holds the command line flags.
type cliOptions struct {
	configFile string
	envFile    string
	migrate    string
	verbose    bool
}

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		slog.Error("todo-api failed", "error", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, output io.Writer) (cliOptions, error) {
	var opts cliOptions

	fs := flag.NewFlagSet("todo-api", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.configFile, "config", "", "path to a YAML config file (default ./config.yaml if present)")
	fs.StringVar(&opts.envFile, "env", "", "path to a .env file (default ./.env if present)")
	fs.StringVar(&opts.migrate, "migrate", "", "run a migration command (up, down, reset, status, version) and exit")
	fs.BoolVar(&opts.verbose, "verbose", false, "enable verbose migration logging")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, err
	}
	if fs.NArg() > 0 {
		return cliOptions{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

// run wires the application together. With -migrate it runs the migration
// command and returns; otherwise it serves until ctx is canceled or a
// shutdown signal arrives.
func run(ctx context.Context, args []string) error {
	opts, err := parseFlags(args, os.Stderr)
	if err != nil {
		return err
	}

	cfg, err := loadAppConfig(config.Options{ConfigFile: opts.configFile, EnvFile: opts.envFile})
	if err != nil {
		return err
	}

	log, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	log.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_driver", cfg.Database.Driver)

	db, err := setupAppDatabase(ctx, cfg, log)
	if err != nil {
		return err
	}

	if opts.migrate != "" {
		defer closeDatabase(db, log)
		return handleMigrations(ctx, cfg, db, opts.migrate, opts.verbose, log)
	}

	if cfg.Database.AutoMigrate && db != nil {
		if err := handleMigrations(ctx, cfg, db, "up", opts.verbose, log); err != nil {
			closeDatabase(db, log)
			return err
		}
	}

	app, err := newApplication(cfg, log, db)
	if err != nil {
		closeDatabase(db, log)
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
