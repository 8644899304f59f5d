package main

import (
	"context"
	"fmt"
	"os"

	"grouper/internal/config"
	"grouper/internal/logging"
	"grouper/internal/storage"
)

// resolveRoot returns the project root from the optional positional argument,
// defaulting to the current directory.
func resolveRoot(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return os.Getwd()
}

// mustResolveRoot returns the project root or exits on error.
func mustResolveRoot(args []string) string {
	root, err := resolveRoot(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return root
}

// mustLoadConfig loads and validates the project configuration or exits.
func mustLoadConfig(root string) *config.Config {
	cfg, err := config.Load(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// mustOpenStore opens the snapshot database or exits. The caller closes it.
func mustOpenStore(root string, cfg *config.Config, logger *logging.Logger) *storage.Store {
	store, err := storage.Open(root, cfg.Storage.Path, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening snapshot store: %v\n", err)
		os.Exit(1)
	}
	return store
}

// mustLatestRun returns the most recent persisted run or exits with guidance.
func mustLatestRun(store *storage.Store) *storage.RunInfo {
	run, err := store.LatestRun()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading snapshot store: %v\n", err)
		os.Exit(1)
	}
	if run == nil {
		fmt.Fprintln(os.Stderr, "No analysis snapshot found. Run 'grouper analyze' first.")
		os.Exit(1)
	}
	return run
}

// newContext creates a context for command execution.
func newContext() context.Context {
	return context.Background()
}

// newLogger creates a logger honoring the project's logging configuration.
// A json output format forces json logs so stdout and stderr stay consistent.
func newLogger(cfg *config.Config, format string) *logging.Logger {
	logFormat := logging.HumanFormat
	if cfg.Logging.Format == "json" || format == "json" {
		logFormat = logging.JSONFormat
	}
	return logging.NewLogger(logging.Config{
		Format: logFormat,
		Level:  logging.ParseLevel(cfg.Logging.Level),
	})
}
