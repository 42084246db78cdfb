// Package app wires configuration, the descriptor registry, the run history
// database, and the CLI together.
package app

import (
	"context"
	"os"

	"workbench/internal/cli"
	"workbench/internal/command"
	"workbench/internal/config"
	"workbench/internal/db"
	"workbench/internal/logger"
)

// App represents the main application
type App struct {
	Config   *config.Config
	Registry *command.Registry
	DB       *db.DB
	CLI      *cli.Manager
}

// New creates a new application instance
func New() *App {
	return &App{}
}

// Run starts the application
func (a *App) Run(args []string) error {
	return a.RunWithContext(context.Background(), args)
}

// RunWithContext starts the application with a context for cancellation
func (a *App) RunWithContext(ctx context.Context, args []string) error {
	if os.Getenv("WORKBENCH_DEBUG") != "" {
		logger.SetLevel("debug")
	}

	cfg, err := config.Load(os.Getenv("WORKBENCH_CONFIG"))
	if err != nil {
		return err
	}
	a.Config = cfg

	registry, err := buildRegistry(cfg)
	if err != nil {
		return err
	}
	a.Registry = registry

	// Run history is best-effort; the CLI stays usable without it
	a.DB = openDatabase()
	if a.DB != nil {
		defer a.DB.Close()
	}

	a.CLI = cli.New(cfg)
	a.CLI.SetManagers(a.Registry, a.DB)

	return a.CLI.ExecuteWithContext(ctx, args)
}

// buildRegistry registers the builtin descriptors plus any manifests found
// in the configured descriptor directory
func buildRegistry(cfg *config.Config) (*command.Registry, error) {
	registry := command.NewRegistry()

	for _, desc := range command.Builtins() {
		if err := registry.Register(desc); err != nil {
			return nil, err
		}
	}

	loaded, err := command.LoadDir(cfg.Descriptors.Dir)
	if err != nil {
		return nil, err
	}
	for _, desc := range loaded {
		// Manifests may shadow builtins of the same name
		if existing, _ := registry.Get(desc.Metadata().Name); existing != nil {
			registry.Unregister(desc.Metadata().Name)
		}
		if err := registry.Register(desc); err != nil {
			return nil, err
		}
	}

	return registry, nil
}

// openDatabase opens and migrates the run history database, returning nil
// when it cannot be prepared
func openDatabase() *db.DB {
	database, err := db.New(db.DefaultConfig())
	if err != nil {
		logger.WithError(err).Warn("Run history database unavailable")
		return nil
	}

	if err := database.Migrate(); err != nil {
		logger.WithError(err).Warn("Run history migration failed")
		database.Close()
		return nil
	}

	return database
}
