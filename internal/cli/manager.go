package cli

import (
	"context"

	"github.com/spf13/cobra"

	"workbench/internal/cli/commands"
	"workbench/internal/command"
	"workbench/internal/config"
	"workbench/internal/db"
)

// Manager handles CLI operations
type Manager struct {
	config   *config.Config
	registry *command.Registry
	database *db.DB
	rootCmd  *cobra.Command
}

// New creates a new CLI manager
func New(cfg *config.Config) *Manager {
	m := &Manager{
		config: cfg,
	}

	// Use the root command from root.go
	m.rootCmd = createRootCommand()

	return m
}

// SetManagers sets the descriptor registry and the run history database.
// The database may be nil, in which case history commands are unavailable
// and runs are not recorded.
func (m *Manager) SetManagers(registry *command.Registry, database *db.DB) {
	m.registry = registry
	m.database = database

	m.setupCommands()
}

// Execute executes the CLI with the given arguments
func (m *Manager) Execute(args []string) error {
	return m.ExecuteWithContext(context.Background(), args)
}

// ExecuteWithContext executes the CLI with the given arguments and context
func (m *Manager) ExecuteWithContext(ctx context.Context, args []string) error {
	m.rootCmd.SetArgs(args)
	return m.rootCmd.ExecuteContext(ctx)
}

// setupCommands sets up all CLI commands
func (m *Manager) setupCommands() {
	m.rootCmd.AddCommand(commands.RunCommand(m.config, m.registry, m.database))

	descriptorsCmd := &cobra.Command{
		Use:     "descriptors",
		Short:   "Command descriptor management",
		Aliases: []string{"desc"},
	}
	for _, cmd := range commands.DescriptorCommands(m.registry) {
		descriptorsCmd.AddCommand(cmd)
	}
	m.rootCmd.AddCommand(descriptorsCmd)

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Run history commands",
	}
	for _, cmd := range commands.HistoryCommands(m.database) {
		historyCmd.AddCommand(cmd)
	}
	m.rootCmd.AddCommand(historyCmd)
}
