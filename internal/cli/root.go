package cli

import (
	"github.com/spf13/cobra"
)

// createRootCommand creates the root command with global flags
func createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "workbench",
		Short: "Run commands against repositories in disposable containers",
		Long: `workbench provisions an isolated container for a repository, runs a
command descriptor inside it, and reports the repository changes the
command produced. Environments are disposable: each run gets a fresh
clone and the container and working directory are removed afterwards.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to showing help if no subcommand
			return cmd.Help()
		},
	}

	return rootCmd
}
