package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"workbench/internal/changes"
	"workbench/internal/command"
	"workbench/internal/config"
	"workbench/internal/container"
	"workbench/internal/db"
	"workbench/internal/environment"
	"workbench/internal/git"
	"workbench/internal/logger"
	"workbench/internal/types"
	"workbench/internal/validation"
)

// RunCommand creates the run command
func RunCommand(cfg *config.Config, registry *command.Registry, database *db.DB) *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run <descriptor> <repository> [key=value...]",
		Short: "Run a command descriptor against a repository",
		Long: `Run a command descriptor against a repository in a disposable container.

The repository may be a Git URL or a local path; either way it is cloned
into a fresh working directory which is bind-mounted into the container.
Remaining arguments are key=value pairs substituted into the descriptor's
command template.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			descriptorName := cmdArgs[0]
			repository := cmdArgs[1]

			args, err := parseKeyValueArgs(cmdArgs[2:])
			if err != nil {
				return err
			}
			envVars, err := parseEnvFlags(cmd)
			if err != nil {
				return err
			}
			keep, _ := cmd.Flags().GetBool("keep")
			asJSON, _ := cmd.Flags().GetBool("json")
			showDiff, _ := cmd.Flags().GetBool("show-diff")

			desc, err := registry.Get(descriptorName)
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			workspaces, err := git.NewWorkspaceManager(cfg.Workspace.Dir)
			if err != nil {
				return err
			}
			workDir, err := workspaces.CreateWorkspace(ctx, repository)
			if err != nil {
				return fmt.Errorf("failed to prepare working directory: %w", err)
			}

			runtime := container.NewDockerRuntime(nil)
			orchestrator := container.NewOrchestrator(runtime, &container.OrchestratorConfig{
				MountPath: cfg.Container.MountPath,
				User:      cfg.Container.User,
			})
			coordinator := environment.New(orchestrator, changes.New(nil))
			coordinator.SetWorkDir(workDir)

			if !keep {
				// Teardown proceeds even when the run context was cancelled
				defer func() {
					if err := coordinator.Cleanup(context.Background()); err != nil {
						logger.WithError(err).Warn("Environment cleanup failed")
					}
				}()
			}

			envConfig := types.EnvironmentConfig{EnvironmentVars: mergeEnvVars(cfg.Environment, envVars)}
			result := coordinator.Execute(ctx, desc, args, envConfig)

			recordRun(ctx, database, descriptorName, repository, result)

			if asJSON {
				if err := printResultJSON(cmd, result); err != nil {
					return err
				}
			} else {
				printResult(cmd, result, showDiff)
			}

			if !result.Success {
				return fmt.Errorf("run of %s did not succeed", descriptorName)
			}
			return nil
		},
	}
	runCmd.Flags().StringArrayP("env", "e", nil, "Environment variable for the container (KEY=VALUE, repeatable)")
	runCmd.Flags().Bool("keep", false, "Keep the container and working directory after the run")
	runCmd.Flags().Bool("json", false, "Print the full result as JSON")
	runCmd.Flags().Bool("show-diff", false, "Print diffs and untracked file contents")

	return runCmd
}

// parseKeyValueArgs parses trailing key=value arguments into command args
func parseKeyValueArgs(pairs []string) (command.Args, error) {
	args := command.Args{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid argument %q: expected key=value", pair)
		}
		args[key] = value
	}
	return args, nil
}

func parseEnvFlags(cmd *cobra.Command) (map[string]string, error) {
	raw, _ := cmd.Flags().GetStringArray("env")
	envVars := make(map[string]string, len(raw))
	for _, pair := range raw {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --env value %q: expected KEY=VALUE", pair)
		}
		if err := validation.EnvironmentVariableKey(key); err != nil {
			return nil, err
		}
		envVars[key] = value
	}
	return envVars, nil
}

// mergeEnvVars overlays per-run variables onto the configured defaults
func mergeEnvVars(base, overlay map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(overlay))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range overlay {
		merged[k] = v
	}
	return merged
}

// recordRun persists the run outcome; failures are logged, never fatal
func recordRun(ctx context.Context, database *db.DB, descriptor, repository string, result types.CommandResult) {
	if database == nil {
		return
	}

	runs := db.NewRunRepository(database)
	run := db.NewRunFromResult(descriptor, repository, result)
	if err := runs.CreateRun(ctx, run); err != nil {
		logger.WithFields(logger.Fields{
			"descriptor": descriptor,
			"repository": repository,
		}).WithError(err).Warn("Failed to record run")
	}
}

// printResultJSON writes the complete result to stdout as indented JSON
func printResultJSON(cmd *cobra.Command, result types.CommandResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// printResult writes a human-readable run summary
func printResult(cmd *cobra.Command, result types.CommandResult, showDiff bool) {
	cmd.Println(result.Message)
	if result.ExitCode != nil {
		cmd.Printf("Exit code: %d\n", *result.ExitCode)
	}

	output := result.Output
	if !result.Success && result.Error != "" {
		output = result.Error
	}
	if output != "" {
		cmd.Println()
		cmd.Println(strings.TrimRight(output, "\n"))
	}

	cmd.Println()
	if result.Changes.IsEmpty() {
		cmd.Println("No repository changes")
		return
	}

	cmd.Printf("Repository changes: %d modified, %d untracked\n",
		len(result.Changes.TrackedChanges), len(result.Changes.UntrackedChanges))
	for _, change := range result.Changes.TrackedChanges {
		cmd.Printf("  M %s\n", change.Path)
		if showDiff {
			cmd.Println(strings.TrimRight(change.Diff, "\n"))
		}
	}
	for _, change := range result.Changes.UntrackedChanges {
		cmd.Printf("  ? %s\n", change.Path)
		if showDiff {
			cmd.Println(strings.TrimRight(change.Content, "\n"))
		}
	}
}
