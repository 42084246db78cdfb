// Package environment composes the container orchestrator and the repository
// change extractor into a single lifecycle: provision, execute, snapshot,
// report, cleanup.
package environment

import (
	"context"
	"fmt"
	"os"

	"workbench/internal/command"
	"workbench/internal/errors"
	"workbench/internal/interfaces"
	"workbench/internal/logger"
	"workbench/internal/types"
)

// Coordinator owns exactly one working directory and at most one container.
// It is not designed for concurrent reuse; run one coordinator per job and
// do not issue overlapping Execute calls against the same instance.
type Coordinator struct {
	orchestrator interfaces.ContainerOrchestrator
	extractor    interfaces.ChangeExtractor
	workDir      string
}

// New creates a coordinator composing the given orchestrator and extractor
func New(orchestrator interfaces.ContainerOrchestrator, extractor interfaces.ChangeExtractor) *Coordinator {
	return &Coordinator{
		orchestrator: orchestrator,
		extractor:    extractor,
	}
}

// SetWorkDir binds the coordinator (and its orchestrator) to a host working
// directory holding a clone of the target repository
func (c *Coordinator) SetWorkDir(path string) {
	c.workDir = path
	c.orchestrator.SetWorkDir(path)
}

// WorkDir returns the bound working directory
func (c *Coordinator) WorkDir() string {
	return c.workDir
}

// runOutcome is the successful inner result of an execution flow
type runOutcome struct {
	name     string
	exitCode int
	output   string
	changes  types.RepositoryChanges
}

// Execute runs the descriptor's command in a configured environment and
// always returns a CommandResult, never an error: any failure anywhere in
// the flow, including a panic in a collaborator, becomes a failed result
// with empty changes. Callers can therefore never be crashed by environment
// failures.
func (c *Coordinator) Execute(ctx context.Context, desc command.Descriptor, args command.Args, config types.EnvironmentConfig) types.CommandResult {
	res := c.execute(ctx, desc, args, config)
	outcome, err := res.Unwrap()
	if err != nil {
		logger.WithFields(logger.Fields{
			"operation": "execute",
		}).WithError(err).Error("Command execution failed")

		return types.CommandResult{
			Success: false,
			Message: fmt.Sprintf("Failed to execute command: %s", err.Error()),
			Changes: types.EmptyRepositoryChanges(),
			Data:    map[string]interface{}{"error": err.Error()},
		}
	}

	success := outcome.exitCode == 0
	verdict := "completed successfully"
	if !success {
		verdict = "failed"
	}

	exitCode := outcome.exitCode
	result := types.CommandResult{
		Success:  success,
		Message:  fmt.Sprintf("Command %s %s", outcome.name, verdict),
		ExitCode: &exitCode,
		Changes:  outcome.changes,
		Data:     map[string]interface{}{"command_name": outcome.name},
	}
	if success {
		result.Output = outcome.output
	} else {
		result.Error = outcome.output
	}

	return result
}

// execute performs the provision/run/snapshot flow and reports the outcome
// as a tagged result so the fail-soft contract above is structural rather
// than conventional.
func (c *Coordinator) execute(ctx context.Context, desc command.Descriptor, args command.Args, config types.EnvironmentConfig) (res types.Result[runOutcome]) {
	defer func() {
		if r := recover(); r != nil {
			res = types.NewErrorResult[runOutcome](
				errors.InternalError(fmt.Sprintf("panic during execution: %v", r), nil))
		}
	}()

	// Everything descriptor-provided runs inside the recover above,
	// Metadata included.
	name := desc.Metadata().Name

	// Provision the container on first use, or re-provision when it has
	// been removed out of band.
	if c.orchestrator.Container() == nil {
		if err := c.orchestrator.Setup(ctx, desc, config.EnvironmentVars); err != nil {
			return types.NewErrorResult[runOutcome](err)
		}
	}

	shellCommand := desc.ExecutionCommand(args)

	exitCode, output, err := c.orchestrator.Run(ctx, shellCommand)
	if err != nil {
		return types.NewErrorResult[runOutcome](err)
	}

	// Snapshot repository changes after execution regardless of exit code
	changes, err := c.extractor.Extract(ctx, c.workDir)
	if err != nil {
		return types.NewErrorResult[runOutcome](err)
	}

	return types.NewResult(runOutcome{
		name:     name,
		exitCode: exitCode,
		output:   output,
		changes:  changes,
	})
}

// Cleanup tears down the container and removes the working directory tree.
// It is idempotent and safe to call after a failed or partial setup.
func (c *Coordinator) Cleanup(ctx context.Context) error {
	if err := c.orchestrator.Cleanup(ctx); err != nil {
		logger.WithFields(logger.Fields{
			"operation": "cleanup",
		}).WithError(err).Warn("Container cleanup failed")
	}

	if c.workDir != "" {
		if err := os.RemoveAll(c.workDir); err != nil {
			return fmt.Errorf("failed to remove working directory %s: %w", c.workDir, err)
		}
		c.workDir = ""
	}

	return nil
}
