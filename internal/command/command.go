// Package command defines the descriptor contract that automation commands
// supply to the environment coordinator, and the registry used to dispatch
// incoming events to them.
package command

import (
	"workbench/internal/types"
)

// Args holds the named arguments resolved for a single invocation
type Args map[string]string

// Descriptor is the capability interface an automation command implements.
// It tells the orchestrator how to build the command's container and how to
// invoke the command inside it.
type Descriptor interface {
	// Metadata returns descriptive information about the command
	Metadata() types.Metadata

	// Dockerfile returns the full container build script for this command.
	// It must include all dependencies and setup instructions.
	Dockerfile() string

	// ExecutionCommand returns the shell command to run inside the container
	ExecutionCommand(args Args) string

	// HandlesEvent reports whether this command can handle the given event type
	HandlesEvent(eventType string) bool
}
