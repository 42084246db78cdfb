package container

import (
	"context"

	"workbench/internal/types"
)

// Runtime defines the interface for container engine operations.
// It abstracts the underlying container runtime so the orchestrator can be
// tested against a fake.
type Runtime interface {
	// IsAvailable checks if the runtime is available on the system
	IsAvailable(ctx context.Context) bool

	// BuildImage builds an image from the Dockerfile in buildDir and
	// returns its identifier
	BuildImage(ctx context.Context, buildDir string) (string, error)

	// RunDetached starts a detached container with the given configuration
	RunDetached(ctx context.Context, config *RunConfig) (*types.Container, error)

	// Start starts a stopped container by ID
	Start(ctx context.Context, containerID string) error

	// Stop stops a container by ID
	Stop(ctx context.Context, containerID string) error

	// Remove removes a container by ID
	Remove(ctx context.Context, containerID string) error

	// Status returns the current state of a container (e.g. "running")
	Status(ctx context.Context, containerID string) (string, error)

	// ExecShell runs a command through a shell wrapper inside a running
	// container and returns the exit code plus the decoded combined output.
	// A non-zero exit code is not itself an error.
	ExecShell(ctx context.Context, containerID, command string) (int, string, error)
}

// RunConfig holds configuration for launching a container
type RunConfig struct {
	Name       string
	Image      string
	WorkingDir string   // working directory inside the container
	User       string   // uid:gid the container process runs as
	EnvVars    []string // environment variables in KEY=VALUE format
	Volumes    []string // volume mounts in HOST:CONTAINER[:MODE] format
}
