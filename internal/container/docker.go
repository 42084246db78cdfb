package container

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"workbench/internal/types"
)

// DockerRuntime implements Runtime by shelling out to the docker CLI
type DockerRuntime struct {
	executor CommandExecutor
}

// NewDockerRuntime creates a new Docker runtime
func NewDockerRuntime(executor CommandExecutor) *DockerRuntime {
	if executor == nil {
		executor = &DefaultCommandExecutor{}
	}
	return &DockerRuntime{
		executor: executor,
	}
}

// IsAvailable checks if Docker is available on the system
func (r *DockerRuntime) IsAvailable(ctx context.Context) bool {
	cmd := r.executor.CommandContext(ctx, "docker", "--version")
	return cmd.Run() == nil
}

// BuildImage builds an image from the Dockerfile in buildDir and returns the
// image ID
func (r *DockerRuntime) BuildImage(ctx context.Context, buildDir string) (string, error) {
	cmd := r.executor.CommandContext(ctx, "docker", "build", "-q", "--rm", "--force-rm", buildDir)
	output, err := cmd.CombinedOutput()
	if err != nil {
		outputStr := string(output)
		return "", &ContainerError{
			Type:       ErrorTypeBuildFailed,
			Operation:  "build",
			Message:    "failed to build image",
			Underlying: err,
			Output:     outputStr,
		}
	}

	// With -q docker prints only the image ID on the last line
	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	imageID := strings.TrimSpace(lines[len(lines)-1])
	if imageID == "" {
		return "", &ContainerError{
			Type:      ErrorTypeBuildFailed,
			Operation: "build",
			Message:   "docker build produced no image ID",
			Output:    string(output),
		}
	}

	return imageID, nil
}

// RunDetached starts a detached container with the given configuration
func (r *DockerRuntime) RunDetached(ctx context.Context, config *RunConfig) (*types.Container, error) {
	if config.Name == "" {
		return nil, &ContainerError{
			Type:      ErrorTypeConfigError,
			Operation: "run",
			Message:   "container name is required",
		}
	}
	if err := validateContainerID(config.Name); err != nil {
		return nil, &ContainerError{
			Type:       ErrorTypeConfigError,
			Operation:  "run",
			Message:    fmt.Sprintf("invalid container name: %s", config.Name),
			Underlying: err,
		}
	}
	if config.Image == "" {
		return nil, &ContainerError{
			Type:      ErrorTypeConfigError,
			Operation: "run",
			Message:   "container image is required",
		}
	}

	args := []string{"run", "-d",
		"--name", config.Name,
		"--label", "workbench.managed=true",
	}

	if config.WorkingDir != "" {
		args = append(args, "-w", config.WorkingDir)
	}

	if config.User != "" {
		args = append(args, "-u", config.User)
	}

	for _, env := range config.EnvVars {
		args = append(args, "-e", env)
	}

	for _, volume := range config.Volumes {
		args = append(args, "-v", volume)
	}

	args = append(args, config.Image)

	cmd := r.executor.CommandContext(ctx, "docker", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		outputStr := string(output)
		if strings.Contains(outputStr, "container name") && strings.Contains(outputStr, "already in use") {
			return nil, &ContainerError{
				Type:       ErrorTypeConfigError,
				Operation:  "run",
				Message:    fmt.Sprintf("container name %s already in use", config.Name),
				Underlying: fmt.Errorf("failed to run container: %w, output: %s", err, outputStr),
			}
		}
		return nil, &ContainerError{
			Type:       parseDockerError(outputStr, err),
			Operation:  "run",
			Message:    "failed to run container",
			Underlying: err,
			Output:     outputStr,
		}
	}

	containerID := strings.TrimSpace(string(output))

	return &types.Container{
		ID:        containerID,
		Name:      config.Name,
		Image:     config.Image,
		Status:    "running",
		CreatedAt: time.Now().Format(time.RFC3339),
	}, nil
}

// Start starts a container
func (r *DockerRuntime) Start(ctx context.Context, containerID string) error {
	cmd := r.executor.CommandContext(ctx, "docker", "start", containerID)
	output, err := cmd.CombinedOutput()
	if err != nil {
		outputStr := string(output)
		return &ContainerError{
			Type:        parseDockerError(outputStr, err),
			Operation:   "start",
			ContainerID: containerID,
			Message:     "failed to start container",
			Underlying:  err,
			Output:      outputStr,
		}
	}
	return nil
}

// Stop stops a container
func (r *DockerRuntime) Stop(ctx context.Context, containerID string) error {
	cmd := r.executor.CommandContext(ctx, "docker", "stop", containerID)
	output, err := cmd.CombinedOutput()
	if err != nil {
		outputStr := string(output)
		return &ContainerError{
			Type:        parseDockerError(outputStr, err),
			Operation:   "stop",
			ContainerID: containerID,
			Message:     "failed to stop container",
			Underlying:  err,
			Output:      outputStr,
		}
	}
	return nil
}

// Remove removes a container
func (r *DockerRuntime) Remove(ctx context.Context, containerID string) error {
	cmd := r.executor.CommandContext(ctx, "docker", "rm", "-f", containerID)
	output, err := cmd.CombinedOutput()
	if err != nil {
		outputStr := string(output)
		return &ContainerError{
			Type:        parseDockerError(outputStr, err),
			Operation:   "remove",
			ContainerID: containerID,
			Message:     "failed to remove container",
			Underlying:  err,
			Output:      outputStr,
		}
	}
	return nil
}

// Status returns the current state of a container as reported by inspect
func (r *DockerRuntime) Status(ctx context.Context, containerID string) (string, error) {
	cmd := r.executor.CommandContext(ctx, "docker", "inspect", containerID, "--format", "{{.State.Status}}")
	output, err := cmd.CombinedOutput()
	if err != nil {
		outputStr := string(output)
		return "", &ContainerError{
			Type:        parseDockerError(outputStr, err),
			Operation:   "inspect",
			ContainerID: containerID,
			Message:     "failed to inspect container",
			Underlying:  err,
			Output:      outputStr,
		}
	}
	return strings.TrimSpace(string(output)), nil
}

// ExecShell runs a command through /bin/sh -c inside a running container so
// environment variables are expanded. The command's exit code is returned as
// data; only failures to reach the container are errors.
func (r *DockerRuntime) ExecShell(ctx context.Context, containerID, command string) (int, string, error) {
	cmd := r.executor.CommandContext(ctx, "docker", "exec", containerID, "/bin/sh", "-c", command)
	output, err := cmd.CombinedOutput()
	outputStr := string(output)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// Distinguish a non-zero command exit from docker-level failures
			switch parseDockerError(outputStr, err) {
			case ErrorTypeContainerNotFound, ErrorTypeNotReady, ErrorTypeRuntimeNotFound:
				return 0, "", &ContainerError{
					Type:        parseDockerError(outputStr, err),
					Operation:   "exec",
					ContainerID: containerID,
					Message:     "failed to exec in container",
					Underlying:  err,
					Output:      outputStr,
				}
			}
			return exitErr.ExitCode(), outputStr, nil
		}
		return 0, "", &ContainerError{
			Type:        ErrorTypeExecError,
			Operation:   "exec",
			ContainerID: containerID,
			Message:     "failed to exec in container",
			Underlying:  err,
			Output:      outputStr,
		}
	}
	return 0, outputStr, nil
}
