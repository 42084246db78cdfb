package container

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"workbench/internal/command"
	"workbench/internal/logger"
	"workbench/internal/types"
)

// DefaultMountPath is the fixed in-container path the working directory is
// bind-mounted at.
const DefaultMountPath = "/workspace"

// DefaultUser is the fixed non-privileged identity the container process
// runs as.
const DefaultUser = "1000:1000"

// containerNamePrefix is prepended to the descriptor name to derive the
// deterministic container name.
const containerNamePrefix = "workbench-"

// OrchestratorConfig holds tunables for the orchestrator
type OrchestratorConfig struct {
	// MountPath is the in-container bind-mount path for the working directory
	MountPath string
	// User is the uid:gid the container process runs as
	User string
}

// Orchestrator manages the lifecycle of a single command container bound to
// one working directory: build, run, exec, teardown. It is not safe for
// concurrent use; run one orchestrator per job.
type Orchestrator struct {
	runtime   Runtime
	workDir   string
	container *types.Container
	runConfig *RunConfig
	mountPath string
	user      string
}

// NewOrchestrator creates an orchestrator on top of the given runtime
func NewOrchestrator(runtime Runtime, cfg *OrchestratorConfig) *Orchestrator {
	if runtime == nil {
		runtime = NewDockerRuntime(nil)
	}

	mountPath := DefaultMountPath
	user := DefaultUser
	if cfg != nil {
		if cfg.MountPath != "" {
			mountPath = cfg.MountPath
		}
		if cfg.User != "" {
			user = cfg.User
		}
	}

	return &Orchestrator{
		runtime:   runtime,
		mountPath: mountPath,
		user:      user,
	}
}

// SetWorkDir binds the orchestrator to a host working directory. Must be
// called before Setup.
func (o *Orchestrator) SetWorkDir(path string) {
	o.workDir = path
}

// WorkDir returns the bound host working directory
func (o *Orchestrator) WorkDir() string {
	return o.workDir
}

// Container returns the current container, or nil if none is set up
func (o *Orchestrator) Container() *types.Container {
	return o.container
}

// Setup builds an image from the descriptor's Dockerfile and launches a
// detached container with the working directory mounted read-write at the
// configured mount path. It fails with a config error, and performs no side
// effects, when no working directory is set.
func (o *Orchestrator) Setup(ctx context.Context, desc command.Descriptor, envVars map[string]string) error {
	if o.workDir == "" {
		return &ContainerError{
			Type:      ErrorTypeConfigError,
			Operation: "setup",
			Message:   "working directory not set up; provision a workspace first",
		}
	}

	// Scoped build context; removed regardless of build outcome
	buildDir, err := os.MkdirTemp("", "workbench-build-")
	if err != nil {
		return &ContainerError{
			Type:       ErrorTypeConfigError,
			Operation:  "setup",
			Message:    "failed to create build context",
			Underlying: err,
		}
	}
	defer os.RemoveAll(buildDir)

	dockerfilePath := filepath.Join(buildDir, "Dockerfile")
	if err := os.WriteFile(dockerfilePath, []byte(desc.Dockerfile()), 0644); err != nil {
		return &ContainerError{
			Type:       ErrorTypeConfigError,
			Operation:  "setup",
			Message:    "failed to write Dockerfile",
			Underlying: err,
		}
	}

	meta := desc.Metadata()
	logger.WithFields(logger.Fields{
		"command":   meta.Name,
		"operation": "build",
	}).Info("Building command image")

	imageID, err := o.runtime.BuildImage(ctx, buildDir)
	if err != nil {
		LogContainerError(err, "build")
		return err
	}

	containerName := containerNamePrefix + meta.Name

	runConfig := &RunConfig{
		Name:       containerName,
		Image:      imageID,
		WorkingDir: o.mountPath,
		User:       o.user,
		EnvVars:    formatEnvVars(envVars),
		Volumes:    []string{fmt.Sprintf("%s:%s:rw", o.workDir, o.mountPath)},
	}

	ctr, err := o.runtime.RunDetached(ctx, runConfig)
	if err != nil {
		LogContainerError(err, "run")
		return err
	}

	o.container = ctr
	// Kept so the container can be relaunched if it is removed out of band
	o.runConfig = runConfig

	logger.WithFields(logger.Fields{
		"command":      meta.Name,
		"container":    ctr.Name,
		"container_id": ctr.ID,
		"operation":    "run",
	}).Info("Command container started")

	return nil
}

// Run executes a shell command inside the configured container, restarting
// it transparently if it has stopped and relaunching it from the recorded
// configuration if it was removed out of band. It returns the command's exit
// code and decoded combined output; a non-zero exit code is not an error.
func (o *Orchestrator) Run(ctx context.Context, shellCommand string) (int, string, error) {
	if o.container == nil {
		return 0, "", &ContainerError{
			Type:      ErrorTypeNotReady,
			Operation: "exec",
			Message:   "container not set up; call Setup first",
		}
	}

	// Refresh container state
	status, err := o.runtime.Status(ctx, o.container.ID)
	if err != nil {
		if !IsErrorType(err, ErrorTypeContainerNotFound) || o.runConfig == nil {
			return 0, "", err
		}

		// The container was removed out of band. The image still exists,
		// so relaunch from the recorded configuration.
		logger.WithFields(logger.Fields{
			"container_id": o.container.ID,
			"operation":    "run",
		}).Info("Container removed out of band, relaunching")

		ctr, runErr := o.runtime.RunDetached(ctx, o.runConfig)
		if runErr != nil {
			return 0, "", runErr
		}
		o.container = ctr

		return o.runtime.ExecShell(ctx, o.container.ID, shellCommand)
	}
	o.container.Status = status

	logger.WithFields(logger.Fields{
		"container_id": o.container.ID,
		"status":       status,
	}).Debug("Container status before exec")

	if status != "running" {
		logger.WithFields(logger.Fields{
			"container_id": o.container.ID,
			"status":       status,
			"operation":    "start",
		}).Info("Container is not running, starting it")
		if err := o.runtime.Start(ctx, o.container.ID); err != nil {
			return 0, "", err
		}
		o.container.Status = "running"
	}

	return o.runtime.ExecShell(ctx, o.container.ID, shellCommand)
}

// Cleanup stops and removes the container if present. It is an idempotent
// no-op when no container is set up, and tolerates a container that has
// already been removed out of band.
func (o *Orchestrator) Cleanup(ctx context.Context) error {
	if o.container == nil {
		return nil
	}

	containerID := o.container.ID
	o.container = nil

	if err := o.runtime.Stop(ctx, containerID); err != nil {
		if !IsErrorType(err, ErrorTypeContainerNotFound) {
			LogContainerWarning(err, "cleanup")
		}
	}

	if err := o.runtime.Remove(ctx, containerID); err != nil {
		if !IsErrorType(err, ErrorTypeContainerNotFound) {
			return err
		}
	}

	return nil
}

// formatEnvVars converts an environment map to sorted KEY=VALUE form so the
// resulting docker invocation is deterministic
func formatEnvVars(envVars map[string]string) []string {
	if len(envVars) == 0 {
		return nil
	}

	keys := make([]string, 0, len(envVars))
	for key := range envVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	result := make([]string, 0, len(keys))
	for _, key := range keys {
		result = append(result, fmt.Sprintf("%s=%s", key, envVars[key]))
	}
	return result
}
