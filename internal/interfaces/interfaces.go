// Package interfaces provides minimal interfaces used to decouple the
// coordinator from its collaborators and allow mocking in tests.
package interfaces

import (
	"context"

	"workbench/internal/command"
	"workbench/internal/types"
)

// ContainerOrchestrator is the minimal surface the coordinator needs from
// the container orchestrator
type ContainerOrchestrator interface {
	SetWorkDir(path string)
	Container() *types.Container
	Setup(ctx context.Context, desc command.Descriptor, envVars map[string]string) error
	Run(ctx context.Context, shellCommand string) (int, string, error)
	Cleanup(ctx context.Context) error
}

// ChangeExtractor is the minimal surface the coordinator needs from the
// repository change extractor
type ChangeExtractor interface {
	Extract(ctx context.Context, workDir string) (types.RepositoryChanges, error)
}
