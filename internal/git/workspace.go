// Package git provisions per-job working directories by cloning the target
// repository onto the host filesystem.
package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"
	"github.com/rs/xid"

	"workbench/internal/errors"
	"workbench/internal/xdg"
)

// WorkspaceManager creates and removes working directories holding clones of
// target repositories. Each workspace gets a unique directory so independent
// jobs never collide.
type WorkspaceManager struct {
	baseDir string
}

// NewWorkspaceManager creates a workspace manager rooted at baseDir. An
// empty baseDir defaults to the XDG data directory.
func NewWorkspaceManager(baseDir string) (*WorkspaceManager, error) {
	if baseDir == "" {
		dataDir, err := xdg.DataDir()
		if err != nil {
			return nil, fmt.Errorf("failed to determine data directory: %w", err)
		}
		baseDir = filepath.Join(dataDir, "workspaces")
	}

	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create workspace base directory: %w", err)
	}

	return &WorkspaceManager{baseDir: baseDir}, nil
}

// BaseDir returns the directory workspaces are created under
func (m *WorkspaceManager) BaseDir() string {
	return m.baseDir
}

// CreateWorkspace clones the repository into a fresh working directory and
// returns its path. A partial clone is removed on failure.
func (m *WorkspaceManager) CreateWorkspace(ctx context.Context, repoURL string) (string, error) {
	if repoURL == "" {
		return "", errors.GitCloneFailed(repoURL, fmt.Errorf("repository URL cannot be empty"))
	}

	workDir := filepath.Join(m.baseDir, fmt.Sprintf("%s-%s", repoName(repoURL), xid.New().String()))

	_, err := git.PlainCloneContext(ctx, workDir, false, &git.CloneOptions{
		URL:  repoURL,
		Auth: getAuthMethod(),
	})
	if err != nil {
		// Clean up partial clone on failure
		os.RemoveAll(workDir)

		if ctx.Err() != nil {
			return "", fmt.Errorf("clone cancelled: %w", ctx.Err())
		}
		return "", errors.GitCloneFailed(repoURL, err)
	}

	return workDir, nil
}

// RemoveWorkspace deletes a working directory tree. Removing a workspace
// that no longer exists is not an error.
func (m *WorkspaceManager) RemoveWorkspace(path string) error {
	if path == "" {
		return nil
	}
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to remove workspace %s: %w", path, err)
	}
	return nil
}

// repoName extracts the repository name from a URL or local path
func repoName(repoURL string) string {
	parts := strings.Split(strings.TrimSuffix(repoURL, "/"), "/")
	name := parts[len(parts)-1]
	name = strings.TrimSuffix(name, ".git")
	if name == "" {
		name = "workspace"
	}
	return name
}

// getAuthMethod returns the authentication method for Git operations
func getAuthMethod() transport.AuthMethod {
	// Try SSH key authentication first
	if sshKey := os.Getenv("SSH_KEY_PATH"); sshKey != "" {
		if auth, err := ssh.NewPublicKeysFromFile("git", sshKey, ""); err == nil {
			return auth
		}
	}

	// Try SSH agent
	if auth, err := ssh.NewSSHAgentAuth("git"); err == nil {
		return auth
	}

	// Try username/password from environment
	if username := os.Getenv("GIT_USERNAME"); username != "" {
		if password := os.Getenv("GIT_PASSWORD"); password != "" {
			return &http.BasicAuth{
				Username: username,
				Password: password,
			}
		}
	}

	// Try GitHub token
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return &http.BasicAuth{
			Username: "token",
			Password: token,
		}
	}

	return nil
}
