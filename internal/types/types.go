// Package types provides common type definitions
package types

// Metadata describes a command descriptor
type Metadata struct {
	Name          string `json:"name" yaml:"name"`
	Description   string `json:"description" yaml:"description"`
	Documentation string `json:"documentation,omitempty" yaml:"documentation,omitempty"`
}

// EnvironmentConfig holds environment variables applied at container launch
type EnvironmentConfig struct {
	EnvironmentVars map[string]string `json:"environment_vars" toml:"environment_vars"`
}

// TrackedChange represents a modification to a file under version control,
// expressed as a diff against the last committed revision
type TrackedChange struct {
	Path string `json:"path"`
	Diff string `json:"diff"`
}

// UntrackedChange represents a new file not yet under version control,
// captured with its full current content
type UntrackedChange struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// RepositoryChanges is a point-in-time snapshot of repository mutations
type RepositoryChanges struct {
	TrackedChanges   []TrackedChange   `json:"tracked_changes"`
	UntrackedChanges []UntrackedChange `json:"untracked_changes"`
}

// EmptyRepositoryChanges returns a well-formed snapshot with no changes.
// Slices are non-nil so the value serializes as empty arrays, not null.
func EmptyRepositoryChanges() RepositoryChanges {
	return RepositoryChanges{
		TrackedChanges:   []TrackedChange{},
		UntrackedChanges: []UntrackedChange{},
	}
}

// IsEmpty reports whether the snapshot contains no changes
func (c RepositoryChanges) IsEmpty() bool {
	return len(c.TrackedChanges) == 0 && len(c.UntrackedChanges) == 0
}

// CommandResult is the outcome record of executing a command in an
// environment. It is always produced, never raised.
type CommandResult struct {
	Success  bool                   `json:"success"`
	Message  string                 `json:"message"`
	ExitCode *int                   `json:"exit_code,omitempty"`
	Output   string                 `json:"output,omitempty"`
	Error    string                 `json:"error,omitempty"`
	Changes  RepositoryChanges      `json:"changes"`
	Data     map[string]interface{} `json:"data,omitempty"`
}

// Container represents a container instance
type Container struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at,omitempty"`
}
