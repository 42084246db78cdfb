package changes

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workbench/internal/validation"
)

// diffExecutor answers `git diff` invocations with canned per-path diffs
type diffExecutor struct {
	diffs map[string]string
	calls [][]string
}

func (e *diffExecutor) CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	e.calls = append(e.calls, append([]string{name}, args...))

	// Last argument is the path being diffed
	path := args[len(args)-1]
	diff := e.diffs[path]
	script := fmt.Sprintf("printf '%%s' %s", validation.ShellEscape(diff))
	return exec.CommandContext(ctx, "sh", "-c", script)
}

// initRepo creates a git repository with one committed file per entry
func initRepo(t *testing.T, files map[string]string) (string, *git.Repository) {
	t.Helper()
	dir := t.TempDir()

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	worktree, err := repo.Worktree()
	require.NoError(t, err)

	for path, content := range files {
		full := filepath.Join(dir, path)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
		_, err = worktree.Add(path)
		require.NoError(t, err)
	}

	_, err = worktree.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@localhost", When: time.Now()},
	})
	require.NoError(t, err)

	return dir, repo
}

func TestExtractor_EmptyWorkDir(t *testing.T) {
	e := New(&diffExecutor{})

	changes, err := e.Extract(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, changes.IsEmpty())
	assert.NotNil(t, changes.TrackedChanges)
	assert.NotNil(t, changes.UntrackedChanges)
}

func TestExtractor_NotARepository(t *testing.T) {
	e := New(&diffExecutor{})

	_, err := e.Extract(context.Background(), t.TempDir())
	assert.Error(t, err)
}

func TestExtractor_CleanRepository(t *testing.T) {
	dir, _ := initRepo(t, map[string]string{"main.go": "package main\n"})
	executor := &diffExecutor{}
	e := New(executor)

	changes, err := e.Extract(context.Background(), dir)
	require.NoError(t, err)
	assert.True(t, changes.IsEmpty())
	assert.Empty(t, executor.calls)
}

func TestExtractor_ModifiedFile(t *testing.T) {
	dir, _ := initRepo(t, map[string]string{"main.go": "package main\n"})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n\nfunc main() {}\n"), 0644))

	executor := &diffExecutor{diffs: map[string]string{
		"main.go": "diff --git a/main.go b/main.go\n+func main() {}\n",
	}}
	e := New(executor)

	changes, err := e.Extract(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, changes.TrackedChanges, 1)
	assert.Equal(t, "main.go", changes.TrackedChanges[0].Path)
	assert.Contains(t, changes.TrackedChanges[0].Diff, "+func main() {}")
	assert.Empty(t, changes.UntrackedChanges)

	require.Len(t, executor.calls, 1)
	assert.Equal(t, []string{"git", "-C", dir, "diff", "HEAD", "--", "main.go"}, executor.calls[0])
}

func TestExtractor_StagedFile(t *testing.T) {
	dir, repo := initRepo(t, map[string]string{"main.go": "package main\n"})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main // staged\n"), 0644))

	worktree, err := repo.Worktree()
	require.NoError(t, err)
	_, err = worktree.Add("main.go")
	require.NoError(t, err)

	executor := &diffExecutor{diffs: map[string]string{
		"main.go": "diff --git a/main.go b/main.go\n+package main // staged\n",
	}}
	e := New(executor)

	changes, err := e.Extract(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, changes.TrackedChanges, 1)
	assert.Equal(t, "main.go", changes.TrackedChanges[0].Path)
}

func TestExtractor_UntrackedFile(t *testing.T) {
	dir, _ := initRepo(t, map[string]string{"main.go": "package main\n"})
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "pkg"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pkg", "new.go"), []byte("package pkg\n"), 0644))

	e := New(&diffExecutor{})

	changes, err := e.Extract(context.Background(), dir)
	require.NoError(t, err)

	assert.Empty(t, changes.TrackedChanges)
	require.Len(t, changes.UntrackedChanges, 1)
	assert.Equal(t, "pkg/new.go", changes.UntrackedChanges[0].Path)
	assert.Equal(t, "package pkg\n", changes.UntrackedChanges[0].Content)
}

func TestExtractor_SortsPaths(t *testing.T) {
	dir, _ := initRepo(t, map[string]string{
		"b.txt": "b\n",
		"a.txt": "a\n",
	})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("b2\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a2\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "z-new.txt"), []byte("z\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c-new.txt"), []byte("c\n"), 0644))

	executor := &diffExecutor{diffs: map[string]string{
		"a.txt": "diff a\n",
		"b.txt": "diff b\n",
	}}
	e := New(executor)

	changes, err := e.Extract(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, changes.TrackedChanges, 2)
	assert.Equal(t, "a.txt", changes.TrackedChanges[0].Path)
	assert.Equal(t, "b.txt", changes.TrackedChanges[1].Path)

	require.Len(t, changes.UntrackedChanges, 2)
	assert.Equal(t, "c-new.txt", changes.UntrackedChanges[0].Path)
	assert.Equal(t, "z-new.txt", changes.UntrackedChanges[1].Path)
}

func TestExtractor_EmptyDiffDropped(t *testing.T) {
	dir, _ := initRepo(t, map[string]string{"main.go": "package main\n"})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main \n"), 0644))

	// A status hit whose content diff comes back blank is not a change
	executor := &diffExecutor{diffs: map[string]string{"main.go": "\n"}}
	e := New(executor)

	changes, err := e.Extract(context.Background(), dir)
	require.NoError(t, err)
	assert.Empty(t, changes.TrackedChanges)
}

func TestExtractor_UnreadableUntrackedFileSkipped(t *testing.T) {
	dir, _ := initRepo(t, map[string]string{"main.go": "package main\n"})
	// A dangling symlink shows up as untracked but cannot be read
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing-target"), filepath.Join(dir, "dangling")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readable.txt"), []byte("ok\n"), 0644))

	e := New(&diffExecutor{})

	changes, err := e.Extract(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, changes.UntrackedChanges, 1)
	assert.Equal(t, "readable.txt", changes.UntrackedChanges[0].Path)
}
