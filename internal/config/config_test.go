package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workbench/internal/container"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, container.DefaultMountPath, cfg.Container.MountPath)
	assert.Equal(t, container.DefaultUser, cfg.Container.User)
	assert.NotNil(t, cfg.Environment)
	assert.Empty(t, cfg.Workspace.Dir)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workbench.toml")
	content := `[workspace]
dir = "/srv/workbench/workspaces"

[container]
mount_path = "/repo"
user = "2000:2000"

[descriptors]
dir = "/etc/workbench/descriptors"

[environment]
OPENAI_API_KEY = "sk-test"
HTTP_PROXY = "http://proxy:3128"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/workbench/workspaces", cfg.Workspace.Dir)
	assert.Equal(t, "/repo", cfg.Container.MountPath)
	assert.Equal(t, "2000:2000", cfg.Container.User)
	assert.Equal(t, "/etc/workbench/descriptors", cfg.Descriptors.Dir)
	assert.Equal(t, "sk-test", cfg.Environment["OPENAI_API_KEY"])
	assert.Equal(t, "http://proxy:3128", cfg.Environment["HTTP_PROXY"])
}

func TestLoadPartialFileFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workbench.toml")
	require.NoError(t, os.WriteFile(path, []byte("[workspace]\ndir = \"/data\"\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data", cfg.Workspace.Dir)
	assert.Equal(t, container.DefaultMountPath, cfg.Container.MountPath)
	assert.Equal(t, container.DefaultUser, cfg.Container.User)
}

func TestLoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workbench.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = [valid"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Workspace.Dir = "/tmp/ws"
	cfg.Environment["KEY"] = "value"

	path := filepath.Join(t.TempDir(), "sub", "workbench.toml")
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Workspace.Dir, loaded.Workspace.Dir)
	assert.Equal(t, "value", loaded.Environment["KEY"])
}
