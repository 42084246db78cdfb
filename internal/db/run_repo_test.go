package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workbench/internal/types"
)

func testDB(t *testing.T) *DB {
	t.Helper()

	cfg := DefaultConfig()
	cfg.DSN = filepath.Join(t.TempDir(), "test.db")

	database, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, database.Migrate())
	return database
}

func TestRunRepository_CreateAndGet(t *testing.T) {
	database := testDB(t)
	repo := NewRunRepository(database)
	ctx := context.Background()

	exitCode := 0
	run := &Run{
		Descriptor:     "aider",
		Repository:     "https://example.com/repo.git",
		Success:        true,
		ExitCode:       &exitCode,
		Message:        "Command aider completed successfully",
		TrackedCount:   2,
		UntrackedCount: 1,
		Data:           JSONB{"command_name": "aider"},
	}
	require.NoError(t, repo.CreateRun(ctx, run))
	assert.NotEmpty(t, run.ID)
	assert.False(t, run.CreatedAt.IsZero())

	got, err := repo.GetRunByID(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, "aider", got.Descriptor)
	assert.Equal(t, "https://example.com/repo.git", got.Repository)
	assert.True(t, got.Success)
	require.NotNil(t, got.ExitCode)
	assert.Equal(t, 0, *got.ExitCode)
	assert.Equal(t, 2, got.TrackedCount)
	assert.Equal(t, 1, got.UntrackedCount)
	assert.Equal(t, "aider", got.Data["command_name"])
}

func TestRunRepository_GetUnknown(t *testing.T) {
	database := testDB(t)
	repo := NewRunRepository(database)

	_, err := repo.GetRunByID(context.Background(), "no-such-id")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run not found")
}

func TestRunRepository_ListNewestFirst(t *testing.T) {
	database := testDB(t)
	repo := NewRunRepository(database)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		run := &Run{
			Descriptor: "aider",
			Repository: "repo",
			Message:    "m",
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.CreateRun(ctx, run))
	}

	runs, err := repo.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.True(t, runs[0].CreatedAt.After(runs[1].CreatedAt))
	assert.True(t, runs[1].CreatedAt.After(runs[2].CreatedAt))
}

func TestRunRepository_ListLimit(t *testing.T) {
	database := testDB(t)
	repo := NewRunRepository(database)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.CreateRun(ctx, &Run{Descriptor: "aider", Repository: "repo", Message: "m"}))
	}

	runs, err := repo.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestNewRunFromResult(t *testing.T) {
	exitCode := 1
	result := types.CommandResult{
		Success:  false,
		Message:  "Command aider failed",
		ExitCode: &exitCode,
		Changes: types.RepositoryChanges{
			TrackedChanges:   []types.TrackedChange{{Path: "a.go"}, {Path: "b.go"}},
			UntrackedChanges: []types.UntrackedChange{{Path: "c.go"}},
		},
		Data: map[string]interface{}{"command_name": "aider"},
	}

	run := NewRunFromResult("aider", "https://example.com/r.git", result)
	assert.Equal(t, "aider", run.Descriptor)
	assert.Equal(t, "https://example.com/r.git", run.Repository)
	assert.False(t, run.Success)
	require.NotNil(t, run.ExitCode)
	assert.Equal(t, 1, *run.ExitCode)
	assert.Equal(t, 2, run.TrackedCount)
	assert.Equal(t, 1, run.UntrackedCount)
	assert.Equal(t, "aider", run.Data["command_name"])
}

func TestDB_HealthCheck(t *testing.T) {
	database := testDB(t)
	assert.NoError(t, database.HealthCheck(context.Background()))
}
