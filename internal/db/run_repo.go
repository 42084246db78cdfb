package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"workbench/internal/types"
)

// RunRecorder defines the interface for run history operations
type RunRecorder interface {
	CreateRun(ctx context.Context, run *Run) error
	ListRuns(ctx context.Context, limit int) ([]*Run, error)
	GetRunByID(ctx context.Context, id string) (*Run, error)
}

// RunRepository handles database operations for command runs
type RunRepository struct {
	db *DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *DB) *RunRepository {
	return &RunRepository{db: db}
}

// NewRunFromResult builds a Run record from a command result
func NewRunFromResult(descriptor, repository string, result types.CommandResult) *Run {
	return &Run{
		Descriptor:     descriptor,
		Repository:     repository,
		Success:        result.Success,
		ExitCode:       result.ExitCode,
		Message:        result.Message,
		TrackedCount:   len(result.Changes.TrackedChanges),
		UntrackedCount: len(result.Changes.UntrackedChanges),
		Data:           JSONB(result.Data),
	}
}

// CreateRun inserts a run record, assigning an ID and timestamp if unset
func (r *RunRepository) CreateRun(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO runs (id, descriptor, repository, success, exit_code, message, tracked_count, untracked_count, data, created_at)
		VALUES (:id, :descriptor, :repository, :success, :exit_code, :message, :tracked_count, :untracked_count, :data, :created_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, run); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	return nil
}

// ListRuns returns the most recent runs, newest first
func (r *RunRepository) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, descriptor, repository, success, exit_code, message, tracked_count, untracked_count, data, created_at
		FROM runs
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`

	runs := []*Run{}
	if err := r.db.SelectContext(ctx, &runs, query, limit); err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}

	return runs, nil
}

// GetRunByID returns a run by ID
func (r *RunRepository) GetRunByID(ctx context.Context, id string) (*Run, error) {
	query := `
		SELECT id, descriptor, repository, success, exit_code, message, tracked_count, untracked_count, data, created_at
		FROM runs
		WHERE id = ?
	`

	run := &Run{}
	if err := r.db.GetContext(ctx, run, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("run not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	return run, nil
}
