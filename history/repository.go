package history

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Run statuses.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Operations recorded in the history.
const (
	OpRemoveBackground = "remove_background"
	OpGenerateIcons    = "generate_icons"
	OpAddBackground    = "add_background"
	OpGenerateImage    = "generate_image"
)

// Run is one recorded processing run.
type Run struct {
	ID          string
	InputPath   string
	Operation   string
	Engine      string
	OutputPaths []string
	Status      string
	Error       string
	Duration    time.Duration
	CreatedAt   time.Time
}

// Repository persists and queries processing runs.
type Repository struct {
	db *sql.DB
}

// NewRepository wraps an open history database.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Record inserts run, assigning an ID when it has none, and returns the
// stored run.
func (r *Repository) Record(ctx context.Context, run Run) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO processing_runs
			(id, input_path, operation, engine, output_paths, status, error, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.InputPath, run.Operation, run.Engine,
		strings.Join(run.OutputPaths, "\n"), run.Status, run.Error,
		run.Duration.Milliseconds(), run.CreatedAt)
	if err != nil {
		return Run{}, fmt.Errorf("history: record run: %w", err)
	}
	return run, nil
}

// ListRecent returns up to limit runs, newest first.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, input_path, operation, engine, output_paths, status, error, duration_ms, created_at
		FROM processing_runs
		ORDER BY created_at DESC, id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var outputs string
		var durationMS int64
		if err := rows.Scan(&run.ID, &run.InputPath, &run.Operation, &run.Engine,
			&outputs, &run.Status, &run.Error, &durationMS, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("history: scan run: %w", err)
		}
		if outputs != "" {
			run.OutputPaths = strings.Split(outputs, "\n")
		}
		run.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: iterate runs: %w", err)
	}
	return runs, nil
}
