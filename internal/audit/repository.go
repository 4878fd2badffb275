// Package audit records completed reconciliation runs in the
// reconciliation_runs table so operators can see what was computed
// for each device and when.
package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nerrad567/roadm-core/internal/reconcile"
)

// Default and maximum page sizes for List.
const (
	defaultLimit = 50
	maxLimit     = 200
)

// Run is one completed device reconciliation.
type Run struct {
	ID           string         `json:"id"`
	Device       string         `json:"device"`
	Mode         reconcile.Mode `json:"mode"`
	AddedCount   int            `json:"added_count"`
	RemovedCount int            `json:"removed_count"`
	ChangedCount int            `json:"changed_count"`
	FinalCount   int            `json:"final_count"`
	CreatedAt    time.Time      `json:"created_at"`
}

// NewRun builds a Run record from a reconciliation result.
func NewRun(device string, mode reconcile.Mode, res reconcile.Result) *Run {
	return &Run{
		Device:       device,
		Mode:         mode,
		AddedCount:   len(res.Added),
		RemovedCount: len(res.Removed),
		ChangedCount: len(res.Changed),
		FinalCount:   len(res.Final),
	}
}

// Filter controls which runs List returns.
type Filter struct {
	Device string // optional: restrict to one device
	Limit  int    // default 50, max 200
	Offset int    // pagination offset
}

// ListResult contains a page of runs with the total count.
type ListResult struct {
	Runs   []Run `json:"runs"`
	Total  int   `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// Repository defines the run-history operations.
type Repository interface {
	Create(ctx context.Context, run *Run) error
	List(ctx context.Context, filter Filter) (*ListResult, error)
}

// SQLiteRepository stores runs in SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a run-history repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Create inserts a run. The ID and CreatedAt are generated if empty.
func (r *SQLiteRepository) Create(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = "run-" + uuid.NewString()[:8]
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reconciliation_runs
		 (id, device, mode, added_count, removed_count, changed_count, final_count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Device, string(run.Mode),
		run.AddedCount, run.RemovedCount, run.ChangedCount, run.FinalCount,
		run.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting reconciliation run: %w", err)
	}
	return nil
}

// List returns runs newest first, optionally filtered by device.
func (r *SQLiteRepository) List(ctx context.Context, filter Filter) (*ListResult, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	where := ""
	args := []any{}
	if filter.Device != "" {
		where = "WHERE device = ?"
		args = append(args, filter.Device)
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM reconciliation_runs " + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting reconciliation runs: %w", err)
	}

	query := `SELECT id, device, mode, added_count, removed_count, changed_count, final_count, created_at
		 FROM reconciliation_runs ` + where + `
		 ORDER BY created_at DESC, id
		 LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, append(args, limit, filter.Offset)...)
	if err != nil {
		return nil, fmt.Errorf("querying reconciliation runs: %w", err)
	}
	defer rows.Close()

	result := &ListResult{
		Runs:   []Run{},
		Total:  total,
		Limit:  limit,
		Offset: filter.Offset,
	}
	for rows.Next() {
		var run Run
		var mode, createdAt string
		if err := rows.Scan(&run.ID, &run.Device, &mode,
			&run.AddedCount, &run.RemovedCount, &run.ChangedCount, &run.FinalCount,
			&createdAt); err != nil {
			return nil, fmt.Errorf("scanning reconciliation run: %w", err)
		}
		run.Mode = reconcile.Mode(mode)
		run.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		result.Runs = append(result.Runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reconciliation runs: %w", err)
	}

	return result, nil
}
