package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rkanno/craftline/internal/domain/activity"
	"github.com/rkanno/craftline/internal/repository"
)

// ActivityRepository implements repository.ActivityRepository for SQLite
type ActivityRepository struct {
	db *DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Log inserts a new activity entry
func (r *ActivityRepository) Log(ctx context.Context, entry *activity.ActivityEntry) error {
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
		INSERT INTO activity_log (
			project_id, phase, progress, type, description, severity, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		entry.ProjectID,
		entry.Phase,
		entry.Progress,
		entry.Type,
		entry.Description,
		entry.Severity,
		createdAt,
	)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("activity references missing project: %w", repository.ErrForeignKeyViolation)
	}
	if err != nil {
		return fmt.Errorf("failed to log activity: %w", err)
	}

	id, err := result.LastInsertId()
	if err == nil {
		entry.ID = id
	}

	entry.CreatedAt = createdAt

	return nil
}

// List returns activity entries matching the given filters
func (r *ActivityRepository) List(ctx context.Context, opts activity.ListOptions) ([]activity.ActivityEntry, error) {
	query := `
		SELECT id, project_id, phase, progress, type, description, severity, created_at
		FROM activity_log
		WHERE project_id = ?
	`

	args := []interface{}{opts.ProjectID}

	if opts.Phase != "" {
		query += " AND phase = ?"
		args = append(args, opts.Phase)
	}
	if opts.Type != "" {
		query += " AND type = ?"
		args = append(args, opts.Type)
	}
	if opts.From != nil {
		query += " AND created_at >= ?"
		args = append(args, *opts.From)
	}
	if opts.To != nil {
		query += " AND created_at <= ?"
		args = append(args, *opts.To)
	}

	query += " ORDER BY created_at DESC, id DESC"

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}
	if opts.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, opts.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	var entries []activity.ActivityEntry
	for rows.Next() {
		var entry activity.ActivityEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.ProjectID,
			&entry.Phase,
			&entry.Progress,
			&entry.Type,
			&entry.Description,
			&entry.Severity,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan activity entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity rows: %w", err)
	}

	return entries, nil
}
