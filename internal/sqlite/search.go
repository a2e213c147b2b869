package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rkanno/craftline/internal/domain/artifact"
	"github.com/rkanno/craftline/internal/repository"
)

// SearchRepository implements repository.SearchRepository for SQLite
type SearchRepository struct {
	db *DB
}

// NewSearchRepository creates a new SearchRepository
func NewSearchRepository(db *DB) *SearchRepository {
	return &SearchRepository{db: db}
}

// Search performs a full-text search over a project's artifacts
func (r *SearchRepository) Search(ctx context.Context, projectID, query string, opts repository.SearchOptions) ([]artifact.SearchResult, error) {
	baseQuery := `
		SELECT
			a.id, a.project_id, a.kind, a.doc_type, a.provenance, a.title, a.created_at,
			artifacts_fts.rank as rank,
			snippet(artifacts_fts, 1, '[', ']', '...', 12) as snippet
		FROM artifacts_fts
		JOIN artifacts a ON a.rowid = artifacts_fts.rowid
		WHERE a.project_id = ? AND artifacts_fts MATCH ?
	`

	args := []interface{}{projectID, query}

	if opts.Kind != "" {
		baseQuery += " AND a.kind = ?"
		args = append(args, opts.Kind)
	}

	baseQuery += " ORDER BY rank"

	if opts.Limit > 0 {
		baseQuery += " LIMIT ?"
		args = append(args, opts.Limit)
	}
	if opts.Offset > 0 {
		baseQuery += " OFFSET ?"
		args = append(args, opts.Offset)
	}

	rows, err := r.db.QueryContext(ctx, baseQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search artifacts: %w", err)
	}
	defer rows.Close()

	var results []artifact.SearchResult
	for rows.Next() {
		var result artifact.SearchResult
		var docType sql.NullString
		err := rows.Scan(
			&result.Artifact.ID,
			&result.Artifact.ProjectID,
			&result.Artifact.Kind,
			&docType,
			&result.Artifact.Provenance,
			&result.Artifact.Title,
			&result.Artifact.CreatedAt,
			&result.Rank,
			&result.Snippet,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan search result: %w", err)
		}
		if docType.Valid {
			result.Artifact.DocType = docType.String
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating search results: %w", err)
	}

	return results, nil
}
