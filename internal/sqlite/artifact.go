package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rkanno/craftline/internal/domain/artifact"
	"github.com/rkanno/craftline/internal/repository"
)

// ArtifactRepository implements repository.ArtifactRepository for SQLite
type ArtifactRepository struct {
	db *DB
}

// NewArtifactRepository creates a new ArtifactRepository
func NewArtifactRepository(db *DB) *ArtifactRepository {
	return &ArtifactRepository{db: db}
}

// Insert appends a new artifact. Artifacts are immutable once written.
func (r *ArtifactRepository) Insert(ctx context.Context, art *artifact.Artifact) error {
	if !artifact.ValidKind(art.Kind) {
		return fmt.Errorf("unknown artifact kind %q: %w", art.Kind, repository.ErrInvalidInput)
	}

	content, err := artifact.EncodeContent(art.Content)
	if err != nil {
		return fmt.Errorf("failed to encode artifact content: %w", err)
	}

	createdAt := art.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
		art.CreatedAt = createdAt
	}

	query := `
		INSERT INTO artifacts (
			id, project_id, kind, doc_type, provenance,
			title, content, search_text, supersedes, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		art.ID,
		art.ProjectID,
		art.Kind,
		art.DocType,
		art.Provenance,
		art.Title,
		string(content),
		artifact.SearchTextOf(art.Content),
		art.Supersedes,
		createdAt,
	)

	if isForeignKeyViolation(err) {
		return fmt.Errorf("artifact references missing row: %w", repository.ErrForeignKeyViolation)
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("artifact %s already exists: %w", art.ID, repository.ErrInvalidInput)
	}
	if err != nil {
		return fmt.Errorf("failed to insert artifact: %w", err)
	}

	return nil
}

// Get retrieves an artifact by ID, including its decoded content
func (r *ArtifactRepository) Get(ctx context.Context, id string) (*artifact.Artifact, error) {
	query := `
		SELECT id, project_id, kind, doc_type, provenance, title, content, supersedes, created_at
		FROM artifacts
		WHERE id = ?
	`

	var art artifact.Artifact
	var content string
	var docType sql.NullString
	var supersedes sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&art.ID,
		&art.ProjectID,
		&art.Kind,
		&docType,
		&art.Provenance,
		&art.Title,
		&content,
		&supersedes,
		&art.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get artifact: %w", err)
	}

	if docType.Valid {
		art.DocType = docType.String
	}
	if supersedes.Valid {
		art.Supersedes = &supersedes.String
	}

	art.Content, err = artifact.DecodeContent(art.Kind, json.RawMessage(content))
	if err != nil {
		return nil, fmt.Errorf("failed to decode artifact %s content: %w", id, err)
	}

	return &art, nil
}

// List returns artifact references matching the filters, newest first.
// Newest-first ordering is what makes duplicate artifacts resolve to the
// most recently created one.
func (r *ArtifactRepository) List(ctx context.Context, opts repository.ListArtifactsOptions) ([]artifact.Ref, error) {
	query := `
		SELECT id, project_id, kind, doc_type, provenance, title, created_at
		FROM artifacts
		WHERE project_id = ?
	`

	args := []interface{}{opts.ProjectID}

	if opts.Kind != "" {
		query += " AND kind = ?"
		args = append(args, opts.Kind)
	}
	if opts.DocType != "" {
		query += " AND doc_type = ?"
		args = append(args, opts.DocType)
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
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}
	defer rows.Close()

	var refs []artifact.Ref
	for rows.Next() {
		ref, err := scanRef(rows)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating artifact rows: %w", err)
	}

	return refs, nil
}

// Latest returns the most recent artifact of a kind for a project
func (r *ArtifactRepository) Latest(ctx context.Context, projectID string, kind artifact.Kind) (*artifact.Artifact, error) {
	query := `
		SELECT id
		FROM artifacts
		WHERE project_id = ? AND kind = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`

	var id string
	err := r.db.QueryRowContext(ctx, query, projectID, kind).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find latest artifact: %w", err)
	}

	return r.Get(ctx, id)
}

func scanRef(rows *sql.Rows) (artifact.Ref, error) {
	var ref artifact.Ref
	var docType sql.NullString
	err := rows.Scan(
		&ref.ID,
		&ref.ProjectID,
		&ref.Kind,
		&docType,
		&ref.Provenance,
		&ref.Title,
		&ref.CreatedAt,
	)
	if err != nil {
		return ref, fmt.Errorf("failed to scan artifact ref: %w", err)
	}
	if docType.Valid {
		ref.DocType = docType.String
	}
	return ref, nil
}
