package repository

import (
	"context"

	"github.com/rkanno/craftline/internal/domain/activity"
	"github.com/rkanno/craftline/internal/domain/artifact"
	"github.com/rkanno/craftline/internal/domain/project"
)

// ProjectRepository manages project persistence
type ProjectRepository interface {
	Create(ctx context.Context, proj *project.Project) error
	Get(ctx context.Context, id string) (*project.Project, error)
	List(ctx context.Context) ([]project.ProjectSummary, error)
}

// ArtifactRepository manages artifact persistence. Artifacts are
// append-only: there is no update or delete.
type ArtifactRepository interface {
	Insert(ctx context.Context, art *artifact.Artifact) error
	Get(ctx context.Context, id string) (*artifact.Artifact, error)
	List(ctx context.Context, opts ListArtifactsOptions) ([]artifact.Ref, error)
	Latest(ctx context.Context, projectID string, kind artifact.Kind) (*artifact.Artifact, error)
}

// ListArtifactsOptions provides filtering options for listing artifacts.
// Results are always ordered newest first so that readers of competing
// duplicate artifacts see the most recent one.
type ListArtifactsOptions struct {
	ProjectID string
	Kind      artifact.Kind
	DocType   string
	Limit     int
	Offset    int
}

// ActivityRepository manages activity log persistence
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.ActivityEntry) error
	List(ctx context.Context, opts activity.ListOptions) ([]activity.ActivityEntry, error)
}

// SearchRepository manages full-text search over artifacts
type SearchRepository interface {
	Search(ctx context.Context, projectID, query string, opts SearchOptions) ([]artifact.SearchResult, error)
}

// SearchOptions provides filtering options for search
type SearchOptions struct {
	Kind   artifact.Kind
	Limit  int
	Offset int
}
