package pipeline

import (
	"context"

	"github.com/rkanno/craftline/internal/domain/activity"
	"github.com/rkanno/craftline/internal/domain/artifact"
	"github.com/rkanno/craftline/internal/domain/project"
	"github.com/rkanno/craftline/internal/repository"
)

// ProjectRepository provides project lookups for stage runs.
type ProjectRepository interface {
	Get(ctx context.Context, id string) (*project.Project, error)
}

// ArtifactRepository provides artifact persistence for stage runs.
type ArtifactRepository interface {
	Insert(ctx context.Context, art *artifact.Artifact) error
	Get(ctx context.Context, id string) (*artifact.Artifact, error)
	List(ctx context.Context, opts repository.ListArtifactsOptions) ([]artifact.Ref, error)
}

// ActivityRepository provides the activity log read side.
type ActivityRepository interface {
	List(ctx context.Context, opts activity.ListOptions) ([]activity.ActivityEntry, error)
}

// GenerationProvider produces generated text for a provider role label.
type GenerationProvider interface {
	Generate(ctx context.Context, role, systemPrompt, userPrompt string) (string, error)
}
