package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rkanno/craftline/internal/domain/activity"
	"github.com/rkanno/craftline/internal/domain/artifact"
	"github.com/rkanno/craftline/internal/domain/project"
	"github.com/rkanno/craftline/internal/repository"
)

// ProjectRepository is a mock for repository.ProjectRepository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) List(ctx context.Context) ([]project.ProjectSummary, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.ProjectSummary); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ArtifactRepository is a mock for repository.ArtifactRepository.
type ArtifactRepository struct {
	mock.Mock
}

func (m *ArtifactRepository) Insert(ctx context.Context, art *artifact.Artifact) error {
	args := m.Called(ctx, art)
	return args.Error(0)
}

func (m *ArtifactRepository) Get(ctx context.Context, id string) (*artifact.Artifact, error) {
	args := m.Called(ctx, id)
	if art, ok := args.Get(0).(*artifact.Artifact); ok {
		return art, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ArtifactRepository) List(ctx context.Context, opts repository.ListArtifactsOptions) ([]artifact.Ref, error) {
	args := m.Called(ctx, opts)
	if refs, ok := args.Get(0).([]artifact.Ref); ok {
		return refs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ArtifactRepository) Latest(ctx context.Context, projectID string, kind artifact.Kind) (*artifact.Artifact, error) {
	args := m.Called(ctx, projectID, kind)
	if art, ok := args.Get(0).(*artifact.Artifact); ok {
		return art, args.Error(1)
	}
	return nil, args.Error(1)
}

// ActivityRepository is a mock for repository.ActivityRepository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, opts)
	if entries, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return entries, args.Error(1)
	}
	return nil, args.Error(1)
}

// SearchRepository is a mock for repository.SearchRepository.
type SearchRepository struct {
	mock.Mock
}

func (m *SearchRepository) Search(ctx context.Context, projectID, query string, opts repository.SearchOptions) ([]artifact.SearchResult, error) {
	args := m.Called(ctx, projectID, query, opts)
	if results, ok := args.Get(0).([]artifact.SearchResult); ok {
		return results, args.Error(1)
	}
	return nil, args.Error(1)
}
