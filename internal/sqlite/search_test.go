package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/rkanno/craftline/internal/domain/artifact"
	"github.com/rkanno/craftline/internal/repository"
)

func TestSearchFindsArtifactText(t *testing.T) {
	db := NewTestDB(t)
	artifacts := NewArtifactRepository(db)
	search := NewSearchRepository(db)
	proj := createTestProject(t, db)
	ctx := context.Background()

	require.NoError(t, artifacts.Insert(ctx, &artifact.Artifact{
		ID:         uuid.NewString(),
		ProjectID:  proj.ID,
		Kind:       artifact.KindDocument,
		DocType:    "requirements",
		Provenance: artifact.ProvenanceGenerated,
		Title:      "requirements - Inventory System",
		Content: artifact.Document{
			Title:    "requirements - Inventory System",
			Sections: []artifact.Section{{Heading: "Overview", Content: "barcode scanning support"}},
		},
		CreatedAt: time.Now(),
	}))

	results, err := search.Search(ctx, proj.ID, "barcode", repository.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "requirements - Inventory System", results[0].Artifact.Title)
	require.Equal(t, "requirements", results[0].Artifact.DocType)
}

func TestSearchScopedToProject(t *testing.T) {
	db := NewTestDB(t)
	artifacts := NewArtifactRepository(db)
	search := NewSearchRepository(db)
	ctx := context.Background()

	projA := createTestProject(t, db)
	projB := createTestProject(t, db)

	require.NoError(t, artifacts.Insert(ctx, &artifact.Artifact{
		ID:         uuid.NewString(),
		ProjectID:  projA.ID,
		Kind:       artifact.KindDocument,
		Provenance: artifact.ProvenanceGenerated,
		Title:      "design notes",
		Content: artifact.Document{
			Title:    "design notes",
			Sections: []artifact.Section{{Heading: "h", Content: "shared keyword telemetry"}},
		},
	}))

	results, err := search.Search(ctx, projB.ID, "telemetry", repository.SearchOptions{})
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestSearchFiltersByKind(t *testing.T) {
	db := NewTestDB(t)
	artifacts := NewArtifactRepository(db)
	search := NewSearchRepository(db)
	proj := createTestProject(t, db)
	ctx := context.Background()

	require.NoError(t, artifacts.Insert(ctx, &artifact.Artifact{
		ID:         uuid.NewString(),
		ProjectID:  proj.ID,
		Kind:       artifact.KindSourceCode,
		Provenance: artifact.ProvenanceGenerated,
		Title:      "generated_code.go",
		Content:    artifact.SourceCode{FileName: "generated_code.go", Language: "go", Text: "func telemetry() {}"},
	}))

	hits, err := search.Search(ctx, proj.ID, "telemetry", repository.SearchOptions{Kind: artifact.KindSourceCode})
	require.NoError(t, err)
	require.Len(t, hits, 1)

	none, err := search.Search(ctx, proj.ID, "telemetry", repository.SearchOptions{Kind: artifact.KindDocument})
	require.NoError(t, err)
	require.Empty(t, none)
}
