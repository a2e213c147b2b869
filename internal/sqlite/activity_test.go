package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rkanno/craftline/internal/domain/activity"
	"github.com/rkanno/craftline/internal/repository"
)

func TestActivityLogAndList(t *testing.T) {
	db := NewTestDB(t)
	repo := NewActivityRepository(db)
	proj := createTestProject(t, db)
	ctx := context.Background()

	entry := &activity.ActivityEntry{
		ProjectID:   proj.ID,
		Phase:       "設計",
		Progress:    40,
		Type:        activity.TypeProgress,
		Description: "schema drafted",
	}
	require.NoError(t, repo.Log(ctx, entry))
	require.NotZero(t, entry.ID)
	require.False(t, entry.CreatedAt.IsZero())

	entries, err := repo.List(ctx, activity.ListOptions{ProjectID: proj.ID})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "設計", entries[0].Phase)
	require.Equal(t, float64(40), entries[0].Progress)
}

func TestActivityLogUnknownProject(t *testing.T) {
	db := NewTestDB(t)
	repo := NewActivityRepository(db)

	err := repo.Log(context.Background(), &activity.ActivityEntry{
		ProjectID: "missing",
		Phase:     "設計",
		Progress:  10,
		Type:      activity.TypeProgress,
	})
	require.ErrorIs(t, err, repository.ErrForeignKeyViolation)
}

func TestActivityListFilters(t *testing.T) {
	db := NewTestDB(t)
	repo := NewActivityRepository(db)
	proj := createTestProject(t, db)
	ctx := context.Background()

	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	seed := []activity.ActivityEntry{
		{ProjectID: proj.ID, Phase: "設計", Progress: 50, Type: activity.TypeProgress, CreatedAt: base},
		{ProjectID: proj.ID, Phase: "開発", Progress: 10, Type: activity.TypeProgress, CreatedAt: base.Add(24 * time.Hour)},
		{ProjectID: proj.ID, Phase: "開発", Progress: 10, Type: activity.TypeIssue, Description: "flaky build", Severity: "high", CreatedAt: base.Add(48 * time.Hour)},
	}
	for i := range seed {
		require.NoError(t, repo.Log(ctx, &seed[i]))
	}

	byPhase, err := repo.List(ctx, activity.ListOptions{ProjectID: proj.ID, Phase: "開発"})
	require.NoError(t, err)
	require.Len(t, byPhase, 2)

	byType, err := repo.List(ctx, activity.ListOptions{ProjectID: proj.ID, Type: activity.TypeIssue})
	require.NoError(t, err)
	require.Len(t, byType, 1)
	require.Equal(t, "flaky build", byType[0].Description)

	from := base.Add(12 * time.Hour)
	to := base.Add(36 * time.Hour)
	byPeriod, err := repo.List(ctx, activity.ListOptions{ProjectID: proj.ID, From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, byPeriod, 1)

	limited, err := repo.List(ctx, activity.ListOptions{ProjectID: proj.ID, Limit: 2})
	require.NoError(t, err)
	require.Len(t, limited, 2)
}

func TestActivityListNewestFirst(t *testing.T) {
	db := NewTestDB(t)
	repo := NewActivityRepository(db)
	proj := createTestProject(t, db)
	ctx := context.Background()

	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	first := &activity.ActivityEntry{ProjectID: proj.ID, Phase: "設計", Progress: 10, Type: activity.TypeProgress, CreatedAt: base}
	second := &activity.ActivityEntry{ProjectID: proj.ID, Phase: "設計", Progress: 20, Type: activity.TypeProgress, CreatedAt: base.Add(time.Hour)}
	require.NoError(t, repo.Log(ctx, first))
	require.NoError(t, repo.Log(ctx, second))

	entries, err := repo.List(ctx, activity.ListOptions{ProjectID: proj.ID})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, second.ID, entries[0].ID)
}
