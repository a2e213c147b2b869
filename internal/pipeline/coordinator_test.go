package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rkanno/craftline/internal/domain/artifact"
	"github.com/rkanno/craftline/internal/repository/mocks"
)

func newTestCoordinator(t *testing.T) (*Coordinator, *mocks.ProjectRepository, *mocks.ArtifactRepository) {
	t.Helper()
	exec, projects, artifacts, _ := newTestExecutor(t, failingProvider())
	return NewCoordinator(exec, slog.New(slog.DiscardHandler)), projects, artifacts
}

func TestRunRejectsUnknownStage(t *testing.T) {
	coord, _, _ := newTestCoordinator(t)
	_, err := coord.Run(context.Background(), "deploy", "proj-1", Params{})
	require.ErrorIs(t, err, ErrUnknownStage)
}

func TestRunValidatesParams(t *testing.T) {
	later := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	earlier := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		stage  string
		params Params
	}{
		{"document generation without type", "document_generation", Params{}},
		{"code generation without document", "code_generation", Params{Language: "go"}},
		{"code generation without language", "code_generation", Params{DocumentID: "doc-1"}},
		{"consistency check without document", "consistency_check", Params{}},
		{"quality check without target", "quality_check", Params{}},
		{"progress report with inverted period", "progress_report", Params{PeriodFrom: later, PeriodTo: earlier}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			coord, _, _ := newTestCoordinator(t)
			_, err := coord.Run(context.Background(), tc.stage, "proj-1", tc.params)
			require.ErrorIs(t, err, ErrInvalidParams)
		})
	}
}

func TestRunRequiresProjectID(t *testing.T) {
	coord, _, _ := newTestCoordinator(t)
	_, err := coord.Run(context.Background(), "document_generation", "  ", Params{DocumentType: "requirements"})
	require.ErrorIs(t, err, ErrInvalidParams)
}

func TestRunCompletedOnFallback(t *testing.T) {
	coord, projects, artifacts := newTestCoordinator(t)
	projects.On("Get", mock.Anything, "proj-1").Return(testProject(), nil)
	artifacts.On("Insert", mock.Anything, mock.Anything).Return(nil)

	result, err := coord.Run(context.Background(), "document_generation", "proj-1", Params{DocumentType: "requirements"})
	require.NoError(t, err)
	require.Equal(t, RunCompleted, result.State)
	require.Equal(t, artifact.ProvenanceFallback, result.Provenance)
}

func TestRunReportsFailedState(t *testing.T) {
	coord, projects, artifacts := newTestCoordinator(t)
	projects.On("Get", mock.Anything, "proj-1").Return(testProject(), nil)
	artifacts.On("Insert", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	result, err := coord.Run(context.Background(), "document_generation", "proj-1", Params{DocumentType: "requirements"})
	require.ErrorIs(t, err, ErrStorage)
	require.Equal(t, RunFailed, result.State)
}
