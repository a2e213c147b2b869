package artifact_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rkanno/craftline/internal/domain/artifact"
)

func TestValidate_RejectsStructuralViolations(t *testing.T) {
	cases := []struct {
		name    string
		content artifact.Content
	}{
		{"empty document", artifact.Document{Title: "t"}},
		{"untitled document", artifact.Document{Sections: []artifact.Section{{Heading: "h", Content: "c"}}}},
		{"empty code", artifact.SourceCode{FileName: "main.go", Language: "go"}},
		{"score out of range", artifact.QualityCheck{Score: 120}},
		{"negative score", artifact.QualityCheck{Score: -1}},
		{"empty breakdown", artifact.WorkEstimate{TotalHours: 10}},
		{"negative hours", artifact.WorkEstimate{Breakdown: []artifact.EstimateItem{{Phase: "設計", Hours: -5}}}},
		{"progress out of range", artifact.ProgressReport{Phases: []artifact.PhaseProgress{{Name: "設計", Progress: 140}}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := artifact.Validate(tc.content)
			require.ErrorIs(t, err, artifact.ErrInvalidContent)
		})
	}
}

func TestValidate_AcceptsWellFormedContent(t *testing.T) {
	require.NoError(t, artifact.Validate(artifact.Document{
		Title:    "設計書 - demo",
		Sections: []artifact.Section{{Heading: "overview", Content: "text"}},
	}))
	require.NoError(t, artifact.Validate(artifact.QualityCheck{Score: 0}))
	require.NoError(t, artifact.Validate(artifact.WorkEstimate{
		Breakdown: []artifact.EstimateItem{{Phase: "設計", Hours: 0}},
	}))
}

func TestNormalize_RecomputesTotalHours(t *testing.T) {
	content, warnings := artifact.Normalize(artifact.WorkEstimate{
		TotalHours: 999,
		Breakdown: []artifact.EstimateItem{
			{Phase: "要件定義", Hours: 40},
			{Phase: "設計", Hours: 60},
		},
	})

	estimate := content.(artifact.WorkEstimate)
	require.Equal(t, 100.0, estimate.TotalHours)
	require.Len(t, warnings, 1)
}

func TestNormalize_TotalAlreadyConsistent(t *testing.T) {
	content, warnings := artifact.Normalize(artifact.WorkEstimate{
		TotalHours: 100,
		Breakdown: []artifact.EstimateItem{
			{Phase: "要件定義", Hours: 40},
			{Phase: "設計", Hours: 60},
		},
	})

	estimate := content.(artifact.WorkEstimate)
	require.Equal(t, 100.0, estimate.TotalHours)
	require.Empty(t, warnings)
}

func TestNormalize_PhaseStatusFollowsProgress(t *testing.T) {
	content, warnings := artifact.Normalize(artifact.ProgressReport{
		Phases: []artifact.PhaseProgress{
			{Name: "設計", Progress: 100, Status: artifact.StatusInProgress},
			{Name: "開発", Progress: 60, Status: artifact.StatusComplete},
			{Name: "テスト", Progress: 0, Status: artifact.StatusInProgress},
		},
	})

	report := content.(artifact.ProgressReport)
	require.Equal(t, artifact.StatusComplete, report.Phases[0].Status)
	require.Equal(t, artifact.StatusInProgress, report.Phases[1].Status)
	require.Equal(t, artifact.StatusInProgress, report.Phases[2].Status)
	require.Len(t, warnings, 2)
}

func TestNormalize_CoercesUnknownSeverity(t *testing.T) {
	content, warnings := artifact.Normalize(artifact.QualityCheck{
		Score: 80,
		Issues: []artifact.Issue{
			{Type: "doc", Description: "d", Severity: "高"},
			{Type: "code", Description: "c", Severity: artifact.SeverityLow},
		},
	})

	check := content.(artifact.QualityCheck)
	require.Equal(t, artifact.SeverityMedium, check.Issues[0].Severity)
	require.Equal(t, artifact.SeverityLow, check.Issues[1].Severity)
	require.Len(t, warnings, 1)
}

func TestDecodeContent_DispatchesOnKind(t *testing.T) {
	raw := []byte(`{"total_hours":200,"breakdown":[{"phase":"設計","hours":60}]}`)

	content, err := artifact.DecodeContent(artifact.KindWorkEstimate, raw)
	require.NoError(t, err)
	estimate, ok := content.(artifact.WorkEstimate)
	require.True(t, ok)
	require.Equal(t, 200.0, estimate.TotalHours)

	_, err = artifact.DecodeContent(artifact.Kind("bogus"), raw)
	require.ErrorIs(t, err, artifact.ErrUnknownKind)
}
