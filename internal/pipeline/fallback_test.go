package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rkanno/craftline/internal/domain/artifact"
	"github.com/rkanno/craftline/internal/scoring"
)

func TestFallbackContentIsValidForEveryStage(t *testing.T) {
	in := stageInputs{
		project: testProject(),
		params:  Params{DocumentType: "requirements", Language: "go", TargetID: "code-1"},
		target: &artifact.Artifact{
			ID:      "code-1",
			Kind:    artifact.KindSourceCode,
			Content: artifact.SourceCode{FileName: "a.go", Language: "go", Text: "package a"},
		},
		document: &artifact.Artifact{
			ID:      "doc-1",
			Kind:    artifact.KindDocument,
			Content: artifact.Document{Title: "requirements", Sections: []artifact.Section{{Heading: "h", Content: "c"}}},
		},
		phases: scoring.AggregatePhaseProgress(nil, DefaultPhases),
	}

	for _, stage := range Stages {
		t.Run(string(stage), func(t *testing.T) {
			content := fallbackContent(stage, in, nil)
			require.NotNil(t, content)
			require.NoError(t, artifact.Validate(content))
			require.NotEmpty(t, artifact.TitleOf(content))
		})
	}
}

func TestFallbackWorkEstimateCoversAllPhases(t *testing.T) {
	phases := []string{"要件定義", "設計", "開発", "テスト", "リリース"}
	estimate := fallbackWorkEstimate(phases)
	require.Len(t, estimate.Breakdown, 5)
	require.Equal(t, "リリース", estimate.Breakdown[4].Phase)
	require.Equal(t, fallbackHours[0], estimate.Breakdown[4].Hours)
}

func TestFallbackQualityCheckScoresMatchSide(t *testing.T) {
	docTarget := stageInputs{
		project: testProject(),
		target:  &artifact.Artifact{Kind: artifact.KindDocument},
	}
	codeTarget := stageInputs{
		project: testProject(),
		target:  &artifact.Artifact{Kind: artifact.KindSourceCode},
	}

	doc := fallbackQualityCheck(docTarget, scoring.DefaultSeverityMarkers)
	require.Equal(t, documentReviewScore, doc.Score)

	code := fallbackQualityCheck(codeTarget, scoring.DefaultSeverityMarkers)
	require.Equal(t, codeReviewScore, code.Score)
}

func TestResolveTemplate(t *testing.T) {
	extra := map[string]string{"slide": "Slides:\n{{content}}"}

	tmpl, found := resolveTemplate(extra, "slide")
	require.True(t, found)
	require.Contains(t, tmpl, "{{content}}")

	tmpl, found = resolveTemplate(extra, "formal")
	require.True(t, found)
	require.NotEmpty(t, tmpl)

	tmpl, found = resolveTemplate(extra, "does-not-exist")
	require.False(t, found)
	require.Equal(t, defaultProposalTemplate, tmpl)

	_, found = resolveTemplate(nil, "")
	require.True(t, found)
}
