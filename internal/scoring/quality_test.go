package scoring_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rkanno/craftline/internal/domain/artifact"
	"github.com/rkanno/craftline/internal/scoring"
)

func ptr(v float64) *float64 { return &v }

func TestCombineQualityScores(t *testing.T) {
	require.Equal(t, 77.5, scoring.CombineQualityScores(ptr(80), ptr(75)))
	require.Equal(t, 80.0, scoring.CombineQualityScores(ptr(80), nil))
	require.Equal(t, 75.0, scoring.CombineQualityScores(nil, ptr(75)))
	require.Equal(t, 0.0, scoring.CombineQualityScores(nil, nil))
}

func TestCombineQualityScores_ZeroIsNotMissing(t *testing.T) {
	// A zero sub-score still counts toward the composite.
	require.Equal(t, 40.0, scoring.CombineQualityScores(ptr(0), ptr(80)))
	require.Equal(t, 0.0, scoring.CombineQualityScores(ptr(0), nil))
}

func TestSeverityOf(t *testing.T) {
	markers := []string{"問題", "error"}

	require.Equal(t, artifact.SeverityHigh, scoring.SeverityOf("セクション間に問題があります", markers))
	require.Equal(t, artifact.SeverityHigh, scoring.SeverityOf("syntax ERROR on line 3", markers))
	require.Equal(t, artifact.SeverityLow, scoring.SeverityOf("looks fine overall", markers))
}

func TestSeverityOf_DefaultMarkers(t *testing.T) {
	require.Equal(t, artifact.SeverityHigh, scoring.SeverityOf("missing requirement coverage", nil))
	require.Equal(t, artifact.SeverityLow, scoring.SeverityOf("well structured", nil))
}
