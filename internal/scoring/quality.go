package scoring

import (
	"strings"

	"github.com/rkanno/craftline/internal/domain/artifact"
)

// DefaultSeverityMarkers are the substrings that flag an issue
// description as high severity. The original system hard-coded a single
// keyword per check; the set is configurable here.
var DefaultSeverityMarkers = []string{
	"問題",
	"エラー",
	"error",
	"inconsistent",
	"missing",
	"critical",
}

// CombineQualityScores combines document and code sub-scores into a
// composite. A nil pointer means the sub-score is missing, which is
// distinct from a legitimate score of 0: both present averages, exactly
// one present passes through, neither yields 0.
func CombineQualityScores(docScore, codeScore *float64) float64 {
	switch {
	case docScore != nil && codeScore != nil:
		return (*docScore + *codeScore) / 2
	case docScore != nil:
		return *docScore
	case codeScore != nil:
		return *codeScore
	}
	return 0
}

// SeverityOf classifies an issue description as high severity when any
// marker substring matches, low otherwise. Matching is case-insensitive.
func SeverityOf(text string, markers []string) artifact.Severity {
	if len(markers) == 0 {
		markers = DefaultSeverityMarkers
	}
	lowered := strings.ToLower(text)
	for _, marker := range markers {
		if marker == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(marker)) {
			return artifact.SeverityHigh
		}
	}
	return artifact.SeverityLow
}
