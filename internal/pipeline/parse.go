package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rkanno/craftline/internal/domain/artifact"
)

// Review scores assigned to a passing provider check. The provider
// returns prose, not a number, so each side carries a fixed score and
// the composite comes from scoring.CombineQualityScores.
const (
	documentReviewScore = 80.0
	codeReviewScore     = 75.0
)

// interpretOutput turns raw provider text into typed content for the
// stage. A returned error means the output was unusable and the caller
// should fall back to the stage template.
func interpretOutput(stage Stage, in stageInputs, raw string, markers []string) (artifact.Content, error) {
	switch stage {
	case StageDocumentGeneration:
		description := in.project.Description
		if description == "" {
			description = "No description"
		}
		return artifact.Document{
			Title: fmt.Sprintf("%s - %s", in.params.DocumentType, in.project.Name),
			Sections: []artifact.Section{
				{Heading: "Project Overview", Content: description},
				{Heading: "Generated Content", Content: strings.TrimSpace(raw)},
			},
		}, nil
	case StageCodeGeneration:
		return artifact.SourceCode{
			FileName: codeFileName(in.params.Language),
			Language: in.params.Language,
			Text:     stripCodeFences(raw),
		}, nil
	case StageConsistencyCheck:
		blob, err := extractJSON(raw)
		if err != nil {
			return nil, err
		}
		var check artifact.QualityCheck
		if err := json.Unmarshal(blob, &check); err != nil {
			return nil, fmt.Errorf("consistency output: %w", err)
		}
		return check, nil
	case StageQualityCheck:
		side := artifact.KindDocument
		if in.target.Kind == artifact.KindSourceCode {
			side = artifact.KindSourceCode
		}
		return qualityCheckContent(side, strings.TrimSpace(raw), markers), nil
	case StageWorkEstimation:
		blob, err := extractJSON(raw)
		if err != nil {
			return nil, err
		}
		var estimate artifact.WorkEstimate
		if err := json.Unmarshal(blob, &estimate); err != nil {
			return nil, fmt.Errorf("work estimate output: %w", err)
		}
		return estimate, nil
	case StageProposalCreation:
		return proposalContent(in, strings.TrimSpace(raw)), nil
	case StageProgressReport:
		return artifact.ProgressReport{
			OverallProgress: in.overall,
			Phases:          in.phases,
			Narrative:       strings.TrimSpace(raw),
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStage, stage)
}

// extractJSON pulls the first JSON object out of provider text, which
// may wrap it in markdown code fences or surrounding prose.
func extractJSON(text string) ([]byte, error) {
	trimmed := strings.TrimSpace(stripCodeFences(text))
	start := strings.IndexByte(trimmed, '{')
	end := strings.LastIndexByte(trimmed, '}')
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in provider output")
	}
	return []byte(trimmed[start : end+1]), nil
}

// stripCodeFences removes a surrounding markdown fence, with or without
// a language tag.
func stripCodeFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.IndexByte(trimmed, '\n'); idx >= 0 {
		first := strings.TrimSpace(trimmed[:idx])
		if len(first) <= 20 && !strings.ContainsAny(first, "{}();") {
			trimmed = trimmed[idx+1:]
		}
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
