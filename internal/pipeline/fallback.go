package pipeline

import (
	"fmt"
	"strings"

	"github.com/rkanno/craftline/internal/domain/artifact"
	"github.com/rkanno/craftline/internal/scoring"
)

// Fallback templates. Every stage must hand the caller a usable artifact
// even when the provider fails or returns garbage, so each stage has a
// fixed template filled with whatever real project data was resolved.
// The templates are deterministic: same inputs, same artifact.

// fallbackHours mirrors the original sample estimate of 200 hours over
// four phases. Extra phases cycle through the same values; the total is
// recomputed from the breakdown afterwards either way.
var fallbackHours = []float64{40, 60, 80, 20}

func fallbackContent(stage Stage, in stageInputs, markers []string) artifact.Content {
	switch stage {
	case StageDocumentGeneration:
		return fallbackDocument(in)
	case StageCodeGeneration:
		return fallbackSourceCode(in)
	case StageConsistencyCheck:
		return fallbackConsistencyCheck()
	case StageQualityCheck:
		return fallbackQualityCheck(in, markers)
	case StageWorkEstimation:
		return fallbackWorkEstimate(phaseNames(in.phases))
	case StageProposalCreation:
		return fallbackProposal(in)
	case StageProgressReport:
		return fallbackProgressReport(in)
	}
	return nil
}

func fallbackDocument(in stageInputs) artifact.Document {
	description := in.project.Description
	if description == "" {
		description = "No description"
	}
	return artifact.Document{
		Title: fmt.Sprintf("%s - %s (sample)", in.params.DocumentType, in.project.Name),
		Sections: []artifact.Section{
			{Heading: "Project Overview", Content: description},
			{Heading: "Sample Content", Content: "This is sample data; the generation call did not complete."},
		},
	}
}

func fallbackSourceCode(in stageInputs) artifact.SourceCode {
	return artifact.SourceCode{
		FileName: codeFileName(in.params.Language),
		Language: in.params.Language,
		Text:     "// Sample code: generation failed, replace before use.\nfunction example() {\n  console.log(\"sample data\");\n}\n",
	}
}

func fallbackConsistencyCheck() artifact.QualityCheck {
	return artifact.QualityCheck{
		Score: 78,
		Issues: []artifact.Issue{
			{Type: "requirements", Description: "Some functional requirements are not reflected in the system design", Severity: artifact.SeverityHigh},
			{Type: "design", Description: "Parts of the design specification do not match the test plan", Severity: artifact.SeverityHigh},
		},
		Suggestions: "Re-check the requirements and design documents, then adjust them to match the test plan.",
	}
}

func fallbackQualityCheck(in stageInputs, markers []string) artifact.QualityCheck {
	if in.target != nil && in.target.Kind == artifact.KindSourceCode {
		description := "Sample code check result: no syntax errors, but deprecated functions are in use."
		return qualityCheckContent(artifact.KindSourceCode, description, markers)
	}
	description := "Sample document check result: the document has consistency problems between sections."
	return qualityCheckContent(artifact.KindDocument, description, markers)
}

func fallbackWorkEstimate(phases []string) artifact.WorkEstimate {
	breakdown := make([]artifact.EstimateItem, 0, len(phases))
	for i, phase := range phases {
		breakdown = append(breakdown, artifact.EstimateItem{
			Phase: phase,
			Hours: fallbackHours[i%len(fallbackHours)],
		})
	}
	return artifact.WorkEstimate{Breakdown: breakdown}
}

func fallbackProposal(in stageInputs) artifact.Document {
	return proposalContent(in, "Sample proposal content; the generation call did not complete.")
}

func fallbackProgressReport(in stageInputs) artifact.ProgressReport {
	var b strings.Builder
	fmt.Fprintf(&b, "Progress report for project %q:\n", in.project.Name)
	fmt.Fprintf(&b, "Overall progress: %.0f%%\n", in.overall)
	for _, p := range in.phases {
		fmt.Fprintf(&b, "%s: %.0f%% (%s)\n", p.Name, p.Progress, p.Status)
	}
	if len(in.issues) > 0 {
		b.WriteString("Key issues:\n")
		for _, issue := range in.issues {
			fmt.Fprintf(&b, "%s - %s\n", issue.Description, issue.Severity)
		}
	}
	return artifact.ProgressReport{
		OverallProgress: in.overall,
		Phases:          in.phases,
		Narrative:       b.String(),
	}
}

// qualityCheckContent builds the composite check result for one resolved
// side. The missing side stays absent rather than zero so the composite
// score is the present side's value.
func qualityCheckContent(side artifact.Kind, description string, markers []string) artifact.QualityCheck {
	var docScore, codeScore *float64
	issueType := "document"
	if side == artifact.KindSourceCode {
		issueType = "source_code"
		score := codeReviewScore
		codeScore = &score
	} else {
		score := documentReviewScore
		docScore = &score
	}

	return artifact.QualityCheck{
		Score: scoring.CombineQualityScores(docScore, codeScore),
		Issues: []artifact.Issue{
			{Type: issueType, Description: description, Severity: scoring.SeverityOf(description, markers)},
		},
	}
}

func proposalContent(in stageInputs, body string) artifact.Document {
	tmpl := in.template
	if !strings.Contains(tmpl, templatePlaceholder) {
		tmpl = defaultProposalTemplate
	}
	return artifact.Document{
		Title: fmt.Sprintf("Proposal - %s", in.project.Name),
		Sections: []artifact.Section{
			{Heading: "Proposal", Content: strings.ReplaceAll(tmpl, templatePlaceholder, body)},
		},
	}
}

func codeFileName(language string) string {
	return "generated_code." + strings.ToLower(strings.TrimSpace(language))
}
