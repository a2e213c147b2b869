package pipeline

import (
	"fmt"
	"strings"

	"github.com/rkanno/craftline/internal/domain/artifact"
	"github.com/rkanno/craftline/internal/domain/project"
)

// Prompt is one assembled provider instruction pair. Construction is
// pure and deterministic given the same inputs so that runs are
// reproducible under a mocked provider.
type Prompt struct {
	System string
	User   string
}

// stageInputs carries everything resolved from the store for one run.
type stageInputs struct {
	project   *project.Project
	params    Params
	document  *artifact.Artifact
	target    *artifact.Artifact
	documents []artifact.Ref
	template  string
	phases    []artifact.PhaseProgress
	overall   float64
	issues    []artifact.Issue
}

func buildPrompt(stage Stage, in stageInputs) Prompt {
	switch stage {
	case StageDocumentGeneration:
		return Prompt{
			System: fmt.Sprintf("Create a %s document for the project %q.", in.params.DocumentType, in.project.Name),
			User: fmt.Sprintf("Base information for the project:\nProject name: %s\nDescription: %s\nGenerate an appropriate development document from this information.",
				in.project.Name, in.project.Description),
		}
	case StageCodeGeneration:
		return Prompt{
			System: fmt.Sprintf("Generate %s source code implementing the following design document. Respond with the code only.", in.params.Language),
			User:   flattenDocument(in.document),
		}
	case StageConsistencyCheck:
		return Prompt{
			System: fmt.Sprintf("Evaluate the consistency and completeness of the document %q. "+
				`Respond with JSON: {"score": 0-100, "issues": [{"type": string, "description": string, "severity": "low"|"medium"|"high"}], "suggestions": string}.`,
				in.document.Title),
			User: flattenDocument(in.document),
		}
	case StageQualityCheck:
		if in.target.Kind == artifact.KindSourceCode {
			return Prompt{
				System: "Check the source code for syntax errors and best practice violations.",
				User:   flattenArtifact(in.target),
			}
		}
		return Prompt{
			System: "Check the document for consistency and completeness.",
			User:   flattenArtifact(in.target),
		}
	case StageWorkEstimation:
		return Prompt{
			System: fmt.Sprintf("Estimate the development effort in hours for each phase (%s). "+
				`Respond with JSON: {"total_hours": number, "breakdown": [{"phase": string, "hours": number}]}.`,
				strings.Join(phaseNames(in.phases), ", ")),
			User: fmt.Sprintf("Project name: %s\nDescription: %s\nEstimate the effort with a per-phase breakdown.", in.project.Name, in.project.Description),
		}
	case StageProposalCreation:
		var docs strings.Builder
		for _, ref := range in.documents {
			fmt.Fprintf(&docs, "- %s (%s)\n", ref.Title, ref.DocType)
		}
		return Prompt{
			System: "Write a project proposal based on the project information and its existing documents.",
			User: fmt.Sprintf("Project name: %s\nProject summary: %s\nRelated documents:\n%sCreate a proposal for this project.",
				in.project.Name, in.project.Description, docs.String()),
		}
	case StageProgressReport:
		var b strings.Builder
		fmt.Fprintf(&b, "Project: %s\n", in.project.Name)
		fmt.Fprintf(&b, "Period: %s to %s\n", in.params.PeriodFrom.Format("2006-01-02"), in.params.PeriodTo.Format("2006-01-02"))
		fmt.Fprintf(&b, "Overall progress: %.0f%%\n", in.overall)
		b.WriteString("Phase progress:\n")
		for _, p := range in.phases {
			fmt.Fprintf(&b, "%s: %.0f%% (%s)\n", p.Name, p.Progress, p.Status)
		}
		if len(in.issues) == 0 {
			b.WriteString("Issues: none\n")
		} else {
			b.WriteString("Issues:\n")
			for _, issue := range in.issues {
				fmt.Fprintf(&b, "%s - %s\n", issue.Description, issue.Severity)
			}
		}
		b.WriteString("Write the summary narrative.")
		return Prompt{
			System: "You are a project management expert. Produce a progress summary from the per-phase progress and the open issues.",
			User:   b.String(),
		}
	}
	return Prompt{}
}

func phaseNames(phases []artifact.PhaseProgress) []string {
	names := make([]string, 0, len(phases))
	for _, p := range phases {
		names = append(names, p.Name)
	}
	return names
}

func flattenDocument(art *artifact.Artifact) string {
	if art == nil {
		return ""
	}
	return flattenArtifact(art)
}

func flattenArtifact(art *artifact.Artifact) string {
	var b strings.Builder
	b.WriteString(art.Title)
	b.WriteString("\n")
	b.WriteString(artifact.SearchTextOf(art.Content))
	return b.String()
}
