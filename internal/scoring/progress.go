// Package scoring holds the pure aggregation functions of the pipeline:
// phase progress averaging, composite quality scores, and the keyword
// severity heuristic. Nothing in here performs I/O.
package scoring

import (
	"github.com/rkanno/craftline/internal/domain/activity"
	"github.com/rkanno/craftline/internal/domain/artifact"
)

// AggregatePhaseProgress averages the progress of log entries per phase
// name. A phase with no matching entries reports 0 and in-progress; a
// phase is complete only when its average is exactly 100.
func AggregatePhaseProgress(logs []activity.ActivityEntry, phaseNames []string) []artifact.PhaseProgress {
	phases := make([]artifact.PhaseProgress, 0, len(phaseNames))
	for _, name := range phaseNames {
		var sum float64
		var count int
		for _, entry := range logs {
			if entry.Phase == name {
				sum += entry.Progress
				count++
			}
		}

		progress := 0.0
		if count > 0 {
			progress = sum / float64(count)
		}

		status := artifact.StatusInProgress
		if progress == 100 {
			status = artifact.StatusComplete
		}

		phases = append(phases, artifact.PhaseProgress{
			Name:     name,
			Progress: progress,
			Status:   status,
		})
	}
	return phases
}

// AggregateOverallProgress returns the arithmetic mean of phase progress
// values, or 0 for an empty phase list.
func AggregateOverallProgress(phases []artifact.PhaseProgress) float64 {
	if len(phases) == 0 {
		return 0
	}
	var sum float64
	for _, p := range phases {
		sum += p.Progress
	}
	return sum / float64(len(phases))
}

// CollectIssues extracts issue-typed log entries as check issues, for
// inclusion in progress report prompts.
func CollectIssues(logs []activity.ActivityEntry) []artifact.Issue {
	var issues []artifact.Issue
	for _, entry := range logs {
		if entry.Type != activity.TypeIssue {
			continue
		}
		severity := artifact.Severity(entry.Severity)
		switch severity {
		case artifact.SeverityLow, artifact.SeverityMedium, artifact.SeverityHigh:
		default:
			severity = artifact.SeverityMedium
		}
		issues = append(issues, artifact.Issue{
			Type:        entry.Phase,
			Description: entry.Description,
			Severity:    severity,
		})
	}
	return issues
}
