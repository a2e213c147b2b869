package artifact

import (
	"fmt"
	"math"
	"strings"
)

// Validate checks content against the structural rules of its kind.
// Violations reported here cannot be auto-corrected; the caller is
// expected to fall back to a template artifact instead.
func Validate(c Content) error {
	switch v := c.(type) {
	case Document:
		if strings.TrimSpace(v.Title) == "" {
			return fmt.Errorf("%w: document title is empty", ErrInvalidContent)
		}
		if len(v.Sections) == 0 {
			return fmt.Errorf("%w: document has no sections", ErrInvalidContent)
		}
	case SourceCode:
		if strings.TrimSpace(v.FileName) == "" {
			return fmt.Errorf("%w: source code file name is empty", ErrInvalidContent)
		}
		if strings.TrimSpace(v.Text) == "" {
			return fmt.Errorf("%w: source code text is empty", ErrInvalidContent)
		}
	case QualityCheck:
		if v.Score < 0 || v.Score > 100 || math.IsNaN(v.Score) {
			return fmt.Errorf("%w: quality score %.2f out of range", ErrInvalidContent, v.Score)
		}
	case WorkEstimate:
		if len(v.Breakdown) == 0 {
			return fmt.Errorf("%w: work estimate has no breakdown", ErrInvalidContent)
		}
		for _, item := range v.Breakdown {
			if strings.TrimSpace(item.Phase) == "" {
				return fmt.Errorf("%w: breakdown item has no phase name", ErrInvalidContent)
			}
			if item.Hours < 0 || math.IsNaN(item.Hours) {
				return fmt.Errorf("%w: negative hours for phase %q", ErrInvalidContent, item.Phase)
			}
		}
	case ProgressReport:
		for _, p := range v.Phases {
			if p.Progress < 0 || p.Progress > 100 || math.IsNaN(p.Progress) {
				return fmt.Errorf("%w: progress %.2f out of range for phase %q", ErrInvalidContent, p.Progress, p.Name)
			}
		}
	default:
		return fmt.Errorf("%w: %T", ErrUnknownKind, c)
	}
	return nil
}

// Normalize recomputes the derived fields of content regardless of where
// it came from: total hours from the breakdown, phase status from the
// progress value, and issue severities coerced into the known set. It
// returns the normalized content plus a warning per adjusted field.
func Normalize(c Content) (Content, []string) {
	var warnings []string

	switch v := c.(type) {
	case QualityCheck:
		for i, issue := range v.Issues {
			switch issue.Severity {
			case SeverityLow, SeverityMedium, SeverityHigh:
			default:
				warnings = append(warnings, fmt.Sprintf("issue %d severity %q coerced to medium", i, issue.Severity))
				v.Issues[i].Severity = SeverityMedium
			}
		}
		return v, warnings
	case WorkEstimate:
		var sum float64
		for _, item := range v.Breakdown {
			sum += item.Hours
		}
		if v.TotalHours != sum {
			warnings = append(warnings, fmt.Sprintf("total_hours recomputed from breakdown (%.2f -> %.2f)", v.TotalHours, sum))
			v.TotalHours = sum
		}
		return v, warnings
	case ProgressReport:
		for i, p := range v.Phases {
			want := StatusInProgress
			if p.Progress == 100 {
				want = StatusComplete
			}
			if p.Status != want {
				warnings = append(warnings, fmt.Sprintf("phase %q status adjusted to %s", p.Name, want))
				v.Phases[i].Status = want
			}
		}
		return v, warnings
	}

	return c, nil
}
