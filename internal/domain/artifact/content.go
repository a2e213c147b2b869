package artifact

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Severity classifies an issue found by a check stage.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// PhaseStatus marks whether a project phase is finished.
type PhaseStatus string

const (
	StatusInProgress PhaseStatus = "in-progress"
	StatusComplete   PhaseStatus = "complete"
)

// Content is the tagged-variant payload of an artifact. Exactly one
// concrete type exists per Kind; DecodeContent selects it from the kind tag.
type Content interface {
	ContentKind() Kind
}

// Section is one heading/body pair of a document.
type Section struct {
	Heading string `json:"heading"`
	Content string `json:"content"`
}

// Document is the content of document and proposal artifacts.
type Document struct {
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

func (Document) ContentKind() Kind { return KindDocument }

// SourceCode is the content of a generated source file.
type SourceCode struct {
	FileName string `json:"file_name"`
	Language string `json:"language"`
	Text     string `json:"text"`
}

func (SourceCode) ContentKind() Kind { return KindSourceCode }

// Issue is a single finding of a consistency or quality check.
type Issue struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// QualityCheck is the content of consistency-check and quality-check artifacts.
type QualityCheck struct {
	Score       float64 `json:"score"`
	Issues      []Issue `json:"issues"`
	Suggestions string  `json:"suggestions,omitempty"`
}

func (QualityCheck) ContentKind() Kind { return KindQualityCheck }

// EstimateItem is the estimated hours for one phase.
type EstimateItem struct {
	Phase string  `json:"phase"`
	Hours float64 `json:"hours"`
}

// WorkEstimate is the content of a work-estimation artifact.
// TotalHours is always recomputed from Breakdown, never trusted as given.
type WorkEstimate struct {
	TotalHours float64        `json:"total_hours"`
	Breakdown  []EstimateItem `json:"breakdown"`
}

func (WorkEstimate) ContentKind() Kind { return KindWorkEstimate }

// PhaseProgress is the aggregated progress of one project phase.
type PhaseProgress struct {
	Name     string      `json:"name"`
	Progress float64     `json:"progress"`
	Status   PhaseStatus `json:"status"`
}

// ProgressReport is the content of a progress-report artifact.
type ProgressReport struct {
	OverallProgress float64         `json:"overall_progress"`
	Phases          []PhaseProgress `json:"phases"`
	Narrative       string          `json:"narrative"`
}

func (ProgressReport) ContentKind() Kind { return KindProgressReport }

// DecodeContent unmarshals raw JSON into the content type for kind.
func DecodeContent(kind Kind, raw []byte) (Content, error) {
	switch kind {
	case KindDocument:
		var c Document
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("decoding document content: %w", err)
		}
		return c, nil
	case KindSourceCode:
		var c SourceCode
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("decoding source code content: %w", err)
		}
		return c, nil
	case KindQualityCheck:
		var c QualityCheck
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("decoding quality check content: %w", err)
		}
		return c, nil
	case KindWorkEstimate:
		var c WorkEstimate
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("decoding work estimate content: %w", err)
		}
		return c, nil
	case KindProgressReport:
		var c ProgressReport
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("decoding progress report content: %w", err)
		}
		return c, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// EncodeContent marshals content to its persisted JSON form.
func EncodeContent(c Content) ([]byte, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding %s content: %w", c.ContentKind(), err)
	}
	return data, nil
}

// TitleOf derives the display title for content.
func TitleOf(c Content) string {
	switch v := c.(type) {
	case Document:
		return v.Title
	case SourceCode:
		return v.FileName
	case QualityCheck:
		return fmt.Sprintf("quality check (score %.0f)", v.Score)
	case WorkEstimate:
		return fmt.Sprintf("work estimate (%.0fh)", v.TotalHours)
	case ProgressReport:
		return fmt.Sprintf("progress report (%.0f%%)", v.OverallProgress)
	}
	return string(c.ContentKind())
}

// SearchTextOf flattens content into plain text for full-text indexing.
func SearchTextOf(c Content) string {
	var b strings.Builder
	switch v := c.(type) {
	case Document:
		for _, s := range v.Sections {
			b.WriteString(s.Heading)
			b.WriteString("\n")
			b.WriteString(s.Content)
			b.WriteString("\n")
		}
	case SourceCode:
		b.WriteString(v.Text)
	case QualityCheck:
		for _, issue := range v.Issues {
			b.WriteString(issue.Description)
			b.WriteString("\n")
		}
		b.WriteString(v.Suggestions)
	case WorkEstimate:
		for _, item := range v.Breakdown {
			b.WriteString(item.Phase)
			b.WriteString("\n")
		}
	case ProgressReport:
		for _, p := range v.Phases {
			b.WriteString(p.Name)
			b.WriteString("\n")
		}
		b.WriteString(v.Narrative)
	}
	return strings.TrimSpace(b.String())
}
