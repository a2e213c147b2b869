package artifact

import (
	"encoding/json"
	"time"
)

// Kind identifies which content schema an artifact carries.
type Kind string

const (
	KindDocument       Kind = "document"
	KindSourceCode     Kind = "source_code"
	KindQualityCheck   Kind = "quality_check"
	KindWorkEstimate   Kind = "work_estimate"
	KindProgressReport Kind = "progress_report"
)

// DocTypeProposal marks a document artifact produced by the proposal stage.
const DocTypeProposal = "proposal"

// Provenance records whether content came from a generation provider or
// from the deterministic fallback template.
type Provenance string

const (
	ProvenanceGenerated Provenance = "generated"
	ProvenanceFallback  Provenance = "fallback"
)

// Artifact is an immutable output record of one pipeline stage run.
// Artifacts are append-only: a correction is a new artifact whose
// Supersedes field points at the record it replaces.
type Artifact struct {
	ID         string     `json:"id"`
	ProjectID  string     `json:"project_id"`
	Kind       Kind       `json:"kind"`
	DocType    string     `json:"doc_type,omitempty"`
	Provenance Provenance `json:"provenance"`
	Title      string     `json:"title"`
	Content    Content    `json:"content"`
	Supersedes *string    `json:"supersedes,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// UnmarshalJSON decodes the content as the variant named by the kind tag.
func (a *Artifact) UnmarshalJSON(data []byte) error {
	type alias Artifact
	aux := struct {
		*alias
		Content json.RawMessage `json:"content"`
	}{alias: (*alias)(a)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(aux.Content) == 0 {
		return nil
	}
	content, err := DecodeContent(a.Kind, aux.Content)
	if err != nil {
		return err
	}
	a.Content = content
	return nil
}

// Ref is a lightweight reference to an artifact for listings.
type Ref struct {
	ID         string     `json:"id"`
	ProjectID  string     `json:"project_id"`
	Kind       Kind       `json:"kind"`
	DocType    string     `json:"doc_type,omitempty"`
	Provenance Provenance `json:"provenance"`
	Title      string     `json:"title"`
	CreatedAt  time.Time  `json:"created_at"`
}

// SearchResult represents a full-text search hit with relevance.
type SearchResult struct {
	Artifact Ref     `json:"artifact"`
	Rank     float64 `json:"rank"`
	Snippet  string  `json:"snippet,omitempty"`
}

// ValidKind reports whether k names a known artifact kind.
func ValidKind(k Kind) bool {
	switch k {
	case KindDocument, KindSourceCode, KindQualityCheck, KindWorkEstimate, KindProgressReport:
		return true
	}
	return false
}
