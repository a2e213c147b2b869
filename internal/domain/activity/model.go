package activity

import "time"

// Entry types recognized by the pipeline. Collaborators may log other
// free-form types; only "issue" entries get special treatment.
const (
	TypeProgress = "progress"
	TypeIssue    = "issue"
)

// ActivityEntry is a read-only aggregation input produced by external
// collaborators. The pipeline never writes these during a stage run; it
// only averages them into progress reports.
type ActivityEntry struct {
	ID          int64     `json:"id"`
	ProjectID   string    `json:"project_id"`
	Phase       string    `json:"phase"`
	Progress    float64   `json:"progress"`
	Type        string    `json:"type"`
	Description string    `json:"description,omitempty"`
	Severity    string    `json:"severity,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
