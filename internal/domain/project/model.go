package project

import "time"

// Project is the root entity that owns all pipeline artifacts.
// Once created it is immutable; stage runs only ever append artifacts to it.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedBy   string    `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProjectSummary is a lightweight representation for listing
type ProjectSummary struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description,omitempty"`
	ArtifactCount     int       `json:"artifact_count"`
	FallbackArtifacts int       `json:"fallback_artifacts"`
	CreatedAt         time.Time `json:"created_at"`
}
