// Package pipeline contains the stage executor and coordinator that take
// a project through its AI-assisted artifact-generation stages. Each run
// resolves inputs, calls a generation provider once, falls back to a
// deterministic template on failure, recomputes derived fields, and
// appends exactly one artifact.
package pipeline

import (
	"fmt"
	"time"

	"github.com/rkanno/craftline/internal/domain/artifact"
)

// Stage names one step of the project workflow.
type Stage string

const (
	StageDocumentGeneration Stage = "document_generation"
	StageCodeGeneration     Stage = "code_generation"
	StageConsistencyCheck   Stage = "consistency_check"
	StageQualityCheck       Stage = "quality_check"
	StageWorkEstimation     Stage = "work_estimation"
	StageProposalCreation   Stage = "proposal_creation"
	StageProgressReport     Stage = "progress_report"
)

// Stages lists all pipeline stages in workflow order.
var Stages = []Stage{
	StageDocumentGeneration,
	StageCodeGeneration,
	StageConsistencyCheck,
	StageQualityCheck,
	StageWorkEstimation,
	StageProposalCreation,
	StageProgressReport,
}

// ParseStage validates a stage name.
func ParseStage(s string) (Stage, error) {
	for _, stage := range Stages {
		if Stage(s) == stage {
			return stage, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStage, s)
}

// Provider role labels. The executor only selects which label to pass;
// the provider registry decides what backs each label.
const (
	roleChatGPT = "chatgpt"
	roleGemini  = "gemini"
)

func roleForStage(stage Stage) string {
	switch stage {
	case StageConsistencyCheck, StageProposalCreation:
		return roleGemini
	default:
		return roleChatGPT
	}
}

// Params carries the stage-specific inputs of a run. Unused fields are
// ignored by stages that don't need them.
type Params struct {
	DocumentType string    `json:"document_type,omitempty"`
	DocumentID   string    `json:"document_id,omitempty"`
	TargetID     string    `json:"target,omitempty"`
	Language     string    `json:"language,omitempty"`
	TemplateID   string    `json:"template_id,omitempty"`
	PeriodFrom   time.Time `json:"period_from,omitempty"`
	PeriodTo     time.Time `json:"period_to,omitempty"`
}

// RunState is the client-visible state of a stage invocation.
type RunState string

const (
	RunIdle      RunState = "idle"
	RunRunning   RunState = "running"
	RunCompleted RunState = "completed"
	RunFailed    RunState = "failed"
)

// StageResult is what a stage run hands back to the boundary layer.
// Provider and validation failures still produce a completed result; the
// provenance field is the only signal that the fallback template fired.
type StageResult struct {
	Stage      Stage               `json:"stage"`
	Artifact   *artifact.Artifact  `json:"artifact"`
	Provenance artifact.Provenance `json:"provenance"`
	Warnings   []string            `json:"warnings,omitempty"`
	State      RunState            `json:"state"`
}
