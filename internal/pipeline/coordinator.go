package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Coordinator is the entry point for stage runs. It validates stage
// names and parameters before dispatching to the executor, and decides
// the client-visible run state of the outcome.
type Coordinator struct {
	exec   *Executor
	logger *slog.Logger
}

func NewCoordinator(exec *Executor, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{exec: exec, logger: logger}
}

// Run executes one stage for one project. A nil error means the run
// completed and an artifact was persisted, possibly via fallback. The
// returned error is one of ErrUnknownStage, ErrInvalidParams,
// ErrPreconditionFailed, ErrStorage, or project.ErrProjectNotFound.
func (c *Coordinator) Run(ctx context.Context, stageName, projectID string, params Params) (*StageResult, error) {
	stage, err := ParseStage(stageName)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(projectID) == "" {
		return nil, fmt.Errorf("%w: project id is required", ErrInvalidParams)
	}
	if err := validateParams(stage, params); err != nil {
		return nil, err
	}

	c.logger.Info("stage run started", "stage", stage, "project_id", projectID)

	result, err := c.exec.Execute(ctx, stage, projectID, params)
	if err != nil {
		c.logger.Error("stage run failed", "stage", stage, "project_id", projectID, "error", err)
		return &StageResult{Stage: stage, State: RunFailed}, err
	}
	return result, nil
}

// validateParams checks the presence and shape of the stage-specific
// parameters. Semantic checks against stored data happen later in the
// executor.
func validateParams(stage Stage, params Params) error {
	switch stage {
	case StageDocumentGeneration:
		if strings.TrimSpace(params.DocumentType) == "" {
			return fmt.Errorf("%w: document_type is required", ErrInvalidParams)
		}
	case StageCodeGeneration:
		if strings.TrimSpace(params.DocumentID) == "" {
			return fmt.Errorf("%w: document_id is required", ErrInvalidParams)
		}
		if strings.TrimSpace(params.Language) == "" {
			return fmt.Errorf("%w: language is required", ErrInvalidParams)
		}
	case StageConsistencyCheck:
		if strings.TrimSpace(params.DocumentID) == "" {
			return fmt.Errorf("%w: document_id is required", ErrInvalidParams)
		}
	case StageQualityCheck:
		if strings.TrimSpace(params.TargetID) == "" {
			return fmt.Errorf("%w: target is required", ErrInvalidParams)
		}
	case StageProgressReport:
		if !params.PeriodFrom.IsZero() && !params.PeriodTo.IsZero() && params.PeriodTo.Before(params.PeriodFrom) {
			return fmt.Errorf("%w: period_to precedes period_from", ErrInvalidParams)
		}
	}
	return nil
}
