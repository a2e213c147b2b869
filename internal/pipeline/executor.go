package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rkanno/craftline/internal/domain/activity"
	"github.com/rkanno/craftline/internal/domain/artifact"
	"github.com/rkanno/craftline/internal/domain/project"
	"github.com/rkanno/craftline/internal/repository"
	"github.com/rkanno/craftline/internal/scoring"
)

const (
	defaultProviderTimeout = 60 * time.Second
	maxProviderTimeout     = 5 * time.Minute
)

// DefaultPhases are the project phase names assumed when no override is
// configured. The names are data shared with existing store consumers
// and activity log producers, so they stay in the original language.
var DefaultPhases = []string{"要件定義", "設計", "開発", "テスト"}

// Options tunes executor behavior.
type Options struct {
	// Timeout bounds the single provider attempt per run. Values
	// outside (0, maxProviderTimeout] are clamped.
	Timeout time.Duration
	// Phases overrides DefaultPhases.
	Phases []string
	// SeverityMarkers overrides scoring.DefaultSeverityMarkers.
	SeverityMarkers []string
	// Templates adds proposal templates on top of the built-in set.
	Templates map[string]string
}

// Executor runs one named stage for one project, producing exactly one
// artifact. Provider and validation failures are absorbed into the
// fallback policy; only missing inputs and storage failures escape.
type Executor struct {
	projects  ProjectRepository
	artifacts ArtifactRepository
	activity  ActivityRepository
	provider  GenerationProvider
	opts      Options
	logger    *slog.Logger
}

// NewExecutor creates a stage executor. All collaborators are injected;
// the executor holds no ambient global state.
func NewExecutor(
	projects ProjectRepository,
	artifacts ArtifactRepository,
	activityRepo ActivityRepository,
	gen GenerationProvider,
	opts Options,
	logger *slog.Logger,
) *Executor {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultProviderTimeout
	}
	if opts.Timeout > maxProviderTimeout {
		opts.Timeout = maxProviderTimeout
	}
	if len(opts.Phases) == 0 {
		opts.Phases = DefaultPhases
	}
	if len(opts.SeverityMarkers) == 0 {
		opts.SeverityMarkers = scoring.DefaultSeverityMarkers
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		projects:  projects,
		artifacts: artifacts,
		activity:  activityRepo,
		provider:  gen,
		opts:      opts,
		logger:    logger,
	}
}

// Execute runs a single stage attempt: resolve inputs, build the prompt,
// call the provider once, interpret or fall back, normalize derived
// fields, persist, and report.
func (e *Executor) Execute(ctx context.Context, stage Stage, projectID string, params Params) (*StageResult, error) {
	proj, err := e.projects.Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, project.ErrProjectNotFound
		}
		return nil, fmt.Errorf("%w: loading project: %v", ErrStorage, err)
	}

	in, err := e.resolveInputs(ctx, stage, proj, params)
	if err != nil {
		return nil, err
	}

	var warnings []string
	if stage == StageProposalCreation {
		var found bool
		in.template, found = resolveTemplate(e.opts.Templates, params.TemplateID)
		if !found {
			warnings = append(warnings, fmt.Sprintf("template %q not found, default layout used", params.TemplateID))
		}
	}

	prompt := buildPrompt(stage, in)

	genCtx, cancel := context.WithTimeout(ctx, e.opts.Timeout)
	raw, genErr := e.provider.Generate(genCtx, roleForStage(stage), prompt.System, prompt.User)
	cancel()

	content, provenance := e.interpret(stage, in, raw, genErr, &warnings)

	content, normWarnings := artifact.Normalize(content)
	warnings = append(warnings, normWarnings...)

	art := &artifact.Artifact{
		ID:         uuid.NewString(),
		ProjectID:  proj.ID,
		Kind:       content.ContentKind(),
		Provenance: provenance,
		Title:      artifact.TitleOf(content),
		Content:    content,
		CreatedAt:  time.Now(),
	}
	if stage == StageProposalCreation {
		art.DocType = artifact.DocTypeProposal
	} else if stage == StageDocumentGeneration {
		art.DocType = params.DocumentType
	}

	if err := e.artifacts.Insert(ctx, art); err != nil {
		return nil, fmt.Errorf("%w: inserting %s artifact: %v", ErrStorage, art.Kind, err)
	}

	e.logger.Info("stage completed",
		"stage", stage,
		"project_id", proj.ID,
		"artifact_id", art.ID,
		"provenance", provenance,
		"warnings", len(warnings),
	)

	return &StageResult{
		Stage:      stage,
		Artifact:   art,
		Provenance: provenance,
		Warnings:   warnings,
		State:      RunCompleted,
	}, nil
}

// interpret converts the provider outcome into content, applying the
// fallback policy on provider failure or unusable output.
func (e *Executor) interpret(stage Stage, in stageInputs, raw string, genErr error, warnings *[]string) (artifact.Content, artifact.Provenance) {
	if genErr == nil {
		content, parseErr := interpretOutput(stage, in, raw, e.opts.SeverityMarkers)
		if parseErr == nil {
			parseErr = artifact.Validate(content)
		}
		if parseErr == nil {
			return content, artifact.ProvenanceGenerated
		}
		*warnings = append(*warnings, fmt.Sprintf("generated content rejected: %v", parseErr))
		e.logger.Warn("generated content rejected, using fallback", "stage", stage, "error", parseErr)
	} else {
		*warnings = append(*warnings, fmt.Sprintf("provider call failed: %v", genErr))
		e.logger.Warn("provider call failed, using fallback", "stage", stage, "error", genErr)
	}

	return fallbackContent(stage, in, e.opts.SeverityMarkers), artifact.ProvenanceFallback
}

// resolveInputs loads required prior artifacts and optional context.
// Missing required inputs fail the run; missing optional context (no
// activity logs yet) degrades to zero values.
func (e *Executor) resolveInputs(ctx context.Context, stage Stage, proj *project.Project, params Params) (stageInputs, error) {
	in := stageInputs{project: proj, params: params}

	switch stage {
	case StageCodeGeneration, StageConsistencyCheck:
		doc, err := e.requireArtifact(ctx, params.DocumentID)
		if err != nil {
			return in, err
		}
		if doc.Kind != artifact.KindDocument {
			return in, fmt.Errorf("%w: artifact %s is not a document", ErrPreconditionFailed, params.DocumentID)
		}
		in.document = doc

	case StageQualityCheck:
		target, err := e.requireArtifact(ctx, params.TargetID)
		if err != nil {
			return in, err
		}
		// Document resolution takes precedence deterministically;
		// any other kind cannot be checked.
		switch target.Kind {
		case artifact.KindDocument, artifact.KindSourceCode:
			in.target = target
		default:
			return in, fmt.Errorf("%w: target %s resolves to neither a document nor source code", ErrPreconditionFailed, params.TargetID)
		}

	case StageProposalCreation:
		docs, err := e.artifacts.List(ctx, repository.ListArtifactsOptions{
			ProjectID: proj.ID,
			Kind:      artifact.KindDocument,
		})
		if err != nil {
			return in, fmt.Errorf("%w: listing documents: %v", ErrStorage, err)
		}
		if len(docs) == 0 {
			return in, fmt.Errorf("%w: proposal creation needs at least one document", ErrPreconditionFailed)
		}
		in.documents = docs

	case StageProgressReport:
		logs, err := e.activity.List(ctx, e.periodFilter(proj.ID, params))
		if err != nil {
			return in, fmt.Errorf("%w: listing activity: %v", ErrStorage, err)
		}
		in.phases = scoring.AggregatePhaseProgress(logs, e.opts.Phases)
		in.overall = scoring.AggregateOverallProgress(in.phases)
		in.issues = scoring.CollectIssues(logs)

	case StageWorkEstimation:
		in.phases = scoring.AggregatePhaseProgress(nil, e.opts.Phases)
	}

	return in, nil
}

func (e *Executor) requireArtifact(ctx context.Context, id string) (*artifact.Artifact, error) {
	art, err := e.artifacts.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: artifact %s not found", ErrPreconditionFailed, id)
		}
		return nil, fmt.Errorf("%w: loading artifact %s: %v", ErrStorage, id, err)
	}
	return art, nil
}

func (e *Executor) periodFilter(projectID string, params Params) activity.ListOptions {
	opts := activity.ListOptions{ProjectID: projectID}
	if !params.PeriodFrom.IsZero() {
		from := params.PeriodFrom
		opts.From = &from
	}
	if !params.PeriodTo.IsZero() {
		to := params.PeriodTo
		opts.To = &to
	}
	return opts
}
