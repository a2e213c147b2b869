package mcp

import (
	"context"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rkanno/craftline/internal/domain/activity"
	"github.com/rkanno/craftline/internal/domain/artifact"
	"github.com/rkanno/craftline/internal/domain/project"
	"github.com/rkanno/craftline/internal/pipeline"
	"github.com/rkanno/craftline/internal/repository"
)

type createProjectInput struct {
	Name        string `json:"name" jsonschema:"Project display name"`
	Description string `json:"description,omitempty" jsonschema:"Project description"`
}

type getProjectInput struct {
	ID string `json:"id" jsonschema:"Project ID"`
}

type listProjectsInput struct{}

type listProjectsOutput struct {
	Projects []project.ProjectSummary `json:"projects"`
}

type runStageInput struct {
	ProjectID    string `json:"project_id" jsonschema:"Project ID"`
	Stage        string `json:"stage" jsonschema:"Stage name: document_generation, code_generation, consistency_check, quality_check, work_estimation, proposal_creation, or progress_report"`
	DocumentType string `json:"document_type,omitempty" jsonschema:"Document type for document_generation (e.g. requirements, design)"`
	DocumentID   string `json:"document_id,omitempty" jsonschema:"Source document artifact ID for code_generation and consistency_check"`
	Target       string `json:"target,omitempty" jsonschema:"Artifact ID to review for quality_check"`
	Language     string `json:"language,omitempty" jsonschema:"Target language for code_generation"`
	TemplateID   string `json:"template_id,omitempty" jsonschema:"Proposal template ID for proposal_creation"`
	PeriodFrom   string `json:"period_from,omitempty" jsonschema:"Reporting period start (RFC 3339) for progress_report"`
	PeriodTo     string `json:"period_to,omitempty" jsonschema:"Reporting period end (RFC 3339) for progress_report"`
}

type listArtifactsInput struct {
	ProjectID string `json:"project_id" jsonschema:"Project ID"`
	Kind      string `json:"kind,omitempty" jsonschema:"Filter by artifact kind"`
	DocType   string `json:"doc_type,omitempty" jsonschema:"Filter documents by type"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Maximum number of results"`
	Offset    int    `json:"offset,omitempty" jsonschema:"Offset for pagination"`
}

type listArtifactsOutput struct {
	Artifacts []artifact.Ref `json:"artifacts"`
}

type getArtifactInput struct {
	ID string `json:"id" jsonschema:"Artifact ID"`
}

type searchArtifactsInput struct {
	ProjectID string `json:"project_id" jsonschema:"Project ID"`
	Query     string `json:"query" jsonschema:"Full-text search query"`
	Kind      string `json:"kind,omitempty" jsonschema:"Filter by artifact kind"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Maximum number of results"`
	Offset    int    `json:"offset,omitempty" jsonschema:"Offset for pagination"`
}

type searchArtifactsOutput struct {
	Results []artifact.SearchResult `json:"results"`
}

type logActivityInput struct {
	ProjectID   string  `json:"project_id" jsonschema:"Project ID"`
	Phase       string  `json:"phase" jsonschema:"Workflow phase the activity belongs to"`
	Progress    float64 `json:"progress" jsonschema:"Phase progress between 0 and 100"`
	Type        string  `json:"type,omitempty" jsonschema:"Entry type: progress (default) or issue"`
	Description string  `json:"description,omitempty" jsonschema:"What happened"`
	Severity    string  `json:"severity,omitempty" jsonschema:"Issue severity: low, medium, or high"`
}

type listActivityInput struct {
	ProjectID string `json:"project_id" jsonschema:"Project ID"`
	Phase     string `json:"phase,omitempty" jsonschema:"Filter by phase"`
	Type      string `json:"type,omitempty" jsonschema:"Filter by entry type"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Maximum number of results"`
	Offset    int    `json:"offset,omitempty" jsonschema:"Offset for pagination"`
}

type listActivityOutput struct {
	Entries []activity.ActivityEntry `json:"entries"`
}

func registerTools(server *sdkmcp.Server, services Services) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_project",
		Description: "Create a new project that stage runs append artifacts to",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in createProjectInput) (*sdkmcp.CallToolResult, *project.Project, error) {
		proj, err := services.Projects.Create(ctx, project.CreateRequest{
			Name:        in.Name,
			Description: in.Description,
			CreatedBy:   getActor(ctx),
		})
		return nil, proj, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List all projects with artifact counts",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ listProjectsInput) (*sdkmcp.CallToolResult, listProjectsOutput, error) {
		summaries, err := services.Projects.List(ctx)
		return nil, listProjectsOutput{Projects: summaries}, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project",
		Description: "Get details for a specific project",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in getProjectInput) (*sdkmcp.CallToolResult, *project.Project, error) {
		proj, err := services.Projects.Get(ctx, in.ID)
		return nil, proj, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "run_stage",
		Description: "Run one pipeline stage for a project and append the resulting artifact",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in runStageInput) (*sdkmcp.CallToolResult, *pipeline.StageResult, error) {
		params := pipeline.Params{
			DocumentType: in.DocumentType,
			DocumentID:   in.DocumentID,
			TargetID:     in.Target,
			Language:     in.Language,
			TemplateID:   in.TemplateID,
		}
		var err error
		if params.PeriodFrom, err = parsePeriod(in.PeriodFrom); err != nil {
			return nil, nil, err
		}
		if params.PeriodTo, err = parsePeriod(in.PeriodTo); err != nil {
			return nil, nil, err
		}

		result, err := services.Stages.Run(ctx, in.Stage, in.ProjectID, params)
		return nil, result, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_artifacts",
		Description: "List a project's artifacts, newest first",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in listArtifactsInput) (*sdkmcp.CallToolResult, listArtifactsOutput, error) {
		refs, err := services.Artifacts.List(ctx, repository.ListArtifactsOptions{
			ProjectID: in.ProjectID,
			Kind:      artifact.Kind(in.Kind),
			DocType:   in.DocType,
			Limit:     in.Limit,
			Offset:    in.Offset,
		})
		return nil, listArtifactsOutput{Artifacts: refs}, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_artifact",
		Description: "Get an artifact with its full content",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in getArtifactInput) (*sdkmcp.CallToolResult, *artifact.Artifact, error) {
		art, err := services.Artifacts.Get(ctx, in.ID)
		return nil, art, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "search_artifacts",
		Description: "Full-text search over a project's artifacts",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in searchArtifactsInput) (*sdkmcp.CallToolResult, searchArtifactsOutput, error) {
		results, err := services.Search.Search(ctx, in.ProjectID, in.Query, repository.SearchOptions{
			Kind:   artifact.Kind(in.Kind),
			Limit:  in.Limit,
			Offset: in.Offset,
		})
		return nil, searchArtifactsOutput{Results: results}, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "log_activity",
		Description: "Record phase progress or an issue for later progress reports",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in logActivityInput) (*sdkmcp.CallToolResult, *activity.ActivityEntry, error) {
		entry := &activity.ActivityEntry{
			ProjectID:   in.ProjectID,
			Phase:       in.Phase,
			Progress:    in.Progress,
			Type:        in.Type,
			Description: in.Description,
			Severity:    in.Severity,
		}
		if err := services.Activity.LogActivity(ctx, entry); err != nil {
			return nil, nil, err
		}
		return nil, entry, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_activity",
		Description: "List logged activity for a project, newest first",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in listActivityInput) (*sdkmcp.CallToolResult, listActivityOutput, error) {
		entries, err := services.Activity.GetRecentActivity(ctx, activity.ListOptions{
			ProjectID: in.ProjectID,
			Phase:     in.Phase,
			Type:      in.Type,
			Limit:     in.Limit,
			Offset:    in.Offset,
		})
		return nil, listActivityOutput{Entries: entries}, err
	})
}

func parsePeriod(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, raw)
}
