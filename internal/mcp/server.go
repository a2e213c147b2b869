// Package mcp exposes the pipeline as Model Context Protocol tools so
// coding agents can drive stage runs directly.
package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rkanno/craftline/internal/domain/activity"
	"github.com/rkanno/craftline/internal/domain/artifact"
	"github.com/rkanno/craftline/internal/domain/project"
	"github.com/rkanno/craftline/internal/pipeline"
	"github.com/rkanno/craftline/internal/repository"
)

const serverInstructions = `This server manages software delivery projects and their generated artifacts.
Typical flow: create_project, then run_stage for each workflow step
(document_generation, code_generation, consistency_check, quality_check,
work_estimation, proposal_creation, progress_report). Stage runs always
produce an artifact; check its provenance field to see whether it came
from the generation provider or from the deterministic fallback.`

// ProjectService defines project operations needed by MCP.
type ProjectService interface {
	Create(ctx context.Context, req project.CreateRequest) (*project.Project, error)
	List(ctx context.Context) ([]project.ProjectSummary, error)
	Get(ctx context.Context, id string) (*project.Project, error)
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	LogActivity(ctx context.Context, entry *activity.ActivityEntry) error
	GetRecentActivity(ctx context.Context, opts activity.ListOptions) ([]activity.ActivityEntry, error)
}

// StageRunner runs one pipeline stage for a project.
type StageRunner interface {
	Run(ctx context.Context, stageName, projectID string, params pipeline.Params) (*pipeline.StageResult, error)
}

// ArtifactReader provides read access to stored artifacts.
type ArtifactReader interface {
	Get(ctx context.Context, id string) (*artifact.Artifact, error)
	List(ctx context.Context, opts repository.ListArtifactsOptions) ([]artifact.Ref, error)
}

// SearchService provides full-text search over artifacts.
type SearchService interface {
	Search(ctx context.Context, projectID, query string, opts repository.SearchOptions) ([]artifact.SearchResult, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Projects  ProjectService
	Activity  ActivityService
	Stages    StageRunner
	Artifacts ArtifactReader
	Search    SearchService
}

// Config contains server configuration.
type Config struct {
	Services    Services
	Resolver    ActorResolver
	AuthEnabled bool
	Logger      *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "craftline",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	if cfg.AuthEnabled {
		server.AddReceivingMiddleware(authMiddleware(cfg.Resolver))
	} else {
		server.AddReceivingMiddleware(noAuthMiddleware("local"))
	}
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services)

	return server
}
