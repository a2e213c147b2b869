package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "craftline://docs/workflow",
		Name:        "workflow-guide",
		Title:       "Pipeline workflow guide",
		Description: "How the stages fit together and what each one needs",
		Content: `# Pipeline workflow

Every run appends exactly one artifact to the project. Artifacts are
immutable; corrections are new artifacts that reference the one they
supersede. When several artifacts of the same kind exist, reads resolve
to the newest one.

## Stage order

1. document_generation: needs document_type. Produces a document.
2. code_generation: needs document_id and language. Produces source code.
3. consistency_check: needs document_id. Produces a scored check result.
4. quality_check: needs target (a document or source code artifact ID).
5. work_estimation: no parameters. Produces a per-phase hour breakdown.
6. proposal_creation: needs at least one existing document. Optional template_id.
7. progress_report: optional period_from and period_to. Aggregates the
   activity log into per-phase progress.

## Provenance

Runs succeed even when the generation provider is down: the artifact is
then built from a deterministic template and its provenance field reads
"fallback" instead of "generated". Check provenance before treating
content as real analysis.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
