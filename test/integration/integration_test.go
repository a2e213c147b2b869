package integration_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rkanno/craftline/internal/domain/artifact"
	"github.com/rkanno/craftline/internal/testserver"
)

func postJSON(t *testing.T, url string, body any) map[string]any {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Less(t, resp.StatusCode, 300, "unexpected status %d", resp.StatusCode)

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return decoded
}

func getJSON[T any](t *testing.T, url string) T {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func runStage(t *testing.T, ts *testserver.TestServer, projectID, stage string, params map[string]any) map[string]any {
	t.Helper()
	return postJSON(t, fmt.Sprintf("%s/api/projects/%s/stages/%s", ts.Server.URL, projectID, stage), params)
}

func artifactID(t *testing.T, result map[string]any) string {
	t.Helper()
	art, ok := result["artifact"].(map[string]any)
	require.True(t, ok, "result has no artifact: %v", result)
	id, _ := art["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestFullPipelineFlow(t *testing.T) {
	ts := testserver.New(t)

	proj := postJSON(t, ts.Server.URL+"/api/projects", map[string]string{
		"name":        "Inventory System",
		"description": "Warehouse inventory tracking",
	})
	projectID := proj["id"].(string)

	// 1. Document generation
	ts.Provider.Script("The system shall track stock levels per warehouse.")
	docResult := runStage(t, ts, projectID, "document_generation", map[string]any{"document_type": "requirements"})
	require.Equal(t, "generated", docResult["provenance"])
	docID := artifactID(t, docResult)

	// 2. Code generation from that document
	ts.Provider.Script("```go\npackage inventory\n```")
	codeResult := runStage(t, ts, projectID, "code_generation", map[string]any{
		"document_id": docID,
		"language":    "go",
	})
	codeID := artifactID(t, codeResult)

	// 3. Consistency check over the document
	ts.Provider.Script(`{"score": 88, "issues": [], "suggestions": "looks consistent"}`)
	checkResult := runStage(t, ts, projectID, "consistency_check", map[string]any{"document_id": docID})
	require.Equal(t, "generated", checkResult["provenance"])

	// 4. Quality check against the generated code
	ts.Provider.Script("No significant problems found.")
	qualityResult := runStage(t, ts, projectID, "quality_check", map[string]any{"target": codeID})
	require.Equal(t, "generated", qualityResult["provenance"])

	// 5. Work estimation with a provider total that disagrees with the
	// breakdown; the stored artifact must carry the recomputed total.
	ts.Provider.Script(`{"total_hours": 500, "breakdown": [{"phase": "設計", "hours": 60}, {"phase": "開発", "hours": 90}]}`)
	estimateResult := runStage(t, ts, projectID, "work_estimation", map[string]any{})
	estimateID := artifactID(t, estimateResult)

	estimate := getJSON[artifact.Artifact](t, ts.Server.URL+"/api/artifacts/"+estimateID)
	content, ok := estimate.Content.(artifact.WorkEstimate)
	require.True(t, ok)
	require.Equal(t, float64(150), content.TotalHours)

	// 6. Proposal creation using the existing documents
	ts.Provider.Script("We propose building the inventory system in three iterations.")
	proposalResult := runStage(t, ts, projectID, "proposal_creation", map[string]any{})
	require.Equal(t, "generated", proposalResult["provenance"])

	// 7. Log activity, then a progress report aggregating it
	postJSON(t, fmt.Sprintf("%s/api/projects/%s/activity", ts.Server.URL, projectID),
		map[string]any{"phase": "設計", "progress": 90.0})
	postJSON(t, fmt.Sprintf("%s/api/projects/%s/activity", ts.Server.URL, projectID),
		map[string]any{"phase": "開発", "progress": 30.0, "type": "progress"})

	ts.Provider.Script("Design is nearly done; development is ramping up.")
	reportResult := runStage(t, ts, projectID, "progress_report", map[string]any{})
	reportID := artifactID(t, reportResult)

	report := getJSON[artifact.Artifact](t, ts.Server.URL+"/api/artifacts/"+reportID)
	reportContent, ok := report.Content.(artifact.ProgressReport)
	require.True(t, ok)
	require.Equal(t, float64(30), reportContent.OverallProgress)

	// Everything landed in the store
	refs := getJSON[[]artifact.Ref](t, fmt.Sprintf("%s/api/projects/%s/artifacts", ts.Server.URL, projectID))
	require.Len(t, refs, 7)
}

func TestFallbackFlowWhenProviderIsDown(t *testing.T) {
	ts := testserver.New(t)
	ts.Provider.Fail(errors.New("connection refused"))

	proj := postJSON(t, ts.Server.URL+"/api/projects", map[string]string{"name": "Offline Project"})
	projectID := proj["id"].(string)

	docResult := runStage(t, ts, projectID, "document_generation", map[string]any{"document_type": "design"})
	require.Equal(t, "completed", docResult["state"])
	require.Equal(t, "fallback", docResult["provenance"])
	docID := artifactID(t, docResult)

	// Downstream stages consume fallback artifacts like any other.
	codeResult := runStage(t, ts, projectID, "code_generation", map[string]any{
		"document_id": docID,
		"language":    "ts",
	})
	require.Equal(t, "fallback", codeResult["provenance"])

	estimateResult := runStage(t, ts, projectID, "work_estimation", map[string]any{})
	estimateID := artifactID(t, estimateResult)

	estimate := getJSON[artifact.Artifact](t, ts.Server.URL+"/api/artifacts/"+estimateID)
	content, ok := estimate.Content.(artifact.WorkEstimate)
	require.True(t, ok)
	require.Equal(t, float64(200), content.TotalHours)
}

func TestLatestWinsAcrossDuplicateRuns(t *testing.T) {
	ts := testserver.New(t)

	proj := postJSON(t, ts.Server.URL+"/api/projects", map[string]string{"name": "Versioned"})
	projectID := proj["id"].(string)

	ts.Provider.Script("first requirements draft", "second requirements draft")
	first := runStage(t, ts, projectID, "document_generation", map[string]any{"document_type": "requirements"})
	second := runStage(t, ts, projectID, "document_generation", map[string]any{"document_type": "requirements"})

	firstID := artifactID(t, first)
	secondID := artifactID(t, second)
	require.NotEqual(t, firstID, secondID)

	refs := getJSON[[]artifact.Ref](t, fmt.Sprintf("%s/api/projects/%s/artifacts?kind=document", ts.Server.URL, projectID))
	require.Len(t, refs, 2)
	require.Equal(t, secondID, refs[0].ID, "newest artifact must come first")
}

func TestSearchOverGeneratedArtifacts(t *testing.T) {
	ts := testserver.New(t)

	proj := postJSON(t, ts.Server.URL+"/api/projects", map[string]string{"name": "Searchable"})
	projectID := proj["id"].(string)

	ts.Provider.Script("The warehouse needs barcode scanning at every dock door.")
	runStage(t, ts, projectID, "document_generation", map[string]any{"document_type": "requirements"})

	results := getJSON[[]artifact.SearchResult](t,
		fmt.Sprintf("%s/api/projects/%s/search?q=barcode", ts.Server.URL, projectID))
	require.Len(t, results, 1)
	require.Equal(t, artifact.KindDocument, results[0].Artifact.Kind)
}
