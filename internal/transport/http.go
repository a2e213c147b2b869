// Package transport exposes the pipeline and its stores over HTTP.
package transport

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rkanno/craftline/internal/domain/activity"
	"github.com/rkanno/craftline/internal/domain/artifact"
	"github.com/rkanno/craftline/internal/domain/project"
	"github.com/rkanno/craftline/internal/pipeline"
	"github.com/rkanno/craftline/internal/repository"
)

// Server wires HTTP handlers.
type Server struct {
	projects    *project.Service
	activities  *activity.Service
	artifacts   repository.ArtifactRepository
	search      repository.SearchRepository
	coordinator *pipeline.Coordinator
	logger      *slog.Logger
}

// NewServer creates an HTTP router over the given services. The auth
// middleware is optional; without it every request runs as "anonymous".
func NewServer(
	projects *project.Service,
	activities *activity.Service,
	artifacts repository.ArtifactRepository,
	search repository.SearchRepository,
	coordinator *pipeline.Coordinator,
	authMiddleware func(http.Handler) http.Handler,
	logger *slog.Logger,
) *chi.Mux {
	if logger == nil {
		logger = slog.Default()
	}

	srv := &Server{
		projects:    projects,
		activities:  activities,
		artifacts:   artifacts,
		search:      search,
		coordinator: coordinator,
		logger:      logger,
	}

	r := chi.NewRouter()
	if authMiddleware != nil {
		r.Use(authMiddleware)
	}

	r.Get("/health", srv.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/projects", srv.handleCreateProject)
		r.Get("/projects", srv.handleListProjects)
		r.Get("/projects/{projectID}", srv.handleGetProject)

		r.Post("/projects/{projectID}/stages/{stage}", srv.handleRunStage)

		r.Get("/projects/{projectID}/artifacts", srv.handleListArtifacts)
		r.Get("/projects/{projectID}/search", srv.handleSearchArtifacts)
		r.Get("/artifacts/{artifactID}", srv.handleGetArtifact)

		r.Post("/projects/{projectID}/activity", srv.handleLogActivity)
		r.Get("/projects/{projectID}/activity", srv.handleListActivity)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type createProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}

	actor, _ := ActorFromContext(r.Context())
	proj, err := s.projects.Create(r.Context(), project.CreateRequest{
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   actor,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, proj)
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.projects.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if summaries == nil {
		summaries = []project.ProjectSummary{}
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	proj, err := s.projects.Get(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, proj)
}

func (s *Server) handleRunStage(w http.ResponseWriter, r *http.Request) {
	var params pipeline.Params
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
			return
		}
	}

	result, err := s.coordinator.Run(r.Context(),
		chi.URLParam(r, "stage"),
		chi.URLParam(r, "projectID"),
		params,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleListArtifacts(w http.ResponseWriter, r *http.Request) {
	opts := repository.ListArtifactsOptions{
		ProjectID: chi.URLParam(r, "projectID"),
		DocType:   r.URL.Query().Get("doc_type"),
		Limit:     queryInt(r, "limit"),
		Offset:    queryInt(r, "offset"),
	}
	if kind := r.URL.Query().Get("kind"); kind != "" {
		if !artifact.ValidKind(artifact.Kind(kind)) {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: fmt.Sprintf("unknown artifact kind %q", kind)})
			return
		}
		opts.Kind = artifact.Kind(kind)
	}

	refs, err := s.artifacts.List(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	if refs == nil {
		refs = []artifact.Ref{}
	}
	writeJSON(w, http.StatusOK, refs)
}

func (s *Server) handleGetArtifact(w http.ResponseWriter, r *http.Request) {
	art, err := s.artifacts.Get(r.Context(), chi.URLParam(r, "artifactID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, art)
}

func (s *Server) handleSearchArtifacts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "query parameter q is required"})
		return
	}

	opts := repository.SearchOptions{
		Kind:   artifact.Kind(r.URL.Query().Get("kind")),
		Limit:  queryInt(r, "limit"),
		Offset: queryInt(r, "offset"),
	}

	results, err := s.search.Search(r.Context(), chi.URLParam(r, "projectID"), query, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	if results == nil {
		results = []artifact.SearchResult{}
	}
	writeJSON(w, http.StatusOK, results)
}

type logActivityRequest struct {
	Phase       string  `json:"phase"`
	Progress    float64 `json:"progress"`
	Type        string  `json:"type,omitempty"`
	Description string  `json:"description,omitempty"`
	Severity    string  `json:"severity,omitempty"`
}

func (s *Server) handleLogActivity(w http.ResponseWriter, r *http.Request) {
	var req logActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}

	entry := &activity.ActivityEntry{
		ProjectID:   chi.URLParam(r, "projectID"),
		Phase:       req.Phase,
		Progress:    req.Progress,
		Type:        req.Type,
		Description: req.Description,
		Severity:    req.Severity,
	}
	if err := s.activities.LogActivity(r.Context(), entry); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleListActivity(w http.ResponseWriter, r *http.Request) {
	opts := activity.ListOptions{
		ProjectID: chi.URLParam(r, "projectID"),
		Phase:     r.URL.Query().Get("phase"),
		Type:      r.URL.Query().Get("type"),
		Limit:     queryInt(r, "limit"),
		Offset:    queryInt(r, "offset"),
	}

	entries, err := s.activities.GetRecentActivity(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	if entries == nil {
		entries = []activity.ActivityEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func queryInt(r *http.Request, name string) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
