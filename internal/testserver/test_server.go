// Package testserver spins up a complete HTTP server over an in-memory
// database for end-to-end tests.
package testserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rkanno/craftline/internal/domain/activity"
	"github.com/rkanno/craftline/internal/domain/project"
	"github.com/rkanno/craftline/internal/pipeline"
	"github.com/rkanno/craftline/internal/sqlite"
	"github.com/rkanno/craftline/internal/transport"
)

// ScriptedProvider returns queued outputs in order, then errors. It
// stands in for the real generation providers.
type ScriptedProvider struct {
	mu      sync.Mutex
	outputs []string
	err     error
}

// Script queues outputs to return from subsequent Generate calls.
func (p *ScriptedProvider) Script(outputs ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.outputs = append(p.outputs, outputs...)
}

// Fail makes every Generate call after the queue drains return err.
func (p *ScriptedProvider) Fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

func (p *ScriptedProvider) Generate(_ context.Context, role, _, _ string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.outputs) > 0 {
		out := p.outputs[0]
		p.outputs = p.outputs[1:]
		return out, nil
	}
	if p.err != nil {
		return "", p.err
	}
	return "", fmt.Errorf("no scripted output for role %s", role)
}

type TestServer struct {
	Server   *httptest.Server
	DB       *sqlite.DB
	Provider *ScriptedProvider
}

// New builds a server with all real components except the generation
// provider.
func New(t *testing.T) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	logger := slog.New(slog.DiscardHandler)

	projectRepo := sqlite.NewProjectRepository(db)
	artifactRepo := sqlite.NewArtifactRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)
	searchRepo := sqlite.NewSearchRepository(db)

	gen := &ScriptedProvider{}
	executor := pipeline.NewExecutor(projectRepo, artifactRepo, activityRepo, gen, pipeline.Options{}, logger)
	coordinator := pipeline.NewCoordinator(executor, logger)

	router := transport.NewServer(
		project.NewService(projectRepo, logger),
		activity.NewService(activityRepo, logger),
		artifactRepo,
		searchRepo,
		coordinator,
		nil,
		logger,
	)

	server := httptest.NewServer(router)

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{Server: server, DB: db, Provider: gen}
}
