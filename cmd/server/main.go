package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rkanno/craftline/internal/config"
	"github.com/rkanno/craftline/internal/domain/activity"
	"github.com/rkanno/craftline/internal/domain/project"
	"github.com/rkanno/craftline/internal/mcp"
	"github.com/rkanno/craftline/internal/pipeline"
	"github.com/rkanno/craftline/internal/provider"
	"github.com/rkanno/craftline/internal/sqlite"
	"github.com/rkanno/craftline/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	projectRepo := sqlite.NewProjectRepository(db)
	artifactRepo := sqlite.NewArtifactRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)
	searchRepo := sqlite.NewSearchRepository(db)

	projectSvc := project.NewService(projectRepo, logger)
	activitySvc := activity.NewService(activityRepo, logger)

	registry := buildProviderRegistry(cfg.Provider, logger)

	executor := pipeline.NewExecutor(projectRepo, artifactRepo, activityRepo, registry, pipeline.Options{
		Timeout:         cfg.Provider.Timeout(),
		Phases:          cfg.Pipeline.Phases,
		SeverityMarkers: cfg.Pipeline.SeverityMarkers,
		Templates:       cfg.Pipeline.ProposalTemplates,
	}, logger)
	coordinator := pipeline.NewCoordinator(executor, logger)

	var authMiddleware func(http.Handler) http.Handler
	var resolver transport.ActorResolver
	if cfg.Auth.Enabled {
		resolver = tokenResolver(cfg.Auth.Tokens)
		authMiddleware = transport.AuthMiddleware(resolver)
	}

	router := transport.NewServer(projectSvc, activitySvc, artifactRepo, searchRepo, coordinator, authMiddleware, logger)

	if cfg.Server.EnableMCP {
		mcpServer := mcp.NewServer(mcp.Config{
			Services: mcp.Services{
				Projects:  projectSvc,
				Activity:  activitySvc,
				Stages:    coordinator,
				Artifacts: artifactRepo,
				Search:    searchRepo,
			},
			Resolver:    mcpResolver(cfg.Auth.Tokens),
			AuthEnabled: cfg.Auth.Enabled,
			Logger:      logger,
		})
		mcpHandler := sdkmcp.NewStreamableHTTPHandler(
			func(r *http.Request) *sdkmcp.Server { return mcpServer },
			&sdkmcp.StreamableHTTPOptions{
				Stateless:      false,
				SessionTimeout: 30 * time.Minute,
			},
		)
		router.Handle("/mcp", mcpHandler)
		router.Handle("/mcp/*", mcpHandler)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", addr, "mcp", cfg.Server.EnableMCP)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

// buildProviderRegistry registers one generator per provider role. With
// no API keys configured, every stage run uses the fallback templates,
// which keeps local development fully offline.
func buildProviderRegistry(cfg config.ProviderConfig, logger *slog.Logger) *provider.Registry {
	var fallback provider.Generator

	if cfg.OpenAI.APIKey != "" {
		client, err := provider.NewOpenAIClient(provider.OpenAIConfig{
			APIKey:  cfg.OpenAI.APIKey,
			BaseURL: cfg.OpenAI.BaseURL,
			Model:   cfg.OpenAI.Model,
		}, logger)
		if err != nil {
			logger.Error("openai client disabled", "error", err)
		} else {
			fallback = client
		}
	}

	registry := provider.NewRegistry(fallback, logger)
	if fallback != nil {
		registry.Register("chatgpt", fallback)
	}

	if cfg.Gemini.APIKey != "" {
		client, err := provider.NewGeminiClient(provider.GeminiConfig{
			APIKey:  cfg.Gemini.APIKey,
			BaseURL: cfg.Gemini.BaseURL,
			Model:   cfg.Gemini.Model,
		}, logger)
		if err != nil {
			logger.Error("gemini client disabled", "error", err)
		} else {
			registry.Register("gemini", client)
		}
	}

	return registry
}

func tokenResolver(tokens map[string]string) transport.ActorResolver {
	return transport.ActorResolverFunc(func(_ context.Context, token string) (string, error) {
		actor, ok := tokens[token]
		if !ok {
			return "", transport.ErrUnauthorized
		}
		return actor, nil
	})
}

type staticActorResolver map[string]string

func (r staticActorResolver) ResolveActor(_ context.Context, token string) (string, error) {
	actor, ok := r[token]
	if !ok {
		return "", transport.ErrUnauthorized
	}
	return actor, nil
}

func mcpResolver(tokens map[string]string) mcp.ActorResolver {
	return staticActorResolver(tokens)
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
