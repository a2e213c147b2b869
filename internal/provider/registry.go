package provider

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Registry maps role labels to generators. Labels are free-form; an
// unknown label falls back to the default generator so the pipeline
// stays provider-agnostic.
type Registry struct {
	generators map[string]Generator
	fallback   Generator
	logger     *slog.Logger
}

// NewRegistry creates a registry with a default generator.
func NewRegistry(fallback Generator, logger *slog.Logger) *Registry {
	return &Registry{
		generators: make(map[string]Generator),
		fallback:   fallback,
		logger:     logger,
	}
}

// Register binds a role label to a generator.
func (r *Registry) Register(role string, gen Generator) {
	r.generators[strings.ToLower(role)] = gen
}

// Generate dispatches to the generator registered for role, or to the
// default when the role is unknown.
func (r *Registry) Generate(ctx context.Context, role, systemPrompt, userPrompt string) (string, error) {
	gen, ok := r.generators[strings.ToLower(role)]
	if !ok {
		if r.fallback == nil {
			return "", fmt.Errorf("%w: no generator for role %q", ErrGeneration, role)
		}
		if r.logger != nil {
			r.logger.Debug("unknown provider role, using default", "role", role)
		}
		gen = r.fallback
	}

	text, err := gen.Generate(ctx, systemPrompt, userPrompt)
	if err != nil {
		return "", fmt.Errorf("%w: role %s: %v", ErrGeneration, role, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: role %s returned empty output", ErrGeneration, role)
	}
	return text, nil
}
