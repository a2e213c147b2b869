// Package provider wraps external text-generation services behind a
// single Generator interface. The pipeline selects a provider by a
// free-form role label; everything provider-specific stays in here.
package provider

import (
	"context"
	"errors"
)

// ErrGeneration indicates the provider call failed or returned nothing
// usable. The pipeline recovers from this locally via its fallback
// policy; the error is never surfaced to API callers.
var ErrGeneration = errors.New("generation failed")

// Generator produces text from a system and a user instruction.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, systemPrompt, userPrompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return f(ctx, systemPrompt, userPrompt)
}
