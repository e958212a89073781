package enricher

import "context"

// TextModel is the minimal surface the enrichment service needs from a
// generative model provider: one prompt in, one completion out. Provider
// adapters own their own retry and circuit breaker wiring.
type TextModel interface {
	// Complete sends the prompt and returns the raw completion text.
	Complete(ctx context.Context, prompt string) (string, error)

	// Name identifies the provider for logging and metrics.
	Name() string
}
