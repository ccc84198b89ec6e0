package ai

import (
	"context"
)

// LLMProvider defines the contract for interacting with AI models.
// Extraction prompts ask for a JSON object embedded in the reply; answer prompts ask for prose.
type LLMProvider interface {
	// Complete sends a single prompt and returns the model's text reply.
	Complete(ctx context.Context, prompt string) (string, error)

	// Name identifies the provider in logs and metrics (e.g. "gemini/gemini-2.0-flash").
	Name() string
}
