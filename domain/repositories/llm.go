package repositories

import "context"

// LargeLanguageModel abstracts any generative chat provider
type LargeLanguageModel interface {
	// Generate takes a user prompt and returns the model's reply.
	// Returns domain.ErrEmptyReply when the model produced no text.
	Generate(ctx context.Context, prompt string) (string, error)
}
