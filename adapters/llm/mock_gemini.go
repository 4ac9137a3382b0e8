package llm

import (
	"context"
	"fmt"

	"github.com/voxbridge/server/domain/repositories"
)

// MockGeminiClient is a placeholder implementation for Gemini LLM
type MockGeminiClient struct{}

// NewMockGeminiClient creates a new mock Gemini client
func NewMockGeminiClient() repositories.LargeLanguageModel {
	return &MockGeminiClient{}
}

// Generate implements repositories.LargeLanguageModel
func (g *MockGeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "Hello! What would you like to talk about today?", nil
	}
	return fmt.Sprintf("Thanks for sharing! You said: %q. What else is on your mind?", prompt), nil
}
