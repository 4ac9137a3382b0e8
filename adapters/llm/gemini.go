package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/voxbridge/server/domain"
	"github.com/voxbridge/server/domain/repositories"
)

const (
	defaultModel          = "gemini-2.5-flash"
	defaultTimeoutSeconds = 30
	defaultMaxTokens      = 1024
)

// GeminiLLM implements the LargeLanguageModel interface using Google's Gemini API
type GeminiLLM struct {
	client  *genai.Client
	logger  *zap.Logger
	model   string
	timeout time.Duration
}

var _ repositories.LargeLanguageModel = (*GeminiLLM)(nil)

// NewGeminiLLM creates a new Gemini LLM instance
func NewGeminiLLM(ctx context.Context, apiKey, model string, logger *zap.Logger) (*GeminiLLM, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiLLM{
		client:  client,
		logger:  logger,
		model:   model,
		timeout: defaultTimeoutSeconds * time.Second,
	}, nil
}

// Generate takes a user prompt and returns the model's reply
func (g *GeminiLLM) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: defaultMaxTokens,
	}

	response, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("%w: generate content: %v", domain.ErrUnreachable, err)
	}

	if len(response.Candidates) == 0 || response.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: no candidates", domain.ErrEmptyReply)
	}

	var reply strings.Builder
	for _, part := range response.Candidates[0].Content.Parts {
		if part.Text != "" {
			reply.WriteString(part.Text)
		}
	}
	if strings.TrimSpace(reply.String()) == "" {
		return "", fmt.Errorf("%w: no text parts", domain.ErrEmptyReply)
	}

	g.logger.Info("Gemini reply generated",
		zap.String("model", g.model),
		zap.Int("replyLength", reply.Len()))
	return reply.String(), nil
}
