package tts

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/voxbridge/server/domain"
	"github.com/voxbridge/server/domain/repositories"
)

// MockTextToSpeech is a placeholder synthesizer for running without network
// access.
type MockTextToSpeech struct {
	logger *zap.Logger
}

// NewMockTextToSpeech creates a new mock text-to-speech service
func NewMockTextToSpeech(logger *zap.Logger) repositories.TextToSpeech {
	return &MockTextToSpeech{logger: logger}
}

// SynthesizeAudio implements repositories.TextToSpeech
func (t *MockTextToSpeech) SynthesizeAudio(ctx context.Context, text string, config repositories.VoiceConfig) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text cannot be empty", domain.ErrSynthesisFailed)
	}

	t.logger.Info("Mock synthesis",
		zap.String("language", config.Language),
		zap.Int("textLength", len(text)))

	// Mock audio data sized from the text length
	mockAudio := make([]byte, len(text)*100)
	for i := range mockAudio {
		mockAudio[i] = byte(i % 256)
	}
	return mockAudio, nil
}
