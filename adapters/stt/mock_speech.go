package stt

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/voxbridge/server/domain/repositories"
)

// MockSpeechToText is a placeholder recognizer used when no Google Cloud
// credentials are configured.
type MockSpeechToText struct {
	logger *zap.Logger
}

// NewMockSpeechToText creates a new mock speech-to-text service
func NewMockSpeechToText(logger *zap.Logger) repositories.SpeechToText {
	return &MockSpeechToText{logger: logger}
}

// Transcribe implements repositories.SpeechToText
func (s *MockSpeechToText) Transcribe(ctx context.Context, audioPath string, config repositories.AudioConfig) (string, error) {
	info, err := os.Stat(audioPath)
	if err != nil {
		return "", fmt.Errorf("read audio file: %w", err)
	}

	s.logger.Info("Mock transcription",
		zap.Int64("audioSize", info.Size()),
		zap.String("language", config.Language))

	// Mock transcription based on audio size
	switch {
	case info.Size() > 10000:
		return "Hello there, I would like to tell you about my day.", nil
	case info.Size() > 1000:
		return "Hello there!", nil
	default:
		return "Hi", nil
	}
}
