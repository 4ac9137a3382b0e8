package translate

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/voxbridge/server/domain/repositories"
)

// MockTranslator is a placeholder translator for running without network access.
type MockTranslator struct {
	logger *zap.Logger
}

// NewMockTranslator creates a new mock translator
func NewMockTranslator(logger *zap.Logger) repositories.Translator {
	return &MockTranslator{logger: logger}
}

// Translate implements repositories.Translator
func (m *MockTranslator) Translate(ctx context.Context, text string, sourceLang, targetLang string) (string, error) {
	m.logger.Info("Mock translation",
		zap.String("langpair", sourceLang+"|"+targetLang))
	return fmt.Sprintf("[%s] %s", targetLang, text), nil
}
