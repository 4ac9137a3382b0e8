package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/voxbridge/server/domain"
	"github.com/voxbridge/server/domain/repositories"
	"github.com/voxbridge/server/internal/artifact"
)

// chatVoiceLanguage is the synthesis language for AI replies.
const chatVoiceLanguage = "en"

// ChatResult is the outcome of a successful chat pipeline run.
type ChatResult struct {
	Reply     string
	AudioFile string
}

// ChatService chains the conversation model and speech synthesis into one
// request/response operation. Replies are written as ai_reply artifacts and
// left for the janitor; this pipeline never purges.
type ChatService struct {
	llm          repositories.LargeLanguageModel
	textToSpeech repositories.TextToSpeech
	store        *artifact.Store
	logger       *zap.Logger
}

// NewChatService creates a new chat service
func NewChatService(
	llm repositories.LargeLanguageModel,
	tts repositories.TextToSpeech,
	store *artifact.Store,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		llm:          llm,
		textToSpeech: tts,
		store:        store,
		logger:       logger,
	}
}

// Execute runs the chat pipeline. The message is forwarded to the model
// as-is, empty included; whether to reject empty input is the model's call.
func (s *ChatService) Execute(ctx context.Context, message string) (*ChatResult, error) {
	start := time.Now()

	reply, err := s.llm.Generate(ctx, message)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrChatFailed, err)
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return nil, fmt.Errorf("%w: %v", domain.ErrChatFailed, domain.ErrEmptyReply)
	}

	audio, err := s.textToSpeech.SynthesizeAudio(ctx, reply, repositories.VoiceConfig{
		Language: chatVoiceLanguage,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrChatFailed, err)
	}

	name, err := s.store.Write(audio, artifact.TagChatReply)
	if err != nil {
		return nil, fmt.Errorf("store artifact: %w", err)
	}

	s.logger.Info("Chat pipeline completed",
		zap.String("artifact", name),
		zap.Duration("elapsed", time.Since(start)))

	return &ChatResult{Reply: reply, AudioFile: name}, nil
}
