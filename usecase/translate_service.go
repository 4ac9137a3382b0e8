package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/voxbridge/server/domain"
	"github.com/voxbridge/server/domain/repositories"
	"github.com/voxbridge/server/internal/artifact"
	"github.com/voxbridge/server/internal/textutil"
)

// Translate request modes.
const (
	ModeSpeech = "speech"
	ModeText   = "text"
)

// CouldNotUnderstand is the sentinel text substituted when the recognizer
// cannot interpret the uploaded audio. It flows through translation and
// synthesis like ordinary input.
const CouldNotUnderstand = "Sorry, could not understand the audio."

// wrapWidth is the display column width for translated text. The wrapped
// form, line breaks included, is exactly what gets synthesized.
const wrapWidth = 70

// TranslateRequest carries one translate pipeline invocation. Exactly one of
// Audio and Text is populated, selected by Mode.
type TranslateRequest struct {
	Mode           string
	TargetLanguage string
	Audio          []byte
	Text           string
}

// TranslateResult is the outcome of a successful translate pipeline run.
type TranslateResult struct {
	InputText      string
	TranslatedText string
	AudioFile      string
}

// TranslateService chains transcription (speech mode only), translation,
// and synthesis into one request/response operation, owning the lifecycle
// of the resulting audio artifact.
type TranslateService struct {
	speechToText repositories.SpeechToText
	translator   repositories.Translator
	textToSpeech repositories.TextToSpeech
	store        *artifact.Store
	sourceLang   string
	sttLanguage  string
	logger       *zap.Logger
}

// NewTranslateService creates a new translate service
func NewTranslateService(
	stt repositories.SpeechToText,
	translator repositories.Translator,
	tts repositories.TextToSpeech,
	store *artifact.Store,
	sourceLang string,
	sttLanguage string,
	logger *zap.Logger,
) *TranslateService {
	return &TranslateService{
		speechToText: stt,
		translator:   translator,
		textToSpeech: tts,
		store:        store,
		sourceLang:   sourceLang,
		sttLanguage:  sttLanguage,
		logger:       logger,
	}
}

// Execute runs the translate pipeline
func (s *TranslateService) Execute(ctx context.Context, req TranslateRequest) (*TranslateResult, error) {
	start := time.Now()

	if req.TargetLanguage == "" {
		return nil, fmt.Errorf("%w: target_language is required", domain.ErrInput)
	}

	var inputText string
	switch req.Mode {
	case ModeSpeech:
		if len(req.Audio) == 0 {
			return nil, fmt.Errorf("%w: audio is required in speech mode", domain.ErrInput)
		}
		text, err := s.transcribe(ctx, req.Audio)
		if err != nil {
			return nil, err
		}
		inputText = text
	case ModeText:
		if req.Text == "" {
			return nil, fmt.Errorf("%w: text is required in text mode", domain.ErrInput)
		}
		inputText = req.Text
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", domain.ErrInput, req.Mode)
	}

	translated, err := s.translator.Translate(ctx, inputText, s.sourceLang, req.TargetLanguage)
	if err != nil {
		return nil, fmt.Errorf("translation: %w", err)
	}
	wrapped := textutil.Fill(translated, wrapWidth)

	// Only this request's predecessors are swept: a concurrent request that
	// started later writes its artifact with a newer timestamp.
	if _, err := s.store.Purge(artifact.TagTranslateOutput, start); err != nil {
		s.logger.Warn("Stale artifact purge failed", zap.Error(err))
	}

	audio, err := s.textToSpeech.SynthesizeAudio(ctx, wrapped, repositories.VoiceConfig{
		Language: req.TargetLanguage,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSynthesisFailed, err)
	}

	name, err := s.store.Write(audio, artifact.TagTranslateOutput)
	if err != nil {
		return nil, fmt.Errorf("store artifact: %w", err)
	}

	s.logger.Info("Translate pipeline completed",
		zap.String("mode", req.Mode),
		zap.String("targetLanguage", req.TargetLanguage),
		zap.String("artifact", name),
		zap.Duration("elapsed", time.Since(start)))

	return &TranslateResult{
		InputText:      inputText,
		TranslatedText: wrapped,
		AudioFile:      name,
	}, nil
}

// transcribe ingests the upload into a scoped temp file, recognizes it, and
// guarantees the temp file is released on every exit path. An unrecognizable
// recording is absorbed into the sentinel text; an unreachable recognizer
// aborts the pipeline.
func (s *TranslateService) transcribe(ctx context.Context, audio []byte) (string, error) {
	path, err := s.store.IngestTemp(audio)
	if err != nil {
		return "", fmt.Errorf("ingest audio: %w", err)
	}
	defer s.store.ReleaseTemp(path)

	text, err := s.speechToText.Transcribe(ctx, path, repositories.AudioConfig{
		Language: s.sttLanguage,
	})
	if errors.Is(err, domain.ErrUnrecognized) {
		s.logger.Info("Audio not recognized, continuing with sentinel text")
		return CouldNotUnderstand, nil
	}
	if err != nil {
		return "", fmt.Errorf("transcription: %w", err)
	}
	return text, nil
}
