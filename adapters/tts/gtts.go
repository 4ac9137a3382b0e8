package tts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/voxbridge/server/domain"
	"github.com/voxbridge/server/domain/repositories"
)

const (
	defaultAPIBaseURL = "https://translate.google.com"
	defaultClient     = "tw-ob"
	defaultTimeout    = 60 * time.Second

	// The endpoint caps the q parameter; longer text is synthesized in
	// chunks and the mp3 segments concatenated.
	maxChunkLen = 200
)

// GoogleTranslateTTS implements TextToSpeech using the Google Translate
// speech endpoint, which returns mp3 audio for short text fragments.
type GoogleTranslateTTS struct {
	apiBaseURL string
	client     *http.Client
	logger     *zap.Logger
}

var _ repositories.TextToSpeech = (*GoogleTranslateTTS)(nil)

// NewGoogleTranslateTTS creates a new synthesizer. baseURL overrides the
// public endpoint; empty means the default.
func NewGoogleTranslateTTS(baseURL string, logger *zap.Logger) *GoogleTranslateTTS {
	if baseURL == "" {
		baseURL = defaultAPIBaseURL
	}
	return &GoogleTranslateTTS{
		apiBaseURL: baseURL,
		client:     &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}
}

// SynthesizeAudio converts text to mp3 bytes in the configured language.
func (g *GoogleTranslateTTS) SynthesizeAudio(ctx context.Context, text string, config repositories.VoiceConfig) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text cannot be empty", domain.ErrSynthesisFailed)
	}
	if config.Language == "" {
		return nil, fmt.Errorf("%w: language is required", domain.ErrUnsupportedLanguage)
	}

	var audio []byte
	chunks := splitChunks(text, maxChunkLen)
	for _, chunk := range chunks {
		data, err := g.fetchChunk(ctx, chunk, config.Language)
		if err != nil {
			return nil, err
		}
		audio = append(audio, data...)
	}

	g.logger.Info("Speech synthesis completed",
		zap.String("language", config.Language),
		zap.Int("chunks", len(chunks)),
		zap.Int("audioSize", len(audio)))
	return audio, nil
}

func (g *GoogleTranslateTTS) fetchChunk(ctx context.Context, text, lang string) ([]byte, error) {
	query := url.Values{}
	query.Set("ie", "UTF-8")
	query.Set("client", defaultClient)
	query.Set("tl", lang)
	query.Set("q", text)
	reqURL := fmt.Sprintf("%s/translate_tts?%s", g.apiBaseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create synthesis request: %w", err)
	}
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: synthesis request: %v", domain.ErrUnreachable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusBadRequest:
		// The endpoint answers 404 for language codes it does not speak.
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedLanguage, lang)
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: synthesis API returned %d: %s", domain.ErrUnreachable, resp.StatusCode, body)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read synthesis response: %v", domain.ErrUnreachable, err)
	}
	return data, nil
}

// splitChunks splits text on whitespace into pieces of at most max bytes,
// keeping words whole. A single word longer than max becomes its own chunk.
func splitChunks(text string, max int) []string {
	words := strings.Fields(text)
	var chunks []string
	var current strings.Builder
	for _, word := range words {
		if current.Len() > 0 && current.Len()+1+len(word) > max {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}
