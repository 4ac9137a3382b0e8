package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/voxbridge/server/domain"
	"github.com/voxbridge/server/domain/repositories"
)

const (
	defaultAPIBaseURL = "https://api.mymemory.translated.net"
	defaultTimeout    = 30 * time.Second
)

// MyMemoryTranslator implements Translator using the MyMemory REST API.
type MyMemoryTranslator struct {
	apiBaseURL string
	client     *http.Client
	logger     *zap.Logger
}

var _ repositories.Translator = (*MyMemoryTranslator)(nil)

// myMemoryResponse is the subset of the MyMemory payload this adapter reads.
// responseStatus arrives as a number on success and a quoted string on
// errors, so it is parsed leniently.
type myMemoryResponse struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
	ResponseStatus  json.RawMessage `json:"responseStatus"`
	ResponseDetails string          `json:"responseDetails"`
}

func (r *myMemoryResponse) status() int {
	raw := strings.Trim(string(r.ResponseStatus), `"`)
	status, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return status
}

// NewMyMemoryTranslator creates a new MyMemory translator. baseURL overrides
// the public endpoint; empty means the default.
func NewMyMemoryTranslator(baseURL string, logger *zap.Logger) *MyMemoryTranslator {
	if baseURL == "" {
		baseURL = defaultAPIBaseURL
	}
	return &MyMemoryTranslator{
		apiBaseURL: baseURL,
		client:     &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}
}

// Translate converts text between languages via GET /get?q=...&langpair=a|b.
func (t *MyMemoryTranslator) Translate(ctx context.Context, text string, sourceLang, targetLang string) (string, error) {
	if sourceLang == "" || targetLang == "" {
		return "", fmt.Errorf("%w: source and target language are required", domain.ErrUnsupportedLanguage)
	}

	query := url.Values{}
	query.Set("q", text)
	query.Set("langpair", sourceLang+"|"+targetLang)
	reqURL := fmt.Sprintf("%s/get?%s", t.apiBaseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("create translation request: %w", err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: translation request: %v", domain.ErrUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read translation response: %v", domain.ErrUnreachable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: translation API returned %d: %s", domain.ErrUnreachable, resp.StatusCode, body)
	}

	var parsed myMemoryResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: decode translation response: %v", domain.ErrUnreachable, err)
	}

	// MyMemory reports langpair problems in-band with a 403 response status.
	if status := parsed.status(); status != 0 && status != http.StatusOK {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedLanguage, parsed.ResponseDetails)
	}

	translated := strings.TrimSpace(parsed.ResponseData.TranslatedText)
	if translated == "" {
		return "", fmt.Errorf("%w: empty translation", domain.ErrUnsupportedLanguage)
	}

	t.logger.Info("Translation completed",
		zap.String("langpair", sourceLang+"|"+targetLang),
		zap.Int("inputLength", len(text)))
	return translated, nil
}
