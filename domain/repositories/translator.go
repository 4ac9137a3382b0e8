package repositories

import "context"

// Translator abstracts text translation services
type Translator interface {
	// Translate converts text from sourceLang to targetLang (ISO 639-1 codes).
	// Returns domain.ErrUnsupportedLanguage when the pair is rejected and
	// domain.ErrUnreachable when the backend cannot be contacted.
	Translate(ctx context.Context, text string, sourceLang, targetLang string) (string, error)
}
