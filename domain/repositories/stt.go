package repositories

import "context"

// SpeechToText abstracts speech recognition services
type SpeechToText interface {
	// Transcribe converts the audio file at audioPath to text.
	// Returns domain.ErrUnrecognized when no speech could be extracted and
	// domain.ErrUnreachable when the backend cannot be contacted.
	Transcribe(ctx context.Context, audioPath string, config AudioConfig) (string, error)
}

// AudioConfig represents audio configuration for speech recognition
type AudioConfig struct {
	SampleRate int    `json:"sample_rate"`
	Encoding   string `json:"encoding"`
	Language   string `json:"language"`
}
