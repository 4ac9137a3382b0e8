package repositories

import "context"

// TextToSpeech abstracts text-to-speech services
type TextToSpeech interface {
	// SynthesizeAudio converts text to audio data
	SynthesizeAudio(ctx context.Context, text string, config VoiceConfig) ([]byte, error)
}

// VoiceConfig represents voice configuration for TTS
type VoiceConfig struct {
	Language  string `json:"language"`
	SpeakRate string `json:"speak_rate"`
}
