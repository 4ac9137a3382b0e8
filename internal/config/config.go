package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application-wide configuration populated from environment variables.
type Config struct {
	Port         string
	AudioDir     string
	GeminiAPIKey string
	GeminiModel  string
	SourceLang   string
	STTLanguage  string
	ChatTTL      time.Duration
	SweepEvery   time.Duration
	Offline      bool
}

// Load reads environment variables (and a .env file when present) and
// returns Config with defaults applied.
func Load() *Config {
	_ = godotenv.Load()
	return &Config{
		Port:         getEnv("PORT", "8080"),
		AudioDir:     getEnv("AUDIO_DIR", "static/audio"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		SourceLang:   getEnv("TRANSLATE_SOURCE_LANG", "en"),
		STTLanguage:  getEnv("STT_LANGUAGE", "en-US"),
		ChatTTL:      getEnvDuration("CHAT_ARTIFACT_TTL", time.Hour),
		SweepEvery:   getEnvDuration("SWEEP_INTERVAL", 10*time.Minute),
		Offline:      getEnvBool("OFFLINE_MODE", false),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	switch os.Getenv(key) {
	case "1", "true", "TRUE", "yes", "on":
		return true
	case "0", "false", "FALSE", "no", "off":
		return false
	default:
		return def
	}
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return def
}
