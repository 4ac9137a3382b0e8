package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/voxbridge/server/adapters/llm"
	"github.com/voxbridge/server/adapters/stt"
	"github.com/voxbridge/server/adapters/translate"
	"github.com/voxbridge/server/adapters/tts"
	"github.com/voxbridge/server/domain/repositories"
	"github.com/voxbridge/server/internal/api"
	"github.com/voxbridge/server/internal/artifact"
	"github.com/voxbridge/server/internal/config"
	"github.com/voxbridge/server/usecase"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg := config.Load()

	// Artifact store owns the generated-audio directory
	store, err := artifact.NewStore(cfg.AudioDir, logger)
	if err != nil {
		logger.Fatal("Failed to initialize artifact store", zap.Error(err))
	}

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Initialize adapters
	var speechToText repositories.SpeechToText
	if !cfg.Offline && os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") != "" {
		speechToText = stt.NewGoogleSpeechToText(logger)
	} else {
		logger.Warn("Using mock speech-to-text")
		speechToText = stt.NewMockSpeechToText(logger)
	}

	var conversation repositories.LargeLanguageModel
	if !cfg.Offline && cfg.GeminiAPIKey != "" {
		conversation, err = llm.NewGeminiLLM(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, logger)
		if err != nil {
			logger.Fatal("Failed to initialize Gemini client", zap.Error(err))
		}
	} else {
		logger.Warn("Using mock conversation model")
		conversation = llm.NewMockGeminiClient()
	}

	var translator repositories.Translator
	var textToSpeech repositories.TextToSpeech
	if cfg.Offline {
		logger.Warn("Offline mode, using mock translator and synthesizer")
		translator = translate.NewMockTranslator(logger)
		textToSpeech = tts.NewMockTextToSpeech(logger)
	} else {
		translator = translate.NewMyMemoryTranslator("", logger)
		textToSpeech = tts.NewGoogleTranslateTTS("", logger)
	}

	// Initialize usecase services
	translateService := usecase.NewTranslateService(
		speechToText, translator, textToSpeech, store,
		cfg.SourceLang, cfg.STTLanguage, logger)
	chatService := usecase.NewChatService(conversation, textToSpeech, store, logger)

	// Chat replies are never purged inline; the janitor sweeps them by TTL
	janitor := artifact.NewJanitor(store, artifact.TagChatReply, cfg.ChatTTL, cfg.SweepEvery, logger)
	janitor.Start()
	defer janitor.Stop()

	// Initialize API routes
	api.InitRoutes(e, translateService, chatService, store, logger)

	// Graceful shutdown
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	logger.Info("Server started", zap.String("port", cfg.Port), zap.String("audioDir", cfg.AudioDir))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
