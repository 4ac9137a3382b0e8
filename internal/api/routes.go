package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/voxbridge/server/domain"
	"github.com/voxbridge/server/internal/artifact"
	"github.com/voxbridge/server/usecase"
)

const audioURLPrefix = "/static/audio/"

// InitRoutes initializes all API routes
func InitRoutes(
	e *echo.Echo,
	translateService *usecase.TranslateService,
	chatService *usecase.ChatService,
	store *artifact.Store,
	logger *zap.Logger,
) {
	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"service": "voxbridge-server",
		})
	})

	e.POST("/translate", func(c echo.Context) error {
		return handleTranslate(c, translateService, logger)
	})
	e.POST("/chat", func(c echo.Context) error {
		return handleChat(c, chatService, logger)
	})
	e.GET("/static/audio/:filename", func(c echo.Context) error {
		return handleServeAudio(c, store)
	})
}

// handleTranslate accepts the form-encoded translate request: mode
// (speech|text), target_language, and either an audio upload or a text field.
func handleTranslate(c echo.Context, service *usecase.TranslateService, logger *zap.Logger) error {
	req := usecase.TranslateRequest{
		Mode:           c.FormValue("mode"),
		TargetLanguage: c.FormValue("target_language"),
		Text:           c.FormValue("text"),
	}

	if req.Mode == usecase.ModeSpeech {
		fileHeader, err := c.FormFile("audio")
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "missing_audio",
				Message: "Audio file is required in speech mode",
			})
		}
		src, err := fileHeader.Open()
		if err != nil {
			logger.Error("Failed to open audio upload", zap.Error(err))
			return c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "invalid_audio",
				Message: "Could not read uploaded audio",
			})
		}
		defer src.Close()
		req.Audio, err = io.ReadAll(src)
		if err != nil {
			logger.Error("Failed to read audio upload", zap.Error(err))
			return c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "invalid_audio",
				Message: "Could not read uploaded audio",
			})
		}
	}

	result, err := service.Execute(c.Request().Context(), req)
	if err != nil {
		logger.Error("Translate pipeline failed",
			zap.String("mode", req.Mode),
			zap.String("targetLanguage", req.TargetLanguage),
			zap.Error(err))
		return c.JSON(statusForError(err), errorPayload(err))
	}

	return c.JSON(http.StatusOK, TranslateResponse{
		InputText:      result.InputText,
		TranslatedText: result.TranslatedText,
		AudioURL:       audioURLPrefix + result.AudioFile,
	})
}

// handleChat accepts the JSON chat request and returns the AI reply plus a
// locator for its synthesized audio.
func handleChat(c echo.Context, service *usecase.ChatService, logger *zap.Logger) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind chat request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request format",
		})
	}

	result, err := service.Execute(c.Request().Context(), req.Message)
	if err != nil {
		logger.Error("Chat pipeline failed", zap.Error(err))
		return c.JSON(statusForError(err), errorPayload(err))
	}

	return c.JSON(http.StatusOK, ChatResponse{
		Reply:    result.Reply,
		AudioURL: audioURLPrefix + result.AudioFile,
	})
}

func handleServeAudio(c echo.Context, store *artifact.Store) error {
	content, err := store.Serve(c.Param("filename"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Audio file not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Could not read audio file",
		})
	}
	return c.Blob(http.StatusOK, "audio/mpeg", content)
}

// statusForError maps pipeline failures onto HTTP statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnreachable), errors.Is(err, domain.ErrUnsupportedLanguage):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func errorPayload(err error) ErrorResponse {
	code := "pipeline_failed"
	switch {
	case errors.Is(err, domain.ErrInput):
		code = "invalid_request"
	case errors.Is(err, domain.ErrUnsupportedLanguage):
		code = "unsupported_language"
	case errors.Is(err, domain.ErrUnreachable):
		code = "upstream_unavailable"
	case errors.Is(err, domain.ErrSynthesisFailed):
		code = "synthesis_failed"
	case errors.Is(err, domain.ErrChatFailed):
		code = "chat_failed"
	}
	return ErrorResponse{Error: code, Message: err.Error()}
}
