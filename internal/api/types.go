package api

// ChatRequest represents the request payload for the chat endpoint
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse represents the response payload for the chat endpoint
type ChatResponse struct {
	Reply    string `json:"reply"`
	AudioURL string `json:"audio_url"`
}

// TranslateResponse represents the response payload for the translate endpoint
type TranslateResponse struct {
	InputText      string `json:"input_text"`
	TranslatedText string `json:"translated_text"`
	AudioURL       string `json:"audio_url"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
