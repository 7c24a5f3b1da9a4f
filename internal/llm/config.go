package llm

// OpenAIConfig holds OpenAI provider settings.
type OpenAIConfig struct {
	APIKey string
	Model  string
	// BaseURL overrides the API endpoint (OpenRouter and other
	// OpenAI-compatible APIs).
	BaseURL string
}

// GeminiConfig holds Google Gemini provider settings.
type GeminiConfig struct {
	APIKey string
	Model  string
}
