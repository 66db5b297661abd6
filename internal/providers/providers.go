package providers

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when a provider answers with no text.
var ErrEmptyResponse = errors.New("empty response from provider")

// Config represents the configuration for a single LLM request
type Config struct {
	Model       string
	Temperature float64
	MaxTokens   int
	Prompt      string

	// Image is optional reference image data sent alongside the prompt.
	Image     []byte
	ImageMIME string
}

// Provider defines the interface for an LLM provider
type Provider interface {
	ExtractText(ctx context.Context, config Config) (string, error)
}

// Provider names accepted in configuration.
const (
	OpenAI = "openai"
	Ollama = "ollama"
	Gemini = "gemini"
)
