package composer

import (
	"fmt"
	"net/http"

	"github.com/lehigh-university-libraries/sketchbook/internal/gemini"
	"github.com/lehigh-university-libraries/sketchbook/internal/ollama"
	"github.com/lehigh-university-libraries/sketchbook/internal/openai"
	"github.com/lehigh-university-libraries/sketchbook/internal/providers"
)

// ProviderOptions carries what any of the describe providers may need.
type ProviderOptions struct {
	OpenAIKey     string
	OpenAIBaseURL string
	GeminiKey     string
	OllamaURL     string
	HTTPClient    *http.Client
}

// NewProvider returns the named describe/translate provider.
func NewProvider(name string, opts ProviderOptions) (providers.Provider, error) {
	switch name {
	case providers.OpenAI:
		return openai.New(openai.Options{
			APIKey:     opts.OpenAIKey,
			BaseURL:    opts.OpenAIBaseURL,
			HTTPClient: opts.HTTPClient,
		})
	case providers.Ollama:
		return ollama.New(opts.OllamaURL, opts.HTTPClient)
	case providers.Gemini:
		return gemini.New(opts.GeminiKey)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", name)
	}
}

// DefaultModel returns the model used for name when none is configured.
func DefaultModel(name string) string {
	switch name {
	case providers.OpenAI:
		return "gpt-4o"
	case providers.Ollama:
		return "mistral-small3.2:24b"
	case providers.Gemini:
		return "gemini-1.5-flash"
	default:
		return ""
	}
}
