package drawing

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/lehigh-university-libraries/sketchbook/internal/composer"
	"github.com/lehigh-university-libraries/sketchbook/internal/config"
	"github.com/lehigh-university-libraries/sketchbook/internal/gemini"
	"github.com/lehigh-university-libraries/sketchbook/internal/imagegen"
	"github.com/lehigh-university-libraries/sketchbook/internal/openai"
)

// NewComposer builds the composer for the configured describe provider.
func NewComposer(cfg *config.Config) (*composer.Composer, error) {
	provider, err := composer.NewProvider(cfg.Describe.Provider, composer.ProviderOptions{
		OpenAIKey:     cfg.OpenAIAPIKey,
		OpenAIBaseURL: cfg.OpenAIBaseURL,
		GeminiKey:     cfg.GeminiAPIKey,
		OllamaURL:     cfg.OllamaURL,
		HTTPClient:    &http.Client{Timeout: cfg.HTTPTimeout},
	})
	if err != nil {
		return nil, err
	}

	model := cfg.Describe.Model
	if model == "" {
		model = composer.DefaultModel(cfg.Describe.Provider)
	}
	return composer.New(provider, model), nil
}

// NewGenerator builds the configured image generator.
func NewGenerator(ctx context.Context, cfg *config.Config) (imagegen.Generator, error) {
	opts := imagegen.Options{
		Model:   cfg.Image.Model,
		Size:    cfg.Image.Size,
		Quality: cfg.Image.Quality,
	}

	switch cfg.Image.Provider {
	case "openai":
		return openai.NewImageGenerator(openai.Options{
			APIKey:     cfg.OpenAIAPIKey,
			BaseURL:    cfg.OpenAIBaseURL,
			HTTPClient: &http.Client{Timeout: cfg.HTTPTimeout},
		}, opts)
	case "gemini":
		return gemini.NewImageGenerator(ctx, cfg.GeminiAPIKey, opts, filepath.Join(cfg.WorkDir, "generated"))
	default:
		return nil, fmt.Errorf("unsupported image provider: %s", cfg.Image.Provider)
	}
}
