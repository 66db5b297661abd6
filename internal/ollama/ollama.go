package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/lehigh-university-libraries/sketchbook/internal/providers"
	"github.com/ollama/ollama/api"
)

const defaultURL = "http://localhost:11434"

// Ollama is a provider for Ollama
type Ollama struct {
	client *api.Client
}

// New returns a new Ollama provider talking to baseURL.
func New(baseURL string, httpClient *http.Client) (*Ollama, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama URL %q: %w", baseURL, err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Ollama{client: api.NewClient(u, httpClient)}, nil
}

// ExtractText extracts text from the given prompt using Ollama
func (o *Ollama) ExtractText(ctx context.Context, config providers.Config) (string, error) {
	stream := false
	req := &api.GenerateRequest{
		Model:  config.Model,
		Prompt: config.Prompt,
		Stream: &stream,
		Options: map[string]any{
			"temperature": config.Temperature,
		},
	}
	if len(config.Image) > 0 {
		req.Images = []api.ImageData{config.Image}
	}

	var sb strings.Builder
	err := o.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		sb.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to call Ollama API: %w", err)
	}

	if sb.Len() == 0 {
		return "", fmt.Errorf("ollama: %w", providers.ErrEmptyResponse)
	}
	return sb.String(), nil
}

var _ providers.Provider = (*Ollama)(nil)
