package openai

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/lehigh-university-libraries/sketchbook/internal/providers"
	goopenai "github.com/sashabaranov/go-openai"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Options configures the OpenAI clients.
type Options struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func newClient(opts Options) (*goopenai.Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not set")
	}
	cfg := goopenai.DefaultConfig(strings.TrimSpace(opts.APIKey))
	cfg.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if opts.HTTPClient != nil {
		cfg.HTTPClient = opts.HTTPClient
	}
	return goopenai.NewClientWithConfig(cfg), nil
}

// OpenAI is a provider for OpenAI
type OpenAI struct {
	client *goopenai.Client
}

// New returns a new OpenAI provider
func New(opts Options) (*OpenAI, error) {
	client, err := newClient(opts)
	if err != nil {
		return nil, err
	}
	return &OpenAI{client: client}, nil
}

// ExtractText sends the prompt, and the image if one is set, to chat/completions.
func (o *OpenAI) ExtractText(ctx context.Context, config providers.Config) (string, error) {
	msg := goopenai.ChatCompletionMessage{Role: goopenai.ChatMessageRoleUser}
	if len(config.Image) == 0 {
		msg.Content = config.Prompt
	} else {
		mime := config.ImageMIME
		if mime == "" {
			mime = "image/jpeg"
		}
		msg.MultiContent = []goopenai.ChatMessagePart{
			{
				Type: goopenai.ChatMessagePartTypeText,
				Text: config.Prompt,
			},
			{
				Type: goopenai.ChatMessagePartTypeImageURL,
				ImageURL: &goopenai.ChatMessageImageURL{
					URL: "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(config.Image),
				},
			},
		}
	}

	req := goopenai.ChatCompletionRequest{
		Model:       config.Model,
		Messages:    []goopenai.ChatCompletionMessage{msg},
		MaxTokens:   config.MaxTokens,
		Temperature: float32(config.Temperature),
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to call OpenAI API: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from OpenAI: %w", providers.ErrEmptyResponse)
	}

	text := resp.Choices[0].Message.Content
	slog.Info("Extracted text", "provider", providers.OpenAI, "model", config.Model, "length", len(text))
	return text, nil
}

var _ providers.Provider = (*OpenAI)(nil)
