package openai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lehigh-university-libraries/sketchbook/internal/imagegen"
	goopenai "github.com/sashabaranov/go-openai"
)

// ImageGenerator generates images with DALL-E.
type ImageGenerator struct {
	client *goopenai.Client
	opts   imagegen.Options
}

// NewImageGenerator returns a DALL-E generator. The returned URLs are hosted by
// OpenAI and expire after about an hour.
func NewImageGenerator(clientOpts Options, opts imagegen.Options) (*ImageGenerator, error) {
	client, err := newClient(clientOpts)
	if err != nil {
		return nil, err
	}
	return &ImageGenerator{
		client: client,
		opts:   opts.WithDefaults(goopenai.CreateImageModelDallE3),
	}, nil
}

// Generate requests a single image and returns its URL.
func (g *ImageGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	req := goopenai.ImageRequest{
		Prompt:         prompt,
		Model:          g.opts.Model,
		Size:           g.opts.Size,
		Quality:        g.opts.Quality,
		N:              1,
		ResponseFormat: goopenai.CreateImageResponseFormatURL,
	}

	resp, err := g.client.CreateImage(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai image generation failed: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", fmt.Errorf("openai: %w", imagegen.ErrNoImage)
	}

	slog.Info("Generated image", "provider", "openai", "model", g.opts.Model, "revised_prompt", resp.Data[0].RevisedPrompt)
	return resp.Data[0].URL, nil
}

var _ imagegen.Generator = (*ImageGenerator)(nil)
