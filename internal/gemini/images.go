package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/lehigh-university-libraries/sketchbook/internal/imagegen"
	"github.com/lehigh-university-libraries/sketchbook/internal/images"
	genaisdk "google.golang.org/genai"
)

const defaultImageModel = "gemini-2.5-flash-image"

// ImageGenerator generates images with a Gemini image model and stores them
// under outputDir, since the API returns inline bytes rather than a URL.
type ImageGenerator struct {
	client    *genaisdk.Client
	opts      imagegen.Options
	outputDir string
}

// NewImageGenerator creates a Gemini image generator writing into outputDir.
func NewImageGenerator(ctx context.Context, apiKey string, opts imagegen.Options, outputDir string) (*ImageGenerator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	client, err := genaisdk.NewClient(ctx, &genaisdk.ClientConfig{
		APIKey:  strings.TrimSpace(apiKey),
		Backend: genaisdk.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &ImageGenerator{
		client:    client,
		opts:      opts.WithDefaults(defaultImageModel),
		outputDir: outputDir,
	}, nil
}

// Generate creates one image and returns the path it was written to.
func (g *ImageGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genaisdk.Content{
		{
			Role:  "user",
			Parts: []*genaisdk.Part{{Text: prompt}},
		},
	}
	config := &genaisdk.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
		ImageConfig:        &genaisdk.ImageConfig{AspectRatio: aspectRatio(g.opts.Size)},
	}

	result, err := g.client.Models.GenerateContent(ctx, g.opts.Model, contents, config)
	if err != nil {
		return "", fmt.Errorf("gemini image generation failed: %w", err)
	}

	data, mime := firstImage(result)
	if len(data) == 0 {
		return "", fmt.Errorf("gemini: %w", imagegen.ErrNoImage)
	}
	if mime == "" {
		mime = images.DetectMIME(data)
	}

	path := filepath.Join(g.outputDir, uuid.NewString()+"."+images.ExtensionFromMIME(mime))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write generated image: %w", err)
	}

	slog.Info("Generated image", "provider", "gemini", "model", g.opts.Model, "path", path, "bytes", len(data))
	return path, nil
}

func firstImage(result *genaisdk.GenerateContentResponse) ([]byte, string) {
	if result == nil {
		return nil, ""
	}
	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, part.InlineData.MIMEType
			}
		}
	}
	return nil, ""
}

// aspectRatio maps a WxH size onto the ratios Gemini accepts.
func aspectRatio(size string) string {
	switch size {
	case "1792x1024":
		return "16:9"
	case "1024x1792":
		return "9:16"
	default:
		return "1:1"
	}
}

var _ imagegen.Generator = (*ImageGenerator)(nil)
