// Package composer turns a student's request, with an optional reference
// image, into the prompt sent to the image generator.
package composer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lehigh-university-libraries/sketchbook/internal/providers"
)

var (
	// ErrMissingText is returned when the student did not describe the drawing.
	ErrMissingText = errors.New("missing drawing description")

	// ErrExternalFailure wraps any failure of the describe/translate provider.
	ErrExternalFailure = errors.New("prompt provider failed")
)

// Image is a reference image uploaded by the student.
type Image struct {
	Data     []byte
	MIMEType string
}

// Composer builds image-generation prompts.
type Composer struct {
	provider    providers.Provider
	model       string
	temperature float64
	maxTokens   int
}

// New returns a Composer that describes reference images with provider/model.
func New(provider providers.Provider, model string) *Composer {
	return &Composer{
		provider:  provider,
		model:     model,
		maxTokens: 2000,
	}
}

// Compose returns text unchanged when there is no reference image. With an
// image, the provider describes it, translates text into English and combines
// both into one prompt. Nothing is cached.
func (c *Composer) Compose(ctx context.Context, ref *Image, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrMissingText
	}
	if ref == nil || len(ref.Data) == 0 {
		return text, nil
	}
	if c.provider == nil {
		return "", fmt.Errorf("%w: no provider configured", ErrExternalFailure)
	}

	raw, err := c.provider.ExtractText(ctx, providers.Config{
		Model:       c.model,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
		Prompt:      buildCombinePrompt(text),
		Image:       ref.Data,
		ImageMIME:   ref.MIMEType,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrExternalFailure, err)
	}

	prompt := cleanPrompt(raw)
	if prompt == "" {
		return "", fmt.Errorf("%w: %w", ErrExternalFailure, providers.ErrEmptyResponse)
	}

	slog.Debug("Composed prompt from reference image", "model", c.model, "length", len(prompt))
	return prompt, nil
}
