// Package drawing runs one draw: compose a prompt, generate an image and add
// it to the session gallery.
package drawing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lehigh-university-libraries/sketchbook/internal/composer"
	"github.com/lehigh-university-libraries/sketchbook/internal/gallery"
	"github.com/lehigh-university-libraries/sketchbook/internal/history"
	"github.com/lehigh-university-libraries/sketchbook/internal/imagegen"
)

var (
	// ErrMissingIdentity is returned when class or name is empty.
	ErrMissingIdentity = errors.New("class and name are required")

	// ErrGeneration wraps image generator failures.
	ErrGeneration = errors.New("image generation failed")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// PromptComposer builds the prompt sent to the image generator.
type PromptComposer interface {
	Compose(ctx context.Context, ref *composer.Image, text string) (string, error)
}

// Request is what the student submitted.
type Request struct {
	ClassID   string `validate:"required"`
	Name      string `validate:"required"`
	Text      string
	Reference *composer.Image
}

// Result is the outcome of a successful draw.
type Result struct {
	Image  gallery.ImageRef
	Index  int
	Prompt string
}

// Service draws images into galleries.
type Service struct {
	composer  PromptComposer
	generator imagegen.Generator
	history   *history.Log
}

// NewService wires a composer and generator. history may be nil.
func NewService(c PromptComposer, g imagegen.Generator, h *history.Log) *Service {
	return &Service{composer: c, generator: g, history: h}
}

// Draw composes a prompt, generates one image and appends it to gal. On any
// failure gal is left unchanged.
func (s *Service) Draw(ctx context.Context, sessionID string, gal *gallery.Gallery, req Request) (*Result, error) {
	req.ClassID = strings.TrimSpace(req.ClassID)
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingIdentity, err)
	}

	prompt, err := s.composer.Compose(ctx, req.Reference, req.Text)
	if err != nil {
		return nil, err
	}

	locator, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	ref := gallery.NewImageRef(locator)
	gal.Append(ref)
	index := gal.Len() - 1

	if s.history != nil {
		s.history.Add(history.Record{
			SessionID:   sessionID,
			ClassID:     req.ClassID,
			Name:        req.Name,
			UserText:    req.Text,
			Prompt:      prompt,
			Locator:     locator,
			HasImage:    req.Reference != nil,
			CreatedAtMS: ref.CreatedAt.UnixMilli(),
		})
	}

	slog.Info("Image drawn", "session_id", sessionID, "class_id", req.ClassID, "name", req.Name, "index", index)
	return &Result{Image: ref, Index: index, Prompt: prompt}, nil
}

// SaveResult lists the files written by Save.
type SaveResult struct {
	Paths        []string `json:"paths"`
	SelectedPath string   `json:"selected_path,omitempty"`
}

// Save writes every gallery image and, when one is selected, the selected
// image too. Files written before a failure stay on disk.
func Save(ctx context.Context, gal *gallery.Gallery, req gallery.SaveRequest) (*SaveResult, error) {
	paths, err := gal.PersistAll(ctx, req)
	result := &SaveResult{Paths: paths}
	if err != nil {
		return result, err
	}

	if gal.Selection().IsNone() {
		return result, nil
	}
	selected, err := gal.PersistSelected(ctx, req)
	if err != nil {
		return result, err
	}
	result.SelectedPath = selected
	return result, nil
}
