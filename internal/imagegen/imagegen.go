// Package imagegen defines the image-generation service the drawing flow calls
// once a prompt has been composed.
package imagegen

import (
	"context"
	"errors"
)

// ErrNoImage is returned when the service answers without an image.
var ErrNoImage = errors.New("no image returned")

// Generator turns a prompt into one image and returns its locator, either a
// URL or a local file path.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Options is the fixed per-call configuration. One image per call.
type Options struct {
	Model   string
	Size    string
	Quality string
}

// Default values used when Options fields are empty.
const (
	DefaultSize    = "1024x1024"
	DefaultQuality = "hd"
)

// WithDefaults fills empty fields.
func (o Options) WithDefaults(model string) Options {
	if o.Model == "" {
		o.Model = model
	}
	if o.Size == "" {
		o.Size = DefaultSize
	}
	if o.Quality == "" {
		o.Quality = DefaultQuality
	}
	return o
}
