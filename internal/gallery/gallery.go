// Package gallery holds the images generated during one drawing session,
// tracks which one the student picked, and saves them to disk.
package gallery

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ImageRef points at one generated image. Locator is a URL or a local path.
type ImageRef struct {
	Locator   string    `json:"locator"`
	CreatedAt time.Time `json:"created_at"`
}

// NewImageRef stamps a locator with the current time.
func NewImageRef(locator string) ImageRef {
	return ImageRef{Locator: locator, CreatedAt: time.Now()}
}

// Sink copies the bytes behind a locator to a destination path.
type Sink interface {
	Copy(ctx context.Context, locator, destPath string) error
}

// Gallery is an append-only, ordered list of images plus an optional selection.
type Gallery struct {
	mu        sync.Mutex
	images    []ImageRef
	selection Selection
	sink      Sink
}

// New returns an empty gallery that saves through sink.
func New(sink Sink) *Gallery {
	return &Gallery{sink: sink}
}

// Append adds ref to the end of the gallery. The selection is untouched.
func (g *Gallery) Append(ref ImageRef) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.images = append(g.images, ref)
}

// Len returns the number of images.
func (g *Gallery) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.images)
}

// Images returns a copy of the images in append order.
func (g *Gallery) Images() []ImageRef {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]ImageRef, len(g.images))
	copy(out, g.images)
	return out
}

// Image returns the image at index.
func (g *Gallery) Image(index int) (ImageRef, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if index < 0 || index >= len(g.images) {
		return ImageRef{}, fmt.Errorf("%w: %d (gallery has %d)", ErrOutOfRange, index, len(g.images))
	}
	return g.images[index], nil
}

// Selection returns the current selection.
func (g *Gallery) Selection() Selection {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.validSelection()
}

// Select marks index as the chosen image. On failure the selection is unchanged.
func (g *Gallery) Select(index int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if index < 0 || index >= len(g.images) {
		return fmt.Errorf("%w: %d (gallery has %d)", ErrOutOfRange, index, len(g.images))
	}
	g.selection = Selected(index)
	return nil
}

// ClearSelection drops the current selection.
func (g *Gallery) ClearSelection() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.selection = NoSelection()
}

// validSelection must hold mu. Anything that shrinks images has to go through here.
func (g *Gallery) validSelection() Selection {
	if i, ok := g.selection.Index(); ok && (i < 0 || i >= len(g.images)) {
		g.selection = NoSelection()
	}
	return g.selection
}

// PersistAll copies every image, in order, to a fresh {class}_{name}_{uuid}.png
// under req.DestinationDir and returns the written paths. Each call writes a
// full new set. On a copy failure the paths written so far are returned along
// with an ErrIO error; nothing is rolled back.
func (g *Gallery) PersistAll(ctx context.Context, req SaveRequest) ([]string, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	images := g.Images()
	if len(images) == 0 {
		return nil, fmt.Errorf("%w: gallery is empty", ErrInvalidRequest)
	}

	paths := make([]string, 0, len(images))
	for i, img := range images {
		dest := req.uniquePath()
		if err := g.sink.Copy(ctx, img.Locator, dest); err != nil {
			return paths, fmt.Errorf("%w: image %d to %s: %w", ErrIO, i, dest, err)
		}
		slog.Debug("Saved gallery image", "index", i, "path", dest)
		paths = append(paths, dest)
	}

	slog.Info("Saved gallery", "class_id", req.ClassID, "name", req.Name, "count", len(paths))
	return paths, nil
}

// PersistSelected copies the selected image to {class}_{name}_Selected.png,
// replacing any earlier file of that name.
func (g *Gallery) PersistSelected(ctx context.Context, req SaveRequest) (string, error) {
	g.mu.Lock()
	sel := g.validSelection()
	var img ImageRef
	index, ok := sel.Index()
	if ok {
		img = g.images[index]
	}
	g.mu.Unlock()

	if !ok {
		return "", ErrNoSelection
	}
	if err := req.Validate(); err != nil {
		return "", err
	}

	dest := req.SelectedPath()
	if err := g.sink.Copy(ctx, img.Locator, dest); err != nil {
		return "", fmt.Errorf("%w: selected image %d to %s: %w", ErrIO, index, dest, err)
	}

	slog.Info("Saved selected image", "class_id", req.ClassID, "name", req.Name, "index", index, "path", dest)
	return dest, nil
}
