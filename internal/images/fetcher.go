package images

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
)

// Fetcher reads and copies generated images from a URL or a local path.
type Fetcher struct {
	HTTPClient *http.Client
}

// NewFetcher creates a new image fetcher
func NewFetcher() *Fetcher {
	return &Fetcher{
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// IsRemote reports whether locator should be fetched over HTTP.
func IsRemote(locator string) bool {
	return strings.HasPrefix(locator, "http://") || strings.HasPrefix(locator, "https://")
}

// Copy writes the bytes behind locator to destPath. The destination directory
// must already exist; an existing file is truncated.
func (f *Fetcher) Copy(ctx context.Context, locator, destPath string) error {
	src, err := f.open(ctx, locator)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", destPath, err)
	}

	n, err := io.Copy(dst, src)
	if err != nil {
		dst.Close()
		return fmt.Errorf("failed to copy image data: %w", err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", destPath, err)
	}

	slog.Debug("Copied image", "locator", locator, "path", destPath, "bytes", n)
	return nil
}

// Read returns the bytes behind locator.
func (f *Fetcher) Read(ctx context.Context, locator string) ([]byte, error) {
	src, err := f.open(ctx, locator)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	return data, nil
}

func (f *Fetcher) open(ctx context.Context, locator string) (io.ReadCloser, error) {
	if locator == "" {
		return nil, fmt.Errorf("empty image locator")
	}
	if !IsRemote(locator) {
		file, err := os.Open(locator)
		if err != nil {
			return nil, fmt.Errorf("failed to open image: %w", err)
		}
		return file, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("image URL returned status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// DetectMIME sniffs the content type of image data, defaulting to image/png.
func DetectMIME(data []byte) string {
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "image/png"
	}
	return mime
}

// ExtensionFromMIME returns a file extension for common image MIME types.
func ExtensionFromMIME(mime string) string {
	switch mime {
	case "image/jpeg":
		return "jpg"
	case "image/webp":
		return "webp"
	case "image/gif":
		return "gif"
	default:
		return "png"
	}
}
