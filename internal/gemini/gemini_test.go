package gemini

import (
	"context"
	"testing"

	"github.com/lehigh-university-libraries/sketchbook/internal/imagegen"
	genaisdk "google.golang.org/genai"
)

func TestImageFormat(t *testing.T) {
	tests := map[string]string{
		"image/png":  "png",
		"image/webp": "webp",
		"":           "jpeg",
		"png":        "jpeg",
	}
	for mime, want := range tests {
		if got := imageFormat(mime); got != want {
			t.Errorf("imageFormat(%q): expected %s, got %s", mime, want, got)
		}
	}
}

func TestAspectRatio(t *testing.T) {
	tests := map[string]string{
		"1024x1024": "1:1",
		"1792x1024": "16:9",
		"1024x1792": "9:16",
		"":          "1:1",
	}
	for size, want := range tests {
		if got := aspectRatio(size); got != want {
			t.Errorf("aspectRatio(%q): expected %s, got %s", size, want, got)
		}
	}
}

func TestFirstImage(t *testing.T) {
	result := &genaisdk.GenerateContentResponse{
		Candidates: []*genaisdk.Candidate{
			{Content: nil},
			{Content: &genaisdk.Content{Parts: []*genaisdk.Part{
				{Text: "here is your picture"},
				{InlineData: &genaisdk.Blob{MIMEType: "image/png", Data: []byte("png")}},
			}}},
		},
	}

	data, mime := firstImage(result)
	if string(data) != "png" || mime != "image/png" {
		t.Errorf("Expected the inline image, got %q %s", data, mime)
	}

	if data, _ := firstImage(nil); data != nil {
		t.Errorf("Expected nothing from a nil response")
	}
}

func TestConstructorsRequireKey(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Errorf("Expected an error without a key")
	}
	if _, err := NewImageGenerator(context.Background(), " ", imagegen.Options{}, t.TempDir()); err == nil {
		t.Errorf("Expected an error without a key")
	}
}
