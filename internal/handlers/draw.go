package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/lehigh-university-libraries/sketchbook/internal/composer"
	"github.com/lehigh-university-libraries/sketchbook/internal/drawing"
	"github.com/lehigh-university-libraries/sketchbook/internal/images"
)

const maxUploadSize = 10 * 1024 * 1024

func (h *Handler) HandleDraw(w http.ResponseWriter, r *http.Request) {
	session, ok := h.getSessionOrError(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		h.writeWarning(w, "Failed to read form: "+err.Error(), http.StatusBadRequest)
		return
	}

	ref, err := readReferenceImage(r)
	if err != nil {
		h.writeWarning(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.drawer.Draw(r.Context(), session.ID, session.Gallery, drawing.Request{
		ClassID:   r.FormValue("class_id"),
		Name:      r.FormValue("name"),
		Text:      r.FormValue("text"),
		Reference: ref,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"index":   result.Index,
		"prompt":  result.Prompt,
		"image":   session.View().Images[result.Index],
		"session": session.View(),
	})
}

// readReferenceImage returns nil when no image was uploaded.
func readReferenceImage(r *http.Request) (*composer.Image, error) {
	file, _, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.New("failed to read image: " + err.Error())
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		return nil, errors.New("failed to read image contents: " + err.Error())
	}
	if len(data) >= maxUploadSize {
		return nil, errors.New("file too large (max 10MB)")
	}
	if len(data) == 0 {
		return nil, nil
	}

	return &composer.Image{Data: data, MIMEType: images.DetectMIME(data)}, nil
}
