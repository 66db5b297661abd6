package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/lehigh-university-libraries/sketchbook/internal/composer"
	"github.com/lehigh-university-libraries/sketchbook/internal/drawing"
	"github.com/lehigh-university-libraries/sketchbook/internal/gallery"
	"github.com/lehigh-university-libraries/sketchbook/internal/history"
	"github.com/lehigh-university-libraries/sketchbook/internal/images"
	"github.com/lehigh-university-libraries/sketchbook/internal/models"
	"github.com/lehigh-university-libraries/sketchbook/internal/storage"
)

type Handler struct {
	sessionStore *storage.SessionStore
	drawer       *drawing.Service
	fetcher      *images.Fetcher
	history      *history.Log
	saveDir      string
}

// Options wires the handler's collaborators.
type Options struct {
	Drawer  *drawing.Service
	Fetcher *images.Fetcher
	History *history.Log
	SaveDir string
}

func New(opts Options) *Handler {
	if opts.Fetcher == nil {
		opts.Fetcher = images.NewFetcher()
	}
	if opts.History == nil {
		opts.History = history.NewLog()
	}
	return &Handler{
		sessionStore: storage.New(opts.Fetcher),
		drawer:       opts.Drawer,
		fetcher:      opts.Fetcher,
		history:      opts.History,
		saveDir:      opts.SaveDir,
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
	}
}

// writeWarning reports a user-facing problem. Nothing here is fatal to the session.
func (h *Handler) writeWarning(w http.ResponseWriter, message string, code int) {
	slog.Warn(message, "status", code)
	h.writeJSON(w, code, map[string]string{"warning": message})
}

// writeError maps domain errors onto a status and a message for the student.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, drawing.ErrMissingIdentity):
		h.writeWarning(w, "Enter your class number and name.", http.StatusBadRequest)
	case errors.Is(err, composer.ErrMissingText):
		h.writeWarning(w, "Describe what the AI should draw.", http.StatusBadRequest)
	case errors.Is(err, composer.ErrExternalFailure), errors.Is(err, drawing.ErrGeneration):
		slog.Error("Drawing failed", "err", err)
		h.writeWarning(w, "The AI could not draw this picture. Please try again.", http.StatusBadGateway)
	case errors.Is(err, gallery.ErrOutOfRange):
		h.writeWarning(w, "That picture is not in the gallery.", http.StatusBadRequest)
	case errors.Is(err, gallery.ErrNoSelection):
		h.writeWarning(w, "Select a picture first.", http.StatusConflict)
	case errors.Is(err, gallery.ErrInvalidRequest):
		h.writeWarning(w, "Draw a picture and enter your class number and name before saving.", http.StatusBadRequest)
	case errors.Is(err, gallery.ErrIO):
		slog.Error("Saving failed", "err", err)
		h.writeWarning(w, "Some pictures could not be saved.", http.StatusInternalServerError)
	default:
		slog.Error("Request failed", "err", err)
		h.writeWarning(w, "Internal server error", http.StatusInternalServerError)
	}
}

// Session helpers
func (h *Handler) getSessionOrError(w http.ResponseWriter, r *http.Request) (*models.DrawingSession, bool) {
	sessionID := chi.URLParam(r, "id")
	session, exists := h.sessionStore.Get(sessionID)
	if !exists {
		h.writeWarning(w, "Session not found", http.StatusNotFound)
		return nil, false
	}
	return session, true
}

// EnsureSaveDir creates the directory saved images are written to.
func (h *Handler) EnsureSaveDir() error {
	return os.MkdirAll(h.saveDir, 0755)
}

// History returns the drawing log shared by all sessions.
func (h *Handler) History() *history.Log {
	return h.history
}
