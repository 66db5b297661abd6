package handlers

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/lehigh-university-libraries/sketchbook/internal/history"
	"github.com/lehigh-university-libraries/sketchbook/internal/images"
)

func (h *Handler) HandleImage(w http.ResponseWriter, r *http.Request) {
	session, ok := h.getSessionOrError(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		h.writeWarning(w, "Invalid image index", http.StatusBadRequest)
		return
	}
	ref, err := session.Gallery.Image(index)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if images.IsRemote(ref.Locator) {
		http.Redirect(w, r, ref.Locator, http.StatusFound)
		return
	}

	data, err := h.fetcher.Read(r.Context(), ref.Locator)
	if err != nil {
		slog.Error("Unable to read image", "locator", ref.Locator, "err", err)
		h.writeWarning(w, "Image not available", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", images.DetectMIME(data))
	if _, err := w.Write(data); err != nil {
		slog.Error("Unable to write image", "err", err)
	}
}

func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	session, ok := h.getSessionOrError(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := history.WriteParquet(&buf, h.history.Records(session.ID)); err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.apache.parquet")
	w.Header().Set("Content-Disposition", `attachment; filename="history-`+session.ID+`.parquet"`)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("Unable to write history", "err", err)
	}
}
