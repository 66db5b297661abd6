package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lehigh-university-libraries/sketchbook/internal/drawing"
	"github.com/lehigh-university-libraries/sketchbook/internal/gallery"
)

func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	session, ok := h.getSessionOrError(w, r)
	if !ok {
		return
	}

	var request gallery.SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeWarning(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	request.DestinationDir = h.saveDir

	result, err := drawing.Save(r.Context(), session.Gallery, request)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}
