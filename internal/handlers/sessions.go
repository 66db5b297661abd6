package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lehigh-university-libraries/sketchbook/internal/models"
)

func (h *Handler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	session := h.sessionStore.Create()
	h.writeJSON(w, http.StatusCreated, session.View())
}

func (h *Handler) HandleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions := h.sessionStore.GetAll()
	sessionList := make([]models.SessionView, 0, len(sessions))
	for _, session := range sessions {
		sessionList = append(sessionList, session.View())
	}
	h.writeJSON(w, http.StatusOK, sessionList)
}

func (h *Handler) HandleSessionDetail(w http.ResponseWriter, r *http.Request) {
	session, ok := h.getSessionOrError(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, session.View())
}

func (h *Handler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	session, ok := h.getSessionOrError(w, r)
	if !ok {
		return
	}

	var request struct {
		Index *int `json:"index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeWarning(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if request.Index == nil {
		h.writeWarning(w, "index is required", http.StatusBadRequest)
		return
	}

	if err := session.Gallery.Select(*request.Index); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, session.View())
}

func (h *Handler) HandleClearSelection(w http.ResponseWriter, r *http.Request) {
	session, ok := h.getSessionOrError(w, r)
	if !ok {
		return
	}
	session.Gallery.ClearSelection()
	h.writeJSON(w, http.StatusOK, session.View())
}
