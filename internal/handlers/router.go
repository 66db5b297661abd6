package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Router mounts the API and the static page.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)

	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Error("Unable to write healthcheck", "err", err)
		}
	})

	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", h.HandleCreateSession)
		r.Get("/", h.HandleListSessions)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.HandleSessionDetail)
			r.Post("/draw", h.HandleDraw)
			r.Put("/selection", h.HandleSelect)
			r.Delete("/selection", h.HandleClearSelection)
			r.Post("/save", h.HandleSave)
			r.Get("/images/{index}", h.HandleImage)
			r.Get("/history", h.HandleHistory)
		})
	})

	r.Handle("/*", h.HandleStatic())
	return r
}
