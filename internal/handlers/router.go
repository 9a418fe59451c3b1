package handlers

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/richardbizik/sendevents/internal/config"
)

// NewRouter mounts the function under /api/SendEvents and an unauthenticated
// liveness probe under /health.
func NewRouter(conf config.Config, connect ConnectFunc) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", Health)
	r.Route("/api", func(r chi.Router) {
		r.Use(FunctionKey(conf.HTTP.FunctionKey))
		sendEvents := SendEventsHandler(conf.EventHub, connect)
		r.Get("/SendEvents", sendEvents)
		r.Post("/SendEvents", sendEvents)
	})
	return r
}

func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
