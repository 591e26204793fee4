package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bharatai/studio/internal/metrics"
)

// NewRouter assembles the studio API router. assetsDir, when non-empty, is
// served read-only under /assets/. Metrics may be nil.
func NewRouter(h *Handler, m *metrics.Metrics, assetsDir string) chi.Router {
	r := chi.NewRouter()
	r.Use(RequestLogger)
	if m != nil {
		r.Use(RequestMetrics(m))
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/blueprint", func(r chi.Router) {
		r.Post("/", h.DraftBlueprint)
		r.Get("/", h.GetBlueprint)
		r.Put("/narration", h.SetNarration)
		r.Route("/scenes", func(r chi.Router) {
			r.Post("/", h.AddScene)
			r.Put("/{index}", h.UpdateScene)
			r.Delete("/{index}", h.RemoveScene)
		})
	})

	r.Route("/productions", func(r chi.Router) {
		r.Post("/", h.LaunchProduction)
		r.Get("/status", h.ProductionStatus)
	})

	r.Route("/history", func(r chi.Router) {
		r.Get("/", h.ListHistory)
		r.Delete("/", h.ClearHistory)
		r.Post("/{id}/favorite", h.ToggleFavorite)
		r.Delete("/{id}", h.DeleteResult)
	})

	r.Route("/templates", func(r chi.Router) {
		r.Get("/", h.ListTemplates)
		r.Get("/{id}", h.GetTemplate)
	})

	r.Get("/credits", h.GetCredits)
	r.Get("/suggestions", h.Suggestions)

	r.Route("/notifications", func(r chi.Router) {
		r.Get("/", h.ListNotifications)
		r.Post("/read", h.MarkNotificationsRead)
	})

	if assetsDir != "" {
		fs := http.StripPrefix("/assets/", http.FileServer(http.Dir(assetsDir)))
		r.Get("/assets/*", fs.ServeHTTP)
	}

	return r
}
