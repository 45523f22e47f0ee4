package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates a new router with all routes configured
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (all routes)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware)
	r.Use(RecoveryMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Get("/categories", h.Categories)
		r.Get("/modules", h.Modules)

		r.Route("/goals", func(r chi.Router) {
			r.Post("/", h.CreateGoal)
			r.Get("/", h.ListGoals)

			r.Route("/{id}", func(r chi.Router) {
				r.Use(GoalIDMiddleware)
				r.Get("/", h.GetGoal)
				r.Post("/progress", h.UpdateProgress)
				r.Post("/regenerate", h.RegenerateGoal)
				r.Post("/export", h.ExportGoal)
			})
		})
	})

	return r
}
