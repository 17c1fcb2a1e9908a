// Package api exposes the job board over HTTP.
package api

import (
	"net/http"

	"github.com/dmitrijs2005/jobboard/internal/logging"
	"github.com/dmitrijs2005/jobboard/internal/server/auth"
	"github.com/go-chi/chi/v5"
)

// NewRouter mounts every route. Job reads and the log intake are public;
// job writes and the /me routes go through gate.
func NewRouter(h *Handler, gate *auth.Gate, logger logging.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))
	r.Use(cors)

	r.NotFound(unknownEndpoint(logger))
	r.MethodNotAllowed(unknownEndpoint(logger))

	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/signup", h.Signup)
			r.Post("/login", h.Login)

			r.Group(func(r chi.Router) {
				r.Use(gate.RequireAuth)
				r.Get("/me", h.Me)
				r.Post("/me/avatar", h.CreateAvatarUpload)
			})
		})

		r.Route("/jobs", func(r chi.Router) {
			r.Get("/", h.ListJobs)
			r.Get("/{id}", h.GetJob)

			r.Group(func(r chi.Router) {
				r.Use(gate.RequireAuth)
				r.Post("/", h.CreateJob)
				r.Put("/{id}", h.UpdateJob)
				r.Delete("/{id}", h.DeleteJob)
			})
		})

		r.Post("/logs", h.IngestLog)
	})

	return r
}
