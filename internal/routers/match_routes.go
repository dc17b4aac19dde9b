package routers

import (
	"tcgladder/internal/handlers"
	"tcgladder/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func MatchRoutes(r *chi.Mux, matchHandler *handlers.MatchHandler, jwtSecret string) {
	r.Route("/api/v1/matches", func(r chi.Router) {
		r.Use(middleware.Authenticate(jwtSecret))

		r.Get("/", matchHandler.ListHandler)              // Recent matches
		r.Get("/{id}", matchHandler.GetHandler)           // Match with reports
		r.Post("/{id}/report", matchHandler.ReportHandler) // Submit a result report

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Post("/", matchHandler.AdminCreateHandler)            // Direct match creation
			r.Post("/{id}/resolve", matchHandler.AdminResolveHandler) // Authoritative resolution
		})
	})
}
