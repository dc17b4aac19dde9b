package routers

import (
	"tcgladder/internal/handlers"
	"tcgladder/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func SeasonRoutes(r *chi.Mux, seasonHandler *handlers.SeasonHandler, jwtSecret string) {
	r.Route("/api/v1/seasons", func(r chi.Router) {
		r.Get("/", seasonHandler.ListHandler)        // All seasons, newest first
		r.Get("/active", seasonHandler.ActiveHandler) // Currently active season

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Use(middleware.RequireAdmin)
			r.Post("/rollover", seasonHandler.RolloverHandler) // Close season, reset seasonal ratings
		})
	})
}
