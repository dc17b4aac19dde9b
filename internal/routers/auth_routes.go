package routers

import (
	"tcgladder/internal/handlers"
	"tcgladder/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func AuthRoutes(r *chi.Mux, authHandler *handlers.AuthHandler, jwtSecret string) {
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", authHandler.RegisterHandler) // User registration
		r.Post("/login", authHandler.LoginHandler)       // User login
		r.Post("/logout", authHandler.LogoutHandler)     // Stateless logout

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Get("/me", authHandler.MeHandler) // Current user
		})
	})
}
