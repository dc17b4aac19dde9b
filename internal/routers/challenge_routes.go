package routers

import (
	"tcgladder/internal/handlers"
	"tcgladder/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func ChallengeRoutes(r *chi.Mux, challengeHandler *handlers.ChallengeHandler, jwtSecret string) {
	r.Route("/api/v1/challenges", func(r chi.Router) {
		r.Use(middleware.Authenticate(jwtSecret))

		r.Post("/", challengeHandler.CreateHandler)                // Issue a challenge
		r.Get("/", challengeHandler.ListHandler)                   // Challenges involving the caller
		r.Patch("/{id}/accept", challengeHandler.AcceptHandler)    // Accept, converting to a match
		r.Patch("/{id}/decline", challengeHandler.DeclineHandler)  // Decline a pending challenge
	})
}
