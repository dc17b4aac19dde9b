package routers

import (
	"tcgladder/internal/handlers"

	"github.com/go-chi/chi/v5"
)

func ProfileRoutes(r *chi.Mux, profileHandler *handlers.ProfileHandler) {
	r.Route("/api/v1/profiles", func(r chi.Router) {
		r.Get("/{username}", profileHandler.GetHandler)             // Public profile with recent matches
		r.Get("/{username}/history", profileHandler.HistoryHandler) // Reconstructed rating history
	})
}

func LeaderboardRoutes(r *chi.Mux, leaderboardHandler *handlers.LeaderboardHandler) {
	r.Route("/api/v1/leaderboard", func(r chi.Router) {
		r.Get("/", leaderboardHandler.GetHandler) // Ranked listing per track
	})
}
