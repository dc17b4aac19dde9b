package routers

import (
	"net/http"
	"testing"

	"tcgladder/internal/handlers"

	"github.com/go-chi/chi/v5"
)

func assertRoutes(t *testing.T, r *chi.Mux, expected map[string]struct{}) {
	t.Helper()
	if err := chi.Walk(r, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		key := method + " " + route
		delete(expected, key)
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}
	if len(expected) != 0 {
		t.Fatalf("missing routes: %v", expected)
	}
}

func TestAuthRoutesRegistered(t *testing.T) {
	r := chi.NewRouter()
	AuthRoutes(r, &handlers.AuthHandler{}, "secret")

	assertRoutes(t, r, map[string]struct{}{
		"POST /api/v1/auth/register": {},
		"POST /api/v1/auth/login":    {},
		"POST /api/v1/auth/logout":   {},
		"GET /api/v1/auth/me":        {},
	})
}

func TestChallengeRoutesRegistered(t *testing.T) {
	r := chi.NewRouter()
	ChallengeRoutes(r, &handlers.ChallengeHandler{}, "secret")

	assertRoutes(t, r, map[string]struct{}{
		"POST /api/v1/challenges":                {},
		"GET /api/v1/challenges":                 {},
		"PATCH /api/v1/challenges/{id}/accept":   {},
		"PATCH /api/v1/challenges/{id}/decline":  {},
	})
}

func TestMatchRoutesRegistered(t *testing.T) {
	r := chi.NewRouter()
	MatchRoutes(r, &handlers.MatchHandler{}, "secret")

	assertRoutes(t, r, map[string]struct{}{
		"GET /api/v1/matches":               {},
		"GET /api/v1/matches/{id}":          {},
		"POST /api/v1/matches":              {},
		"POST /api/v1/matches/{id}/report":  {},
		"POST /api/v1/matches/{id}/resolve": {},
	})
}

func TestSeasonRoutesRegistered(t *testing.T) {
	r := chi.NewRouter()
	SeasonRoutes(r, &handlers.SeasonHandler{}, "secret")

	assertRoutes(t, r, map[string]struct{}{
		"GET /api/v1/seasons":           {},
		"GET /api/v1/seasons/active":    {},
		"POST /api/v1/seasons/rollover": {},
	})
}

func TestProfileAndLeaderboardRoutesRegistered(t *testing.T) {
	r := chi.NewRouter()
	ProfileRoutes(r, &handlers.ProfileHandler{})
	LeaderboardRoutes(r, &handlers.LeaderboardHandler{})

	assertRoutes(t, r, map[string]struct{}{
		"GET /api/v1/profiles/{username}":         {},
		"GET /api/v1/profiles/{username}/history": {},
		"GET /api/v1/leaderboard":                 {},
	})
}
