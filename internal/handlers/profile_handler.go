package handlers

import (
	"net/http"

	"tcgladder/internal/ladder"
	"tcgladder/internal/models"
	"tcgladder/internal/repositories"
	"tcgladder/internal/utils"

	"github.com/go-chi/chi/v5"
)

const profileMatchLimit = 20

// ProfileHandler serves public player profiles and rating history.
type ProfileHandler struct {
	Users   *repositories.UserRepository
	Matches *repositories.MatchRepository
	History *ladder.HistoryService
}

func NewProfileHandler(users *repositories.UserRepository, matches *repositories.MatchRepository, history *ladder.HistoryService) *ProfileHandler {
	return &ProfileHandler{Users: users, Matches: matches, History: history}
}

type profileResponse struct {
	ID            uint           `json:"id"`
	Username      string         `json:"username"`
	Role          string         `json:"role"`
	EloLifetime   float64        `json:"eloLifetime"`
	EloSeasonal   float64        `json:"eloSeasonal"`
	MatchesPlayed int            `json:"matchesPlayed"`
	Wins          int            `json:"wins"`
	RecentMatches []models.Match `json:"recentMatches"`
}

func (h *ProfileHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	user, err := h.Users.GetUserByUsername(username)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	matches, err := h.Matches.ListForUser(user.ID, profileMatchLimit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, profileResponse{
		ID:            user.ID,
		Username:      user.Username,
		Role:          user.Role,
		EloLifetime:   user.EloLifetime,
		EloSeasonal:   user.EloSeasonal,
		MatchesPlayed: user.MatchesPlayed,
		Wins:          user.Wins,
		RecentMatches: matches,
	})
}

// HistoryHandler returns the user's reconstructed rating trajectory.
// The track query parameter selects lifetime (default) or seasonal.
func (h *ProfileHandler) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	track := r.URL.Query().Get("track")
	if track == "" {
		track = models.TrackLifetime
	}

	points, err := h.History.RatingHistory(username, track)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, points)
}
