package handlers

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"tcgladder/internal/ladder"
	"tcgladder/internal/models"
	"tcgladder/internal/repositories"
	"tcgladder/internal/services"
	"tcgladder/internal/utils"

	"go.uber.org/zap"
)

const defaultLeaderboardSize = 50

// LeaderboardHandler serves ranked listings for both rating tracks. Reads
// go through the Redis sorted-set cache when it is warm; otherwise the
// database is authoritative.
type LeaderboardHandler struct {
	Users  *repositories.UserRepository
	Cache  *services.LeaderboardCache
	Logger *zap.Logger
}

func NewLeaderboardHandler(users *repositories.UserRepository, cache *services.LeaderboardCache, logger *zap.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{Users: users, Cache: cache, Logger: logger}
}

func (h *LeaderboardHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	track := r.URL.Query().Get("track")
	if track == "" {
		track = models.TrackLifetime
	}
	if track != models.TrackLifetime && track != models.TrackSeasonal {
		writeServiceError(w, ladder.ErrInvalidTrack)
		return
	}

	limit := defaultLeaderboardSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	if entries, ok := h.fromCache(r, track, limit); ok {
		utils.JSON(w, http.StatusOK, entries)
		return
	}

	entries, err := h.fromDatabase(track, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, entries)
}

// fromCache reads rankings out of the Redis sorted set and hydrates stats
// from the database with one bulk lookup. Any cache failure falls back to
// the database path.
func (h *LeaderboardHandler) fromCache(r *http.Request, track string, limit int) ([]models.LeaderboardEntry, bool) {
	if h.Cache == nil {
		return nil, false
	}

	zs, err := h.Cache.TopN(r.Context(), track, int64(limit))
	if err != nil || len(zs) == 0 {
		if err != nil {
			h.Logger.Warn("leaderboard cache read failed", zap.Error(err))
		}
		return nil, false
	}

	ids := make([]uint, 0, len(zs))
	for _, z := range zs {
		member, _ := z.Member.(string)
		idStr, _, found := strings.Cut(member, ":")
		if !found {
			return nil, false
		}
		id, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil {
			return nil, false
		}
		ids = append(ids, uint(id))
	}

	users, err := h.Users.GetUsersByIDs(ids)
	if err != nil {
		h.Logger.Warn("leaderboard stat hydration failed", zap.Error(err))
		return nil, false
	}
	byID := make(map[uint]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	entries := make([]models.LeaderboardEntry, 0, len(zs))
	for i := range zs {
		user, ok := byID[ids[i]]
		if !ok {
			continue
		}
		entries = append(entries, entryFor(user, track, len(entries)+1))
	}
	return entries, true
}

func (h *LeaderboardHandler) fromDatabase(track string, limit int) ([]models.LeaderboardEntry, error) {
	column := "elo_lifetime"
	if track == models.TrackSeasonal {
		column = "elo_seasonal"
	}

	users, err := h.Users.ListByElo(column, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]models.LeaderboardEntry, 0, len(users))
	for i, user := range users {
		entries = append(entries, entryFor(user, track, i+1))
	}
	return entries, nil
}

func entryFor(user models.User, track string, rank int) models.LeaderboardEntry {
	elo := user.EloLifetime
	if track == models.TrackSeasonal {
		elo = user.EloSeasonal
	}

	winRate := 0.0
	if user.MatchesPlayed > 0 {
		winRate = float64(user.Wins) / float64(user.MatchesPlayed)
	}

	return models.LeaderboardEntry{
		Rank:          rank,
		UserID:        user.ID,
		Username:      user.Username,
		Elo:           int(math.Round(elo)),
		MatchesPlayed: user.MatchesPlayed,
		Wins:          user.Wins,
		WinRate:       winRate,
		Role:          user.Role,
	}
}
