package ladder

import (
	"math"

	"tcgladder/internal/elo"
	"tcgladder/internal/models"
	"tcgladder/internal/repositories"

	"gorm.io/gorm"
)

const historyDateLayout = "2006-01-02"

// HistoryService reconstructs a user's rating trajectory from their
// completed matches. Ratings are never stored per point in time: each
// match's frozen snapshots let us recompute the exact delta it paid out,
// so replaying completed matches in order reproduces the committed values.
type HistoryService struct {
	DB *gorm.DB
}

func NewHistoryService(db *gorm.DB) *HistoryService {
	return &HistoryService{DB: db}
}

// RatingHistory returns the user's rating after each completed match on the
// given track, in chronological order, with a leading baseline point at
// account creation. The final point always equals the user's current stored
// rating on that track.
func (s *HistoryService) RatingHistory(username, track string) ([]models.HistoryPoint, error) {
	if track != models.TrackLifetime && track != models.TrackSeasonal {
		return nil, ErrInvalidTrack
	}

	users := &repositories.UserRepository{DB: s.DB}
	user, err := users.GetUserByUsername(username)
	if err != nil {
		return nil, err
	}

	matches := &repositories.MatchRepository{DB: s.DB}
	completed, err := matches.ListCompletedForUser(user.ID)
	if err != nil {
		return nil, err
	}

	baseline := models.BaselineEloLifetime
	if track == models.TrackSeasonal {
		baseline = models.BaselineEloSeasonal
	}

	points := []models.HistoryPoint{{
		Date: user.CreatedAt.Format(historyDateLayout),
		Elo:  int(math.Round(baseline)),
	}}

	rating := baseline
	for _, m := range completed {
		if m.ResolvedP1GamesWon == nil {
			continue
		}
		rating += s.deltaFor(&m, user.ID, track)
		points = append(points, models.HistoryPoint{
			Date: m.UpdatedAt.Format(historyDateLayout),
			Elo:  int(math.Round(rating)),
		})
	}
	return points, nil
}

// deltaFor recomputes the delta a completed match paid this user on the
// given track, from the snapshots frozen at match creation.
func (s *HistoryService) deltaFor(m *models.Match, userID uint, track string) float64 {
	startP1, startP2 := m.EloLifetimeStartP1, m.EloLifetimeStartP2
	if track == models.TrackSeasonal {
		startP1, startP2 = m.EloSeasonalStartP1, m.EloSeasonalStartP2
	}

	deltas := elo.MatchDelta(startP1, startP2, *m.ResolvedP1GamesWon, elo.TotalGames(m.Format))
	if userID == m.Player2ID {
		return deltas.Player2Change
	}
	return deltas.Player1Change
}
