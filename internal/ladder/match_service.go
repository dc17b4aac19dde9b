package ladder

import (
	"time"

	"tcgladder/internal/elo"
	"tcgladder/internal/metrics"
	"tcgladder/internal/models"
	"tcgladder/internal/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RatingEvents receives post-commit notifications about rating changes.
// Implementations must be safe for concurrent use; failures are the
// implementation's problem to log, never the resolution's.
type RatingEvents interface {
	PublishEloUpdate(update models.EloUpdate)
	SetUserScores(userID uint, username string, lifetime, seasonal float64)
	ClearTrack(track string)
}

// MatchService drives the Pending -> (Disputed | Completed) state machine.
// Rating deltas are applied exactly once per match: the transition to
// Completed is a conditional update inside the same transaction as the two
// user updates, so a second racing resolver observes the match already
// Completed and does not re-apply.
type MatchService struct {
	DB     *gorm.DB
	Logger *zap.Logger
	Events RatingEvents
}

func NewMatchService(db *gorm.DB, logger *zap.Logger, events RatingEvents) *MatchService {
	return &MatchService{DB: db, Logger: logger, Events: events}
}

// ListRecent returns the newest matches.
func (s *MatchService) ListRecent(limit int) ([]models.Match, error) {
	matches := &repositories.MatchRepository{DB: s.DB}
	return matches.ListRecent(limit)
}

// Get returns a match with its reports.
func (s *MatchService) Get(matchID uint) (*models.Match, error) {
	matches := &repositories.MatchRepository{DB: s.DB}
	return matches.GetByID(matchID)
}

// AdminCreate creates a match directly, bypassing the challenge flow.
// Players are canonically ordered and ratings snapshotted the same way a
// conversion would.
func (s *MatchService) AdminCreate(player1ID, player2ID uint, deck1, deck2, format string) (*models.Match, error) {
	if !models.IsValidMatchFormat(format) {
		return nil, ErrInvalidFormat
	}
	if player1ID == player2ID {
		return nil, ErrSamePlayers
	}

	users := &repositories.UserRepository{DB: s.DB}
	first, err := users.GetUserByID(player1ID)
	if err != nil {
		return nil, err
	}
	second, err := users.GetUserByID(player2ID)
	if err != nil {
		return nil, err
	}

	match := buildMatch(first, second, deck1, deck2, format)
	matches := &repositories.MatchRepository{DB: s.DB}
	if err := matches.Create(match); err != nil {
		return nil, err
	}
	return match, nil
}

// SubmitReport stores a participant's result claim and reconciles once both
// participants have reported. The same reporter may overwrite their own
// report any number of times while the match is non-terminal; submitting
// identical content twice leaves exactly one stored report.
//
// Returns the match status after the submission took effect.
func (s *MatchService) SubmitReport(matchID, reporterID, reportedWinnerID uint, reportedP1GamesWon int) (string, error) {
	matches := &repositories.MatchRepository{DB: s.DB}
	match, err := matches.GetByID(matchID)
	if err != nil {
		return "", err
	}

	if match.Terminal() {
		return "", ErrAlreadyResolved
	}
	if !match.HasPlayer(reporterID) {
		return "", ErrNotParticipant
	}
	if !match.HasPlayer(reportedWinnerID) {
		return "", ErrInvalidWinner
	}
	if !elo.IsValidGamesWon(reportedP1GamesWon, match.Format) {
		return "", ErrInvalidGamesWon
	}
	// An under-determined split (1-1 in a best-of-3, or a split naming the
	// loser as winner) can never resolve; reject it at the door instead of
	// letting two agreeing-but-impossible reports through.
	if claimedWinnerID(match, reportedP1GamesWon) != reportedWinnerID {
		return "", ErrInconsistentReport
	}

	status := match.Status
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		txMatches := &repositories.MatchRepository{DB: tx}

		report := &models.MatchReport{
			MatchID:            matchID,
			ReporterID:         reporterID,
			ReportedWinnerID:   reportedWinnerID,
			ReportedP1GamesWon: reportedP1GamesWon,
			ReportedAt:         time.Now(),
		}
		if err := txMatches.UpsertReport(report); err != nil {
			return err
		}

		// Reports drive transitions only out of Pending. A Disputed match
		// still accepts overwrites for the audit trail, but only an admin
		// can move it forward.
		if match.Status != models.MatchPending {
			return nil
		}

		reports, err := txMatches.GetReports(matchID)
		if err != nil {
			return err
		}
		if len(reports) < 2 {
			return nil
		}

		if reports[0].Agrees(reports[1]) {
			if err := s.resolve(tx, match, reports[0].ReportedP1GamesWon, []string{models.MatchPending}); err != nil {
				return err
			}
			status = models.MatchCompleted
			return nil
		}

		ok, err := txMatches.TransitionStatus(matchID, []string{models.MatchPending}, map[string]interface{}{
			"status": models.MatchDisputed,
		})
		if err != nil {
			return err
		}
		if ok {
			status = models.MatchDisputed
			metrics.MatchesDisputed.Inc()
			s.Logger.Warn("match reports disagree, marking disputed",
				zap.Uint("matchId", matchID))
		}
		return nil
	})
	if err == ErrAlreadyResolved {
		// A concurrent submitter resolved first; the outcome is the same.
		return models.MatchCompleted, nil
	}
	if err != nil {
		return "", err
	}

	if status == models.MatchCompleted {
		metrics.MatchesResolved.WithLabelValues("report").Inc()
		s.notifyResolved(match)
	}
	return status, nil
}

// AdminResolve sets the authoritative result, from Pending or Disputed.
// Role enforcement happens at the boundary; this applies the same
// exactly-once resolution path reports use.
func (s *MatchService) AdminResolve(matchID uint, p1GamesWon int) (*models.Match, error) {
	matches := &repositories.MatchRepository{DB: s.DB}
	match, err := matches.GetByID(matchID)
	if err != nil {
		return nil, err
	}
	if match.Terminal() {
		return nil, ErrAlreadyResolved
	}
	if !elo.IsValidGamesWon(p1GamesWon, match.Format) {
		return nil, ErrInvalidGamesWon
	}
	if elo.DetermineWinner(p1GamesWon, match.Format) == elo.WinnerNone {
		return nil, ErrInvalidResult
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		return s.resolve(tx, match, p1GamesWon, []string{models.MatchPending, models.MatchDisputed})
	})
	if err != nil {
		return nil, err
	}

	metrics.MatchesResolved.WithLabelValues("admin").Inc()
	s.notifyResolved(match)
	return matches.GetByID(matchID)
}

// resolve performs the single resolve-and-commit unit: flip the match to
// Completed via a conditional update, then apply both players' rating and
// stat deltas, all inside the caller's transaction. Deltas are computed
// from the snapshots frozen at match creation.
func (s *MatchService) resolve(tx *gorm.DB, match *models.Match, p1GamesWon int, from []string) error {
	winner := elo.DetermineWinner(p1GamesWon, match.Format)
	if winner == elo.WinnerNone {
		return ErrInvalidResult
	}
	winnerID := match.Player1ID
	if winner == elo.WinnerPlayer2 {
		winnerID = match.Player2ID
	}

	txMatches := &repositories.MatchRepository{DB: tx}
	ok, err := txMatches.TransitionStatus(match.ID, from, map[string]interface{}{
		"status":                models.MatchCompleted,
		"winner_id":             winnerID,
		"resolved_p1_games_won": p1GamesWon,
	})
	if err != nil {
		return err
	}
	if !ok {
		return ErrAlreadyResolved
	}

	total := elo.TotalGames(match.Format)
	lifetime := elo.MatchDelta(match.EloLifetimeStartP1, match.EloLifetimeStartP2, p1GamesWon, total)
	seasonal := elo.MatchDelta(match.EloSeasonalStartP1, match.EloSeasonalStartP2, p1GamesWon, total)

	txUsers := &repositories.UserRepository{DB: tx}
	if err := txUsers.ApplyRatingDeltas(match.Player1ID, lifetime.Player1Change, seasonal.Player1Change, winner == elo.WinnerPlayer1); err != nil {
		return err
	}
	if err := txUsers.ApplyRatingDeltas(match.Player2ID, lifetime.Player2Change, seasonal.Player2Change, winner == elo.WinnerPlayer2); err != nil {
		return err
	}

	s.Logger.Info("match resolved",
		zap.Uint("matchId", match.ID),
		zap.Uint("winnerId", winnerID),
		zap.Int("p1GamesWon", p1GamesWon),
		zap.Float64("p1LifetimeChange", lifetime.Player1Change),
		zap.Float64("p1SeasonalChange", seasonal.Player1Change))
	return nil
}

// notifyResolved pushes post-commit rating state to the events sink. Best
// effort: the resolution already committed.
func (s *MatchService) notifyResolved(match *models.Match) {
	if s.Events == nil {
		return
	}

	users := &repositories.UserRepository{DB: s.DB}
	resolved, err := (&repositories.MatchRepository{DB: s.DB}).GetByID(match.ID)
	if err != nil {
		s.Logger.Error("failed to reload resolved match for events", zap.Error(err))
		return
	}

	for _, playerID := range []uint{resolved.Player1ID, resolved.Player2ID} {
		user, err := users.GetUserByID(playerID)
		if err != nil {
			s.Logger.Error("failed to load user for rating events",
				zap.Uint("userId", playerID), zap.Error(err))
			continue
		}
		s.Events.SetUserScores(user.ID, user.Username, user.EloLifetime, user.EloSeasonal)

		total := elo.TotalGames(resolved.Format)
		p1Games := 0
		if resolved.ResolvedP1GamesWon != nil {
			p1Games = *resolved.ResolvedP1GamesWon
		}
		lifetime := elo.MatchDelta(resolved.EloLifetimeStartP1, resolved.EloLifetimeStartP2, p1Games, total)
		seasonal := elo.MatchDelta(resolved.EloSeasonalStartP1, resolved.EloSeasonalStartP2, p1Games, total)
		lifetimeChange, seasonalChange := lifetime.Player1Change, seasonal.Player1Change
		if user.ID == resolved.Player2ID {
			lifetimeChange, seasonalChange = lifetime.Player2Change, seasonal.Player2Change
		}

		now := time.Now()
		s.Events.PublishEloUpdate(models.EloUpdate{
			UserID:    user.ID,
			Username:  user.Username,
			Track:     models.TrackLifetime,
			OldRating: user.EloLifetime - lifetimeChange,
			NewRating: user.EloLifetime,
			Change:    lifetimeChange,
			MatchID:   resolved.ID,
			Timestamp: now,
		})
		s.Events.PublishEloUpdate(models.EloUpdate{
			UserID:    user.ID,
			Username:  user.Username,
			Track:     models.TrackSeasonal,
			OldRating: user.EloSeasonal - seasonalChange,
			NewRating: user.EloSeasonal,
			Change:    seasonalChange,
			MatchID:   resolved.ID,
			Timestamp: now,
		})
	}
}

// claimedWinnerID maps a games-won split to the player ID it crowns, or 0
// when the split determines no winner.
func claimedWinnerID(match *models.Match, p1GamesWon int) uint {
	switch elo.DetermineWinner(p1GamesWon, match.Format) {
	case elo.WinnerPlayer1:
		return match.Player1ID
	case elo.WinnerPlayer2:
		return match.Player2ID
	default:
		return 0
	}
}
