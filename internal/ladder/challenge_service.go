package ladder

import (
	"fmt"

	"tcgladder/internal/models"
	"tcgladder/internal/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ChallengeService manages the proposal side of the ladder: creating
// challenges, declining them, and converting an accepted challenge into a
// Match.
type ChallengeService struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

func NewChallengeService(db *gorm.DB, logger *zap.Logger) *ChallengeService {
	return &ChallengeService{DB: db, Logger: logger}
}

// Create opens a new challenge from challenger to challenged. At most one
// Pending challenge may exist between the same unordered pair.
func (s *ChallengeService) Create(challengerID, challengedID uint, proposedFormat, challengerDeck string) (*models.Challenge, error) {
	if !models.IsValidChallengeFormat(proposedFormat) {
		return nil, ErrInvalidFormat
	}
	if challengerDeck == "" {
		return nil, ErrDeckRequired
	}
	if challengerID == challengedID {
		return nil, ErrSelfChallenge
	}

	users := &repositories.UserRepository{DB: s.DB}
	if _, err := users.GetUserByID(challengedID); err != nil {
		return nil, err
	}

	challenges := &repositories.ChallengeRepository{DB: s.DB}
	if _, err := challenges.PendingBetween(challengerID, challengedID); err == nil {
		return nil, ErrAlreadyPending
	} else if err != repositories.ErrChallengeNotFound {
		return nil, err
	}

	challenge := &models.Challenge{
		ChallengerID:   challengerID,
		ChallengedID:   challengedID,
		ProposedFormat: proposedFormat,
		ChallengerDeck: challengerDeck,
		Status:         models.ChallengePending,
	}
	if err := challenges.Create(challenge); err != nil {
		return nil, err
	}
	return challenge, nil
}

// ListForUser returns the user's challenges, newest first.
func (s *ChallengeService) ListForUser(userID uint) ([]models.Challenge, error) {
	challenges := &repositories.ChallengeRepository{DB: s.DB}
	return challenges.ListForUser(userID)
}

// Decline rejects a Pending challenge. Only the challenged player may
// decline, and only while the challenge is Pending.
func (s *ChallengeService) Decline(challengeID, actorID uint) (*models.Challenge, error) {
	challenges := &repositories.ChallengeRepository{DB: s.DB}
	challenge, err := challenges.GetByID(challengeID)
	if err != nil {
		return nil, err
	}
	if challenge.ChallengedID != actorID {
		return nil, ErrNotAuthorized
	}
	if challenge.Status != models.ChallengePending {
		return nil, ErrChallengeNotPending
	}

	ok, err := challenges.UpdateStatus(challengeID, models.ChallengePending, models.ChallengeDeclined)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrChallengeNotPending
	}
	challenge.Status = models.ChallengeDeclined
	return challenge, nil
}

// Accept locks a Pending challenge and converts it into a Match. The match
// gets canonical player ordering (the smaller user ID is player1), the decks
// mapped to that ordering, the match-format vocabulary, and a snapshot of
// both players' current ratings. The challenge record is deleted; the match
// is the durable artifact from here on.
func (s *ChallengeService) Accept(challengeID, actorID uint, challengedDeck string) (*models.Match, error) {
	challenges := &repositories.ChallengeRepository{DB: s.DB}
	challenge, err := challenges.GetByID(challengeID)
	if err != nil {
		return nil, err
	}
	if challenge.ChallengedID != actorID {
		return nil, ErrNotAuthorized
	}
	if challenge.Status != models.ChallengePending {
		return nil, ErrChallengeNotPending
	}
	if challengedDeck == "" {
		return nil, ErrDeckRequired
	}

	var match *models.Match
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		txChallenges := &repositories.ChallengeRepository{DB: tx}
		txUsers := &repositories.UserRepository{DB: tx}
		txMatches := &repositories.MatchRepository{DB: tx}

		// Locking the challenge first means only one of two racing accepts
		// ever reaches the conversion below.
		ok, err := txChallenges.UpdateStatus(challengeID, models.ChallengePending, models.ChallengeLocked)
		if err != nil {
			return err
		}
		if !ok {
			return ErrChallengeNotPending
		}

		challenger, err := txUsers.GetUserByID(challenge.ChallengerID)
		if err != nil {
			return fmt.Errorf("load challenger: %w", err)
		}
		challenged, err := txUsers.GetUserByID(challenge.ChallengedID)
		if err != nil {
			return fmt.Errorf("load challenged: %w", err)
		}

		match = buildMatch(challenger, challenged, challenge.ChallengerDeck, challengedDeck,
			models.MatchFormatFromChallenge(challenge.ProposedFormat))
		if err := txMatches.Create(match); err != nil {
			return err
		}

		return txChallenges.Delete(challengeID)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Info("challenge converted to match",
		zap.Uint("challengeId", challengeID),
		zap.Uint("matchId", match.ID),
		zap.String("format", match.Format))
	return match, nil
}

// buildMatch assembles a Pending match with canonical ordering and rating
// snapshots. Deck mapping follows whichever original role ended up as
// player1, not challenger/challenged order.
func buildMatch(challenger, challenged *models.User, challengerDeck, challengedDeck, format string) *models.Match {
	player1, player2 := challenger, challenged
	deck1, deck2 := challengerDeck, challengedDeck
	if challenged.ID < challenger.ID {
		player1, player2 = challenged, challenger
		deck1, deck2 = challengedDeck, challengerDeck
	}

	return &models.Match{
		Player1ID:          player1.ID,
		Player2ID:          player2.ID,
		Deck1:              deck1,
		Deck2:              deck2,
		Format:             format,
		Status:             models.MatchPending,
		EloLifetimeStartP1: player1.EloLifetime,
		EloLifetimeStartP2: player2.EloLifetime,
		EloSeasonalStartP1: player1.EloSeasonal,
		EloSeasonalStartP2: player2.EloSeasonal,
	}
}
