package ladder

import (
	"time"

	"tcgladder/internal/models"
	"tcgladder/internal/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeasonService owns season rollover. A rollover closes the active season,
// opens the next one, and hard-resets every user's seasonal rating to the
// baseline in one transaction. Matches created before the rollover keep
// paying out against their frozen snapshots.
type SeasonService struct {
	DB     *gorm.DB
	Logger *zap.Logger
	Events RatingEvents
}

func NewSeasonService(db *gorm.DB, logger *zap.Logger, events RatingEvents) *SeasonService {
	return &SeasonService{DB: db, Logger: logger, Events: events}
}

// ListAll returns all seasons, newest first.
func (s *SeasonService) ListAll() ([]models.Season, error) {
	seasons := &repositories.SeasonRepository{DB: s.DB}
	return seasons.ListAll()
}

// Active returns the currently active season.
func (s *SeasonService) Active() (*models.Season, error) {
	seasons := &repositories.SeasonRepository{DB: s.DB}
	return seasons.GetActive()
}

// Rollover ends the active season (if any) and starts the next one.
// Season numbers are monotonic even across gaps with no active season.
func (s *SeasonService) Rollover() (*models.Season, error) {
	now := time.Now()
	var created *models.Season

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		seasons := &repositories.SeasonRepository{DB: tx}
		users := &repositories.UserRepository{DB: tx}

		if err := seasons.Deactivate(now); err != nil {
			return err
		}

		next := 1
		if latest, err := seasons.GetLatest(); err == nil {
			next = latest.SeasonNum + 1
		} else if err != repositories.ErrNoActiveSeason {
			return err
		}

		season := &models.Season{
			SeasonNum: next,
			StartDate: now,
			IsActive:  true,
		}
		if err := seasons.Create(season); err != nil {
			return err
		}

		if err := users.ResetSeasonalElo(models.BaselineEloSeasonal); err != nil {
			return err
		}

		created = season
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Info("season rolled over",
		zap.Int("seasonNum", created.SeasonNum))

	if s.Events != nil {
		s.Events.ClearTrack(models.TrackSeasonal)
	}
	return created, nil
}
