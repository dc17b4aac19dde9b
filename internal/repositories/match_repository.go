package repositories

import (
	"errors"
	"time"

	"tcgladder/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepository struct {
	DB *gorm.DB
}

func (r *MatchRepository) Create(match *models.Match) error {
	return r.DB.Create(match).Error
}

func (r *MatchRepository) GetByID(matchID uint) (*models.Match, error) {
	var match models.Match
	err := r.DB.Preload("Reports").First(&match, matchID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// ListRecent returns the newest matches first.
func (r *MatchRepository) ListRecent(limit int) ([]models.Match, error) {
	matches := []models.Match{}
	err := r.DB.Preload("Reports").
		Order("created_at DESC").
		Limit(limit).
		Find(&matches).Error
	return matches, err
}

// ListForUser returns matches the user played in, newest first.
func (r *MatchRepository) ListForUser(userID uint, limit int) ([]models.Match, error) {
	matches := []models.Match{}
	err := r.DB.Preload("Reports").
		Where("player1_id = ? OR player2_id = ?", userID, userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&matches).Error
	return matches, err
}

// ListCompletedForUser returns the user's Completed matches oldest first,
// the order the history reconstructor replays them in.
func (r *MatchRepository) ListCompletedForUser(userID uint) ([]models.Match, error) {
	matches := []models.Match{}
	err := r.DB.
		Where("(player1_id = ? OR player2_id = ?) AND status = ?",
			userID, userID, models.MatchCompleted).
		Order("created_at ASC").
		Find(&matches).Error
	return matches, err
}

// UpsertReport stores a participant's report, replacing that reporter's
// prior report for the match if one exists.
func (r *MatchRepository) UpsertReport(report *models.MatchReport) error {
	if report.ReportedAt.IsZero() {
		report.ReportedAt = time.Now()
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "match_id"}, {Name: "reporter_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"reported_winner_id", "reported_p1_games_won", "reported_at",
		}),
	}).Create(report).Error
}

// GetReports returns the stored reports for a match, oldest first.
func (r *MatchRepository) GetReports(matchID uint) ([]models.MatchReport, error) {
	reports := []models.MatchReport{}
	err := r.DB.
		Where("match_id = ?", matchID).
		Order("reported_at ASC").
		Find(&reports).Error
	return reports, err
}

// TransitionStatus performs the guarded state transition for resolution.
// The WHERE on the current status makes the transition a compare-and-swap:
// of two racing resolvers, exactly one sees RowsAffected == 1 and goes on
// to apply rating deltas; the other observes the match already moved on.
func (r *MatchRepository) TransitionStatus(matchID uint, from []string, updates map[string]interface{}) (bool, error) {
	result := r.DB.Model(&models.Match{}).
		Where("id = ? AND status IN ?", matchID, from).
		Updates(updates)
	return result.RowsAffected == 1, result.Error
}
