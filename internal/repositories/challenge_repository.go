package repositories

import (
	"errors"
	"time"

	"tcgladder/internal/models"

	"gorm.io/gorm"
)

var ErrChallengeNotFound = errors.New("challenge not found")

type ChallengeRepository struct {
	DB *gorm.DB
}

func (r *ChallengeRepository) Create(challenge *models.Challenge) error {
	return r.DB.Create(challenge).Error
}

func (r *ChallengeRepository) GetByID(challengeID uint) (*models.Challenge, error) {
	var challenge models.Challenge
	err := r.DB.First(&challenge, challengeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrChallengeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &challenge, nil
}

// ListForUser returns challenges where the user is on either side, newest
// first.
func (r *ChallengeRepository) ListForUser(userID uint) ([]models.Challenge, error) {
	challenges := []models.Challenge{}
	err := r.DB.
		Where("challenger_id = ? OR challenged_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&challenges).Error
	return challenges, err
}

// PendingBetween finds a Pending challenge between the unordered pair
// (a, b), in either direction.
func (r *ChallengeRepository) PendingBetween(a, b uint) (*models.Challenge, error) {
	var challenge models.Challenge
	err := r.DB.
		Where("status = ?", models.ChallengePending).
		Where("(challenger_id = ? AND challenged_id = ?) OR (challenger_id = ? AND challenged_id = ?)",
			a, b, b, a).
		First(&challenge).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrChallengeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &challenge, nil
}

// UpdateStatus transitions a challenge out of Pending. The conditional
// WHERE means only one of two racing responders can win the transition.
func (r *ChallengeRepository) UpdateStatus(challengeID uint, from, to string) (bool, error) {
	result := r.DB.Model(&models.Challenge{}).
		Where("id = ? AND status = ?", challengeID, from).
		Update("status", to)
	return result.RowsAffected == 1, result.Error
}

// Delete removes a challenge permanently. Conversion into a match hard
// deletes the challenge; the match is the durable artifact.
func (r *ChallengeRepository) Delete(challengeID uint) error {
	return r.DB.Unscoped().Delete(&models.Challenge{}, challengeID).Error
}

// ExpirePendingOlderThan marks stale Pending challenges Expired and returns
// how many rows changed.
func (r *ChallengeRepository) ExpirePendingOlderThan(cutoff time.Time) (int64, error) {
	result := r.DB.Model(&models.Challenge{}).
		Where("status = ? AND created_at < ?", models.ChallengePending, cutoff).
		Update("status", models.ChallengeExpired)
	return result.RowsAffected, result.Error
}
