package repositories

import (
	"errors"
	"strings"

	"tcgladder/internal/models"

	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository struct {
	DB *gorm.DB
}

func (r *UserRepository) CreateUser(user *models.User) error {
	user.Username = strings.ToLower(strings.TrimSpace(user.Username))
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	return r.DB.Create(user).Error
}

func (r *UserRepository) GetUserByID(userID uint) (*models.User, error) {
	var user models.User
	err := r.DB.First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.DB.Where("username = ?", strings.ToLower(strings.TrimSpace(username))).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListByElo returns up to limit users ordered by the given rating column,
// highest first. column must be one of the two elo fields; callers validate
// the track name before mapping it to a column.
func (r *UserRepository) ListByElo(column string, limit int) ([]models.User, error) {
	users := []models.User{}
	err := r.DB.Order(column + " DESC").Limit(limit).Find(&users).Error
	return users, err
}

// GetUsersByIDs fetches users in bulk; missing IDs are silently skipped.
func (r *UserRepository) GetUsersByIDs(ids []uint) ([]models.User, error) {
	users := []models.User{}
	err := r.DB.Where("id IN ?", ids).Find(&users).Error
	return users, err
}

// ApplyRatingDeltas adds signed lifetime and seasonal deltas to a user and
// bumps the match counters. Increments are expressed in SQL so concurrent
// resolutions of different matches never clobber each other.
func (r *UserRepository) ApplyRatingDeltas(userID uint, lifetimeDelta, seasonalDelta float64, won bool) error {
	updates := map[string]interface{}{
		"elo_lifetime":   gorm.Expr("elo_lifetime + ?", lifetimeDelta),
		"elo_seasonal":   gorm.Expr("elo_seasonal + ?", seasonalDelta),
		"matches_played": gorm.Expr("matches_played + 1"),
	}
	if won {
		updates["wins"] = gorm.Expr("wins + 1")
	}
	result := r.DB.Model(&models.User{}).Where("id = ?", userID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ResetSeasonalElo sets every user's seasonal rating back to the baseline.
func (r *UserRepository) ResetSeasonalElo(baseline float64) error {
	return r.DB.Model(&models.User{}).Where("1 = 1").
		UpdateColumn("elo_seasonal", baseline).Error
}
