package repositories

import (
	"errors"
	"time"

	"tcgladder/internal/models"

	"gorm.io/gorm"
)

var ErrNoActiveSeason = errors.New("no active season")

type SeasonRepository struct {
	DB *gorm.DB
}

func (r *SeasonRepository) Create(season *models.Season) error {
	return r.DB.Create(season).Error
}

func (r *SeasonRepository) GetActive() (*models.Season, error) {
	var season models.Season
	err := r.DB.Where("is_active = ?", true).First(&season).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoActiveSeason
	}
	if err != nil {
		return nil, err
	}
	return &season, nil
}

// GetLatest returns the season with the highest number, active or not.
func (r *SeasonRepository) GetLatest() (*models.Season, error) {
	var season models.Season
	err := r.DB.Order("season_num DESC").First(&season).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoActiveSeason
	}
	if err != nil {
		return nil, err
	}
	return &season, nil
}

func (r *SeasonRepository) ListAll() ([]models.Season, error) {
	seasons := []models.Season{}
	err := r.DB.Order("season_num DESC").Find(&seasons).Error
	return seasons, err
}

// Deactivate ends the current active season, stamping its end date.
func (r *SeasonRepository) Deactivate(endedAt time.Time) error {
	return r.DB.Model(&models.Season{}).
		Where("is_active = ?", true).
		Updates(map[string]interface{}{"is_active": false, "end_date": endedAt}).Error
}
