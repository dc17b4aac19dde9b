package models

import (
	"gorm.io/gorm"
)

// User roles.
const (
	RoleUser      = "user"
	RoleOrganizer = "organizer"
	RoleAdmin     = "admin"
)

// Baseline ratings for the two tracks. Seasonal resets to its baseline on
// every season rollover; lifetime never resets.
const (
	BaselineEloLifetime = 1500.0
	BaselineEloSeasonal = 1200.0
)

// User represents a registered player in the ladder.
type User struct {
	gorm.Model
	Username      string  `gorm:"unique;not null" json:"username"`
	Email         string  `gorm:"unique;not null" json:"email"`
	PasswordHash  string  `gorm:"not null" json:"-"`
	Role          string  `gorm:"not null;default:user" json:"role"`
	EloLifetime   float64 `gorm:"not null;default:1500" json:"eloLifetime"`
	EloSeasonal   float64 `gorm:"not null;default:1200" json:"eloSeasonal"`
	MatchesPlayed int     `gorm:"not null;default:0" json:"matchesPlayed"`
	Wins          int     `gorm:"not null;default:0" json:"wins"`
}

// IsAdmin reports whether the user may perform admin-only operations.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
