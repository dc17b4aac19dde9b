package models

import (
	"time"
)

// Season is a bounded competitive period with its own resettable seasonal
// rating track. Exactly one season is active at a time; seasons are only
// created by an explicit rollover.
type Season struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	SeasonNum int        `gorm:"unique;not null" json:"seasonNum"`
	StartDate time.Time  `gorm:"not null" json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	IsActive  bool       `gorm:"not null;default:true;index" json:"isActive"`
	CreatedAt time.Time  `json:"createdAt"`
}
