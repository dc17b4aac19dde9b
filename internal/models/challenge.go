package models

import (
	"gorm.io/gorm"
)

// Challenge formats as proposed by the challenger.
const (
	FormatBo1 = "bo1"
	FormatBo3 = "bo3"
)

// Challenge statuses. Accepted challenges are converted into a Match and
// deleted, so Locked only exists transiently inside the conversion.
const (
	ChallengePending  = "Pending"
	ChallengeDeclined = "Declined"
	ChallengeLocked   = "Locked"
	ChallengeExpired  = "Expired"
)

// Challenge is a match proposal from one player to another. Only the
// challenged player may accept or decline it, and at most one Pending
// challenge may exist between any pair of players at a time.
type Challenge struct {
	gorm.Model
	ChallengerID   uint    `gorm:"not null;index" json:"challengerId"`
	ChallengedID   uint    `gorm:"not null;index" json:"challengedId"`
	ProposedFormat string  `gorm:"not null" json:"proposedFormat"`
	ChallengerDeck string  `gorm:"not null" json:"challengerDeck"`
	ChallengedDeck *string `json:"challengedDeck"`
	Status         string  `gorm:"not null;default:Pending;index" json:"status"`
}

// IsValidChallengeFormat reports whether s is a recognized proposed format.
func IsValidChallengeFormat(s string) bool {
	return s == FormatBo1 || s == FormatBo3
}
