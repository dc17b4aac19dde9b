package models

import (
	"time"

	"gorm.io/gorm"
)

// Match formats, mapped from the challenge's proposed format on conversion.
const (
	FormatBestOf1 = "best-of-1"
	FormatBestOf3 = "best-of-3"
)

// Match lifecycle states. Completed is terminal; Disputed waits for an admin.
const (
	MatchPending   = "Pending"
	MatchDisputed  = "Disputed"
	MatchCompleted = "Completed"
)

// Match is the durable record of a head-to-head series. Player1 is always
// the participant with the numerically smaller user ID, fixed at creation,
// so the snapshot and report fields are unambiguous. The four Elo snapshots
// freeze the ratings the match settles against; later rating changes never
// alter this match's payout. Matches are never deleted.
type Match struct {
	gorm.Model
	Player1ID          uint    `gorm:"not null;index" json:"player1Id"`
	Player2ID          uint    `gorm:"not null;index" json:"player2Id"`
	Deck1              string  `gorm:"not null" json:"deck1"`
	Deck2              string  `gorm:"not null" json:"deck2"`
	Format             string  `gorm:"not null" json:"format"`
	Status             string  `gorm:"not null;default:Pending;index" json:"status"`
	WinnerID           *uint   `json:"winnerId"`
	ResolvedP1GamesWon *int    `json:"resolvedP1GamesWon"`
	EloLifetimeStartP1 float64 `gorm:"not null" json:"eloLifetimeStartP1"`
	EloLifetimeStartP2 float64 `gorm:"not null" json:"eloLifetimeStartP2"`
	EloSeasonalStartP1 float64 `gorm:"not null" json:"eloSeasonalStartP1"`
	EloSeasonalStartP2 float64 `gorm:"not null" json:"eloSeasonalStartP2"`

	Reports []MatchReport `gorm:"foreignKey:MatchID" json:"reports"`
}

// HasPlayer reports whether userID is one of the match participants.
func (m *Match) HasPlayer(userID uint) bool {
	return userID == m.Player1ID || userID == m.Player2ID
}

// Terminal reports whether the match can no longer accept reports.
func (m *Match) Terminal() bool {
	return m.Status == MatchCompleted
}

// MatchReport is one participant's claim about the outcome. At most one row
// exists per (match, reporter); re-submitting overwrites the prior claim
// while the match is non-terminal.
type MatchReport struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	MatchID            uint      `gorm:"not null;index:idx_match_reporter,unique" json:"matchId"`
	ReporterID         uint      `gorm:"not null;index:idx_match_reporter,unique" json:"reporterId"`
	ReportedWinnerID   uint      `gorm:"not null" json:"reportedWinnerId"`
	ReportedP1GamesWon int       `gorm:"not null" json:"reportedP1GamesWon"`
	ReportedAt         time.Time `gorm:"not null" json:"reportedAt"`
}

// Agrees reports whether two reports name the same winner and the same
// exact games-won split.
func (r MatchReport) Agrees(other MatchReport) bool {
	return r.ReportedWinnerID == other.ReportedWinnerID &&
		r.ReportedP1GamesWon == other.ReportedP1GamesWon
}

// MatchFormatFromChallenge maps a challenge's proposed format token to the
// match format vocabulary.
func MatchFormatFromChallenge(proposed string) string {
	if proposed == FormatBo1 {
		return FormatBestOf1
	}
	return FormatBestOf3
}

// IsValidMatchFormat reports whether s is a recognized match format.
func IsValidMatchFormat(s string) bool {
	return s == FormatBestOf1 || s == FormatBestOf3
}
