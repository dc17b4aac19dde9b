package models

import "time"

// Rating tracks.
const (
	TrackLifetime = "lifetime"
	TrackSeasonal = "seasonal"
)

// EloUpdate is the event published after a match resolution commits, one
// per player per track.
type EloUpdate struct {
	UserID    uint      `json:"userId"`
	Username  string    `json:"username"`
	Track     string    `json:"track"`
	OldRating float64   `json:"oldRating"`
	NewRating float64   `json:"newRating"`
	Change    float64   `json:"change"`
	MatchID   uint      `json:"matchId"`
	Timestamp time.Time `json:"timestamp"`
}
