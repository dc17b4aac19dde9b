package models

// ErrorResponse is the JSON body returned for every rejected operation.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// LeaderboardEntry is one row of the ranked listing.
type LeaderboardEntry struct {
	Rank          int     `json:"rank"`
	UserID        uint    `json:"id"`
	Username      string  `json:"username"`
	Elo           int     `json:"elo"`
	MatchesPlayed int     `json:"matchesPlayed"`
	Wins          int     `json:"wins"`
	WinRate       float64 `json:"winRate"`
	Role          string  `json:"role"`
}

// HistoryPoint is one step of a reconstructed rating trajectory.
type HistoryPoint struct {
	Date string `json:"date"`
	Elo  int    `json:"elo"`
}
