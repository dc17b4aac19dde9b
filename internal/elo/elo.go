package elo

import (
	"math"

	"tcgladder/internal/models"
)

// KFactor is the maximum rating swing per game.
const KFactor = 32.0

// MatchDeltas holds the zero-sum rating changes for one resolved match.
type MatchDeltas struct {
	Player1Change float64
	Player2Change float64
}

// ExpectedScore calculates the expected performance of a player against an
// opponent. Formula: 1 / (1 + 10^((opponentElo - playerElo) / 400)).
func ExpectedScore(playerElo, opponentElo float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (opponentElo-playerElo)/400.0))
}

// GameDelta calculates the rating change for a single game. actualScore is
// 1 for a win and 0 for a loss.
func GameDelta(playerElo, opponentElo, actualScore float64) float64 {
	return KFactor * (actualScore - ExpectedScore(playerElo, opponentElo))
}

// MatchDelta calculates the rating changes for a complete series. Every game
// is computed against the fixed pre-match ratings, not updated game to game.
// Player 2's change is the exact negation of player 1's, so each match is
// zero-sum as a whole.
func MatchDelta(player1Elo, player2Elo float64, p1GamesWon, totalGames int) MatchDeltas {
	var p1Change float64
	for i := 0; i < p1GamesWon; i++ {
		p1Change += GameDelta(player1Elo, player2Elo, 1)
	}
	for i := 0; i < totalGames-p1GamesWon; i++ {
		p1Change += GameDelta(player1Elo, player2Elo, 0)
	}
	return MatchDeltas{Player1Change: p1Change, Player2Change: -p1Change}
}

// TotalGames returns the number of games played in a match format.
func TotalGames(format string) int {
	if format == models.FormatBestOf1 {
		return 1
	}
	return 3
}

// IsValidGamesWon reports whether a games-won count is possible for a format.
func IsValidGamesWon(gamesWon int, format string) bool {
	return gamesWon >= 0 && gamesWon <= TotalGames(format)
}

// Winner identifies which side of a match won.
type Winner int

const (
	WinnerNone Winner = iota
	WinnerPlayer1
	WinnerPlayer2
)

// DetermineWinner resolves a games-won split into a winning side. A split
// that reaches the win threshold for neither side (an under-determined or
// tied series) yields WinnerNone and must be rejected by callers rather
// than resolved.
func DetermineWinner(p1GamesWon int, format string) Winner {
	total := TotalGames(format)
	required := (total + 1) / 2

	if p1GamesWon >= required {
		return WinnerPlayer1
	}
	if total-p1GamesWon >= required {
		return WinnerPlayer2
	}
	return WinnerNone
}
