package ladder

import "errors"

// Validation errors, rejected before any state change.
var (
	ErrSelfChallenge      = errors.New("cannot challenge yourself")
	ErrAlreadyPending     = errors.New("a pending challenge already exists between these players")
	ErrInvalidFormat      = errors.New("invalid match format")
	ErrDeckRequired       = errors.New("deck selection is required to accept a challenge")
	ErrInvalidGamesWon    = errors.New("invalid games won count for this format")
	ErrInvalidWinner      = errors.New("reported winner must be one of the match participants")
	ErrInconsistentReport = errors.New("reported games won do not produce the reported winner")
	ErrInvalidResult      = errors.New("games won count does not determine a winner")
	ErrInvalidTrack       = errors.New("track must be lifetime or seasonal")
	ErrSamePlayers        = errors.New("players must be distinct")
)

// Authorization errors.
var (
	ErrNotAuthorized  = errors.New("not authorized to modify this challenge")
	ErrNotParticipant = errors.New("only match participants can report results")
)

// State conflict errors.
var (
	ErrChallengeNotPending = errors.New("challenge is no longer pending")
	ErrAlreadyResolved     = errors.New("match is already resolved")
)
