package handlers

import (
	"net/http"

	"tcgladder/internal/ladder"
	"tcgladder/internal/models"
	"tcgladder/internal/repositories"
	"tcgladder/internal/utils"
)

// writeServiceError maps ladder and repository errors onto the response
// taxonomy: validation 400, authorization 403, state conflict 409, not
// found 404, everything else 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch err {
	case ladder.ErrSelfChallenge,
		ladder.ErrAlreadyPending,
		ladder.ErrInvalidFormat,
		ladder.ErrDeckRequired,
		ladder.ErrInvalidGamesWon,
		ladder.ErrInvalidWinner,
		ladder.ErrInconsistentReport,
		ladder.ErrInvalidResult,
		ladder.ErrInvalidTrack,
		ladder.ErrSamePlayers:
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "validation_error",
			Message: err.Error(),
		})
	case ladder.ErrNotAuthorized, ladder.ErrNotParticipant:
		utils.JSON(w, http.StatusForbidden, models.ErrorResponse{
			Code:    "forbidden",
			Message: err.Error(),
		})
	case ladder.ErrChallengeNotPending, ladder.ErrAlreadyResolved:
		utils.JSON(w, http.StatusConflict, models.ErrorResponse{
			Code:    "state_conflict",
			Message: err.Error(),
		})
	case repositories.ErrUserNotFound,
		repositories.ErrChallengeNotFound,
		repositories.ErrMatchNotFound,
		repositories.ErrNoActiveSeason:
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "not_found",
			Message: err.Error(),
		})
	default:
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "internal server error",
		})
	}
}
