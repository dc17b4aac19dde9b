package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"tcgladder/internal/ladder"
	"tcgladder/internal/middleware"
	"tcgladder/internal/models"
	"tcgladder/internal/utils"
)

const defaultMatchListLimit = 50

// MatchHandler exposes match listing, reporting and resolution over HTTP.
type MatchHandler struct {
	Service *ladder.MatchService
}

func NewMatchHandler(service *ladder.MatchService) *MatchHandler {
	return &MatchHandler{Service: service}
}

type reportRequest struct {
	ReportedWinnerID   uint `json:"reportedWinnerId"`
	ReportedP1GamesWon int  `json:"reportedP1GamesWon"`
}

type adminCreateMatchRequest struct {
	Player1ID uint   `json:"player1Id"`
	Player2ID uint   `json:"player2Id"`
	Deck1     string `json:"deck1"`
	Deck2     string `json:"deck2"`
	Format    string `json:"format"`
}

type adminResolveRequest struct {
	P1GamesWon int `json:"p1GamesWon"`
}

func (h *MatchHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	limit := defaultMatchListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	matches, err := h.Service.ListRecent(limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, matches)
}

func (h *MatchHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	matchID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	match, err := h.Service.Get(matchID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, match)
}

// ReportHandler accepts a participant's result claim.
func (h *MatchHandler) ReportHandler(w http.ResponseWriter, r *http.Request) {
	matchID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{Code: "invalid_json", Message: "invalid payload"})
		return
	}

	status, err := h.Service.SubmitReport(matchID, middleware.UserIDFromContext(r), req.ReportedWinnerID, req.ReportedP1GamesWon)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": status})
}

// AdminCreateHandler creates a match directly, without a challenge.
func (h *MatchHandler) AdminCreateHandler(w http.ResponseWriter, r *http.Request) {
	var req adminCreateMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{Code: "invalid_json", Message: "invalid payload"})
		return
	}

	match, err := h.Service.AdminCreate(req.Player1ID, req.Player2ID, req.Deck1, req.Deck2, req.Format)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, match)
}

// AdminResolveHandler sets the authoritative result on a pending or
// disputed match.
func (h *MatchHandler) AdminResolveHandler(w http.ResponseWriter, r *http.Request) {
	matchID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req adminResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{Code: "invalid_json", Message: "invalid payload"})
		return
	}

	match, err := h.Service.AdminResolve(matchID, req.P1GamesWon)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, match)
}
