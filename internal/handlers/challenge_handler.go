package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"tcgladder/internal/ladder"
	"tcgladder/internal/middleware"
	"tcgladder/internal/models"
	"tcgladder/internal/utils"

	"github.com/go-chi/chi/v5"
)

// ChallengeHandler exposes the challenge lifecycle over HTTP.
type ChallengeHandler struct {
	Service *ladder.ChallengeService
}

func NewChallengeHandler(service *ladder.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{Service: service}
}

type createChallengeRequest struct {
	ChallengedID uint   `json:"challengedId"`
	Format       string `json:"format"`
	Deck         string `json:"deck"`
}

type acceptChallengeRequest struct {
	Deck string `json:"deck"`
}

func (h *ChallengeHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var req createChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{Code: "invalid_json", Message: "invalid payload"})
		return
	}

	challenge, err := h.Service.Create(middleware.UserIDFromContext(r), req.ChallengedID, req.Format, req.Deck)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, challenge)
}

// ListHandler returns challenges where the caller is on either side.
func (h *ChallengeHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	challenges, err := h.Service.ListForUser(middleware.UserIDFromContext(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, challenges)
}

// AcceptHandler locks the challenge and converts it into a match.
func (h *ChallengeHandler) AcceptHandler(w http.ResponseWriter, r *http.Request) {
	challengeID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req acceptChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{Code: "invalid_json", Message: "invalid payload"})
		return
	}

	match, err := h.Service.Accept(challengeID, middleware.UserIDFromContext(r), req.Deck)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, match)
}

func (h *ChallengeHandler) DeclineHandler(w http.ResponseWriter, r *http.Request) {
	challengeID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	challenge, err := h.Service.Decline(challengeID, middleware.UserIDFromContext(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, challenge)
}

// parseIDParam reads a numeric URL parameter, writing a 400 on failure.
func parseIDParam(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{Code: "validation_error", Message: "invalid " + name + " parameter"})
		return 0, false
	}
	return uint(id), true
}
