package handlers

import (
	"net/http"

	"tcgladder/internal/ladder"
	"tcgladder/internal/utils"
)

// SeasonHandler exposes season listing and rollover.
type SeasonHandler struct {
	Service *ladder.SeasonService
}

func NewSeasonHandler(service *ladder.SeasonService) *SeasonHandler {
	return &SeasonHandler{Service: service}
}

func (h *SeasonHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	seasons, err := h.Service.ListAll()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, seasons)
}

func (h *SeasonHandler) ActiveHandler(w http.ResponseWriter, r *http.Request) {
	season, err := h.Service.Active()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, season)
}

// RolloverHandler ends the active season, starts the next one and resets
// every seasonal rating. Admin-only, enforced by the router.
func (h *SeasonHandler) RolloverHandler(w http.ResponseWriter, r *http.Request) {
	season, err := h.Service.Rollover()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, season)
}
