package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/skullking/services"
)

type UserHandler struct {
	statsService services.StatsService
}

func NewUserHandler(ss services.StatsService) *UserHandler {
	return &UserHandler{statsService: ss}
}

func (h *UserHandler) GetUserStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.GetUserStats(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, stats, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *UserHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			badRequestResponse(w, r, fmt.Errorf("invalid limit: %q", raw))
			return
		}
		limit = n
	}

	list, err := h.statsService.Leaderboard(r.Context(), limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"leaderboard": list}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
