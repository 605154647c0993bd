package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/skullking/models"
	"github.com/Dosada05/skullking/services"
)

type GameHandler struct {
	gameService services.GameService
}

func NewGameHandler(gs services.GameService) *GameHandler {
	return &GameHandler{gameService: gs}
}

type createGameInput struct {
	Players []string `json:"players"`
}

// resultPayload accepts both the short and the *_points spelling of the
// bonus and penalty fields.
type resultPayload struct {
	TricksWon     *int `json:"tricks_won"`
	Bonus         *int `json:"bonus"`
	Penalty       *int `json:"penalty"`
	BonusPoints   *int `json:"bonus_points"`
	PenaltyPoints *int `json:"penalty_points"`
}

func (p resultPayload) toInput() models.ResultInput {
	var in models.ResultInput
	if p.TricksWon != nil {
		in.TricksWon = *p.TricksWon
	}
	switch {
	case p.Bonus != nil:
		in.Bonus = *p.Bonus
	case p.BonusPoints != nil:
		in.Bonus = *p.BonusPoints
	}
	switch {
	case p.Penalty != nil:
		in.Penalty = *p.Penalty
	case p.PenaltyPoints != nil:
		in.Penalty = *p.PenaltyPoints
	}
	return in
}

func (h *GameHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var input createGameInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	game, err := h.gameService.CreateGame(r.Context(), input.Players)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, game, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GameHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	status := models.GameStatus(r.URL.Query().Get("status"))

	games, err := h.gameService.ListGames(r.Context(), status)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"games": games}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := h.gameService.GetGame(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, game, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GameHandler) GetScoreboard(w http.ResponseWriter, r *http.Request) {
	board, err := h.gameService.GetScoreboard(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, board, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GameHandler) StartRound(w http.ResponseWriter, r *http.Request) {
	roundNum, err := roundFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	game, err := h.gameService.StartRound(r.Context(), chi.URLParam(r, "gameID"), roundNum)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, game, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GameHandler) SubmitBids(w http.ResponseWriter, r *http.Request) {
	roundNum, err := roundFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var bids map[string]int
	if err := readJSON(w, r, &bids); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	game, err := h.gameService.SubmitBids(r.Context(), chi.URLParam(r, "gameID"), roundNum, bids)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, game, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GameHandler) SubmitResults(w http.ResponseWriter, r *http.Request) {
	roundNum, err := roundFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var payload map[string]resultPayload
	if err := readJSON(w, r, &payload); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	results := make(map[string]models.ResultInput, len(payload))
	for player, p := range payload {
		if p.TricksWon == nil {
			badRequestResponse(w, r, errors.New("tricks_won is required for "+player))
			return
		}
		results[player] = p.toInput()
	}

	game, err := h.gameService.SubmitResults(r.Context(), chi.URLParam(r, "gameID"), roundNum, results)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, game, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
