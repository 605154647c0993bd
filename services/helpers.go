package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/skullking/models"
	"github.com/Dosada05/skullking/repositories"
)

// --- validation ---

func normalizePlayers(players []string) ([]string, error) {
	if len(players) == 0 {
		return nil, ErrInvalidPlayers
	}
	seen := make(map[string]struct{}, len(players))
	out := make([]string, 0, len(players))
	for _, p := range players {
		name := strings.TrimSpace(p)
		if name == "" {
			return nil, fmt.Errorf("%w: blank player name", ErrInvalidPlayers)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: duplicate player %q", ErrInvalidPlayers, name)
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out, nil
}

func validateRoundNumber(roundNum int) error {
	if roundNum < 1 || roundNum > models.FinalRound {
		return fmt.Errorf("%w: got %d", ErrInvalidRoundNumber, roundNum)
	}
	return nil
}

func validateBids(game *models.Game, bids map[string]int) error {
	for player, bid := range bids {
		if !game.HasPlayer(player) {
			return fmt.Errorf("%w: %q", ErrUnknownPlayer, player)
		}
		if bid < 0 {
			return fmt.Errorf("%w: bid for %q must not be negative", ErrValidationFailed, player)
		}
	}
	return nil
}

func validateResults(game *models.Game, results map[string]models.ResultInput) error {
	for player, in := range results {
		if !game.HasPlayer(player) {
			return fmt.Errorf("%w: %q", ErrUnknownPlayer, player)
		}
		if in.TricksWon < 0 {
			return fmt.Errorf("%w: tricks won by %q must not be negative", ErrValidationFailed, player)
		}
	}
	return nil
}

func ensureMutable(game *models.Game) error {
	if game.Status == models.GameStatusCompleted {
		return fmt.Errorf("%w: %s", ErrGameCompleted, game.ID)
	}
	return nil
}

// --- error translation ---

func handleGameRepositoryError(err error, gameID string) error {
	if errors.Is(err, repositories.ErrGameNotFound) {
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return fmt.Errorf("game %s: %w", gameID, err)
}
