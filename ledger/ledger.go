// Package ledger keeps the per-game sequence of rounds and moves each round
// through its phases: started, bids submitted, results submitted.
package ledger

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Dosada05/skullking/models"
	"github.com/Dosada05/skullking/scoring"
)

var (
	ErrRoundNotFound = errors.New("round not found")
	ErrMissingBid    = errors.New("no bid recorded for player")
)

// Phase is the derived state of a round slot.
type Phase string

const (
	PhaseUnstarted        Phase = "UNSTARTED"
	PhaseStarted          Phase = "STARTED"
	PhaseBidsSubmitted    Phase = "BIDS_SUBMITTED"
	PhaseResultsSubmitted Phase = "RESULTS_SUBMITTED"
)

// Ledger applies round operations to a game in memory. It never persists
// anything; callers store the game after a successful call.
type Ledger struct {
	// ImplicitZeroBids scores players without a recorded bid as if they bid
	// zero instead of rejecting the results.
	ImplicitZeroBids bool
}

// StartRound adds the round if it does not exist yet and reports whether it
// did. Rounds stay ordered by number; gaps are allowed.
func (l Ledger) StartRound(game *models.Game, roundNum int) bool {
	if game.FindRound(roundNum) >= 0 {
		return false
	}
	game.Rounds = append(game.Rounds, models.Round{
		Number:     roundNum,
		CardsDealt: roundNum,
		Bids:       map[string]int{},
		Results:    map[string]models.RoundResult{},
	})
	sort.SliceStable(game.Rounds, func(i, j int) bool {
		return game.Rounds[i].Number < game.Rounds[j].Number
	})
	return true
}

// SubmitBids replaces the whole bid mapping of a started round.
func (l Ledger) SubmitBids(game *models.Game, roundNum int, bids map[string]int) error {
	idx := game.FindRound(roundNum)
	if idx < 0 {
		return fmt.Errorf("%w: round %d", ErrRoundNotFound, roundNum)
	}
	replaced := make(map[string]int, len(bids))
	for player, bid := range bids {
		replaced[player] = bid
	}
	game.Rounds[idx].Bids = replaced
	return nil
}

// SubmitResults scores every reported player and replaces the round's results.
// It returns true when this call moved the game from ACTIVE to COMPLETED.
func (l Ledger) SubmitResults(game *models.Game, roundNum int, inputs map[string]models.ResultInput) (bool, error) {
	idx := game.FindRound(roundNum)
	if idx < 0 {
		return false, fmt.Errorf("%w: round %d", ErrRoundNotFound, roundNum)
	}
	round := &game.Rounds[idx]

	players := make([]string, 0, len(inputs))
	for player := range inputs {
		players = append(players, player)
	}
	sort.Strings(players)

	results := make(map[string]models.RoundResult, len(inputs))
	for _, player := range players {
		in := inputs[player]
		bid, ok := round.Bids[player]
		if !ok && !l.ImplicitZeroBids {
			return false, fmt.Errorf("%w: %q in round %d", ErrMissingBid, player, roundNum)
		}
		results[player] = models.RoundResult{
			TricksWon:     in.TricksWon,
			Bid:           bid,
			BonusPoints:   in.Bonus,
			PenaltyPoints: in.Penalty,
			RoundScore:    scoring.Score(bid, in.TricksWon, roundNum, in.Bonus, in.Penalty),
			Breakdown:     models.BonusBreakdown{PotentialBonus: in.Bonus},
		}
	}
	round.Results = results

	if roundNum == models.FinalRound && game.Status == models.GameStatusActive {
		game.Status = models.GameStatusCompleted
		return true, nil
	}
	return false, nil
}

// PhaseOf returns the phase of the given round slot.
func PhaseOf(game *models.Game, roundNum int) Phase {
	idx := game.FindRound(roundNum)
	switch {
	case idx < 0:
		return PhaseUnstarted
	case len(game.Rounds[idx].Results) > 0:
		return PhaseResultsSubmitted
	case len(game.Rounds[idx].Bids) > 0:
		return PhaseBidsSubmitted
	default:
		return PhaseStarted
	}
}
