package ledger

import "github.com/Dosada05/skullking/models"

// RoundTotals is one row of a game's running score sheet.
type RoundTotals struct {
	Round      int            `json:"round_num"`
	Scores     map[string]int `json:"scores"`
	Cumulative map[string]int `json:"cumulative"`
}

// Totals sums every player's round scores. Players without a result in a
// round get nothing for it.
func Totals(game *models.Game) map[string]int {
	totals := make(map[string]int, len(game.Players))
	for _, p := range game.Players {
		totals[p] = 0
	}
	for _, r := range game.Rounds {
		for _, p := range game.Players {
			if res, ok := r.Results[p]; ok {
				totals[p] += res.RoundScore
			}
		}
	}
	return totals
}

// Progression returns the per-round and running totals for each round that
// has been started, in round order.
func Progression(game *models.Game) []RoundTotals {
	running := make(map[string]int, len(game.Players))
	rows := make([]RoundTotals, 0, len(game.Rounds))
	for _, r := range game.Rounds {
		row := RoundTotals{
			Round:      r.Number,
			Scores:     make(map[string]int, len(game.Players)),
			Cumulative: make(map[string]int, len(game.Players)),
		}
		for _, p := range game.Players {
			score := 0
			if res, ok := r.Results[p]; ok {
				score = res.RoundScore
			}
			running[p] += score
			row.Scores[p] = score
			row.Cumulative[p] = running[p]
		}
		rows = append(rows, row)
	}
	return rows
}

// Winners returns every player whose total equals the highest total, in
// seating order. Ties produce several winners.
func Winners(players []string, totals map[string]int) []string {
	if len(players) == 0 {
		return nil
	}
	best := totals[players[0]]
	for _, p := range players[1:] {
		if totals[p] > best {
			best = totals[p]
		}
	}
	winners := make([]string, 0, 1)
	for _, p := range players {
		if totals[p] == best {
			winners = append(winners, p)
		}
	}
	return winners
}
