package models

import "time"

// GameStatus represents the lifecycle state of a game.
type GameStatus string

const (
	GameStatusActive    GameStatus = "ACTIVE"
	GameStatusCompleted GameStatus = "COMPLETED"
)

// FinalRound is the round whose results complete a game.
const FinalRound = 10

// Game is a single Skull King session.
type Game struct {
	ID           string     `json:"game_id" db:"id"`
	Players      []string   `json:"players" db:"players"`
	Status       GameStatus `json:"status" db:"status"`
	CreatedAt    time.Time  `json:"date" db:"created_at"`
	Rounds       []Round    `json:"rounds" db:"rounds"`
	CompletedAt  *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	StatsApplied bool       `json:"-" db:"stats_applied"`
	ArchivedAt   *time.Time `json:"archived_at,omitempty" db:"archived_at"`
	// StatsAppliedTo lists players whose lifetime stats already include this game.
	StatsAppliedTo []string `json:"-" db:"stats_applied_to"`
}

// Round holds the bids and scored results of one deal.
type Round struct {
	Number     int                    `json:"round_num"`
	CardsDealt int                    `json:"cards_dealt"`
	Bids       map[string]int         `json:"bids"`
	Results    map[string]RoundResult `json:"results"`
}

// RoundResult is the scored outcome for one player in one round.
type RoundResult struct {
	TricksWon     int            `json:"tricks_won"`
	Bid           int            `json:"bid"`
	BonusPoints   int            `json:"bonus_points"`
	PenaltyPoints int            `json:"penalty_points"`
	RoundScore    int            `json:"round_score"`
	Breakdown     BonusBreakdown `json:"breakdown"`
}

// BonusBreakdown details where bonus points came from. Only PotentialBonus is
// filled today; the capture categories stay zero until clients report them.
type BonusBreakdown struct {
	PotentialBonus int `json:"potential_bonus"`
	PirateBonus    int `json:"pirate_bonus"`
	SkullKingBonus int `json:"skull_king_bonus"`
	MermaidBonus   int `json:"mermaid_bonus"`
	LootBonus      int `json:"loot_bonus"`
}

// ResultInput is what a client reports for one player at the end of a round.
type ResultInput struct {
	TricksWon int `json:"tricks_won"`
	Bonus     int `json:"bonus"`
	Penalty   int `json:"penalty"`
}

// FindRound returns the index of the round with the given number, or -1.
func (g *Game) FindRound(number int) int {
	for i := range g.Rounds {
		if g.Rounds[i].Number == number {
			return i
		}
	}
	return -1
}

// HasPlayer reports whether name is seated in the game.
func (g *Game) HasPlayer(name string) bool {
	for _, p := range g.Players {
		if p == name {
			return true
		}
	}
	return false
}

// StatsAppliedFor reports whether name's stats already count this game.
func (g *Game) StatsAppliedFor(name string) bool {
	for _, p := range g.StatsAppliedTo {
		if p == name {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can mutate without touching stored state.
func (g *Game) Clone() *Game {
	if g == nil {
		return nil
	}
	c := *g
	c.Players = append([]string(nil), g.Players...)
	if g.StatsAppliedTo != nil {
		c.StatsAppliedTo = append([]string(nil), g.StatsAppliedTo...)
	}
	if g.CompletedAt != nil {
		t := *g.CompletedAt
		c.CompletedAt = &t
	}
	if g.ArchivedAt != nil {
		t := *g.ArchivedAt
		c.ArchivedAt = &t
	}
	c.Rounds = make([]Round, len(g.Rounds))
	for i, r := range g.Rounds {
		nr := Round{Number: r.Number, CardsDealt: r.CardsDealt}
		nr.Bids = make(map[string]int, len(r.Bids))
		for k, v := range r.Bids {
			nr.Bids[k] = v
		}
		nr.Results = make(map[string]RoundResult, len(r.Results))
		for k, v := range r.Results {
			nr.Results[k] = v
		}
		c.Rounds[i] = nr
	}
	return &c
}
