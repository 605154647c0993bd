package models

import "time"

// UserStats holds lifetime totals for a player name.
type UserStats struct {
	Username    string    `json:"username" db:"username"`
	TotalWins   int       `json:"total_wins" db:"total_wins"`
	HighScore   int       `json:"high_score" db:"high_score"`
	GamesPlayed int       `json:"games_played" db:"games_played"`
	UpdatedAt   time.Time `json:"-" db:"updated_at"`
}
