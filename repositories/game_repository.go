package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Dosada05/skullking/models"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameConflict = errors.New("game id already exists")
)

// GameRepository stores whole games keyed by id.
type GameRepository interface {
	Create(ctx context.Context, game *models.Game) error
	GetByID(ctx context.Context, id string) (*models.Game, error)
	Update(ctx context.Context, game *models.Game) error
	// ListByStatus returns games newest first. An empty status lists all games.
	ListByStatus(ctx context.Context, status models.GameStatus) ([]*models.Game, error)
}

type postgresGameRepository struct {
	db *sql.DB
}

func NewPostgresGameRepository(db *sql.DB) GameRepository {
	return &postgresGameRepository{db: db}
}

const gameColumns = `id, players, status, created_at, rounds, completed_at, stats_applied, archived_at, stats_applied_to`

func (r *postgresGameRepository) Create(ctx context.Context, game *models.Game) error {
	players, rounds, appliedTo, err := encodeGame(game)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO games (` + gameColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = r.db.ExecContext(ctx, query,
		game.ID,
		players,
		game.Status,
		game.CreatedAt,
		rounds,
		game.CompletedAt,
		game.StatsApplied,
		game.ArchivedAt,
		appliedTo,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrGameConflict
		}
		return fmt.Errorf("failed to insert game %s: %w", game.ID, err)
	}
	return nil
}

func (r *postgresGameRepository) GetByID(ctx context.Context, id string) (*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE id = $1`
	return scanGame(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresGameRepository) Update(ctx context.Context, game *models.Game) error {
	_, rounds, appliedTo, err := encodeGame(game)
	if err != nil {
		return err
	}
	query := `
		UPDATE games SET
			status = $1,
			rounds = $2,
			completed_at = $3,
			stats_applied = $4,
			archived_at = $5,
			stats_applied_to = $6
		WHERE id = $7`
	result, err := r.db.ExecContext(ctx, query,
		game.Status,
		rounds,
		game.CompletedAt,
		game.StatsApplied,
		game.ArchivedAt,
		appliedTo,
		game.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update game %s: %w", game.ID, err)
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

func (r *postgresGameRepository) ListByStatus(ctx context.Context, status models.GameStatus) ([]*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := make([]*models.Game, 0)
	for rows.Next() {
		g, errScan := scanGame(rows)
		if errScan != nil {
			return nil, errScan
		}
		games = append(games, g)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return games, nil
}

func encodeGame(game *models.Game) (players, rounds, appliedTo []byte, err error) {
	players, err = json.Marshal(game.Players)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to encode players of game %s: %w", game.ID, err)
	}
	gameRounds := game.Rounds
	if gameRounds == nil {
		gameRounds = []models.Round{}
	}
	rounds, err = json.Marshal(gameRounds)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to encode rounds of game %s: %w", game.ID, err)
	}
	applied := game.StatsAppliedTo
	if applied == nil {
		applied = []string{}
	}
	appliedTo, err = json.Marshal(applied)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to encode stats progress of game %s: %w", game.ID, err)
	}
	return players, rounds, appliedTo, nil
}

func scanGame(row rowScanner) (*models.Game, error) {
	var (
		g           models.Game
		players     []byte
		rounds      []byte
		completedAt sql.NullTime
		archivedAt  sql.NullTime
		appliedTo   []byte
	)
	err := row.Scan(
		&g.ID,
		&players,
		&g.Status,
		&g.CreatedAt,
		&rounds,
		&completedAt,
		&g.StatsApplied,
		&archivedAt,
		&appliedTo,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to scan game: %w", err)
	}
	if err := json.Unmarshal(players, &g.Players); err != nil {
		return nil, fmt.Errorf("failed to decode players of game %s: %w", g.ID, err)
	}
	if err := json.Unmarshal(rounds, &g.Rounds); err != nil {
		return nil, fmt.Errorf("failed to decode rounds of game %s: %w", g.ID, err)
	}
	if err := json.Unmarshal(appliedTo, &g.StatsAppliedTo); err != nil {
		return nil, fmt.Errorf("failed to decode stats progress of game %s: %w", g.ID, err)
	}
	if len(g.StatsAppliedTo) == 0 {
		g.StatsAppliedTo = nil
	}
	if completedAt.Valid {
		t := completedAt.Time
		g.CompletedAt = &t
	}
	if archivedAt.Valid {
		t := archivedAt.Time
		g.ArchivedAt = &t
	}
	return &g, nil
}
