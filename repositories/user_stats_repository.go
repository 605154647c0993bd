package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/skullking/models"
)

var ErrUserStatsNotFound = errors.New("user stats not found")

// UserStatsRepository stores lifetime stats keyed by username.
type UserStatsRepository interface {
	// Get returns the stats for username, creating a zero record on first access.
	Get(ctx context.Context, username string) (*models.UserStats, error)
	// Update stores stats as given, UpdatedAt included.
	Update(ctx context.Context, stats *models.UserStats) error
	// List returns stats ordered by wins, then high score, then username.
	// A limit of zero or less returns every record.
	List(ctx context.Context, limit int) ([]*models.UserStats, error)
}

type postgresUserStatsRepository struct {
	db *sql.DB
}

func NewPostgresUserStatsRepository(db *sql.DB) UserStatsRepository {
	return &postgresUserStatsRepository{db: db}
}

const userStatsColumns = `username, total_wins, high_score, games_played, updated_at`

func (r *postgresUserStatsRepository) getByUsername(ctx context.Context, username string) (*models.UserStats, error) {
	query := `SELECT ` + userStatsColumns + ` FROM user_stats WHERE username = $1`
	return scanUserStats(r.db.QueryRowContext(ctx, query, username))
}

func (r *postgresUserStatsRepository) Get(ctx context.Context, username string) (*models.UserStats, error) {
	stats, err := r.getByUsername(ctx, username)
	if err == nil {
		return stats, nil
	}
	if !errors.Is(err, ErrUserStatsNotFound) {
		return nil, fmt.Errorf("failed to get stats for %q: %w", username, err)
	}

	query := `
		INSERT INTO user_stats (username)
		VALUES ($1)
		RETURNING ` + userStatsColumns
	stats, err = scanUserStats(r.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if isUniqueViolation(err) {
			// created concurrently
			return r.getByUsername(ctx, username)
		}
		return nil, fmt.Errorf("failed to create stats for %q: %w", username, err)
	}
	return stats, nil
}

func (r *postgresUserStatsRepository) Update(ctx context.Context, stats *models.UserStats) error {
	query := `
		UPDATE user_stats SET
			total_wins = $1,
			high_score = $2,
			games_played = $3,
			updated_at = $4
		WHERE username = $5`
	result, err := r.db.ExecContext(ctx, query,
		stats.TotalWins, stats.HighScore, stats.GamesPlayed, stats.UpdatedAt, stats.Username,
	)
	if err != nil {
		return fmt.Errorf("failed to update stats for %q: %w", stats.Username, err)
	}
	return checkAffectedRows(result, ErrUserStatsNotFound)
}

func (r *postgresUserStatsRepository) List(ctx context.Context, limit int) ([]*models.UserStats, error) {
	query := `SELECT ` + userStatsColumns + ` FROM user_stats
		ORDER BY total_wins DESC, high_score DESC, username ASC`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*models.UserStats, 0)
	for rows.Next() {
		s, errScan := scanUserStats(rows)
		if errScan != nil {
			return nil, errScan
		}
		list = append(list, s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func scanUserStats(row rowScanner) (*models.UserStats, error) {
	var s models.UserStats
	err := row.Scan(&s.Username, &s.TotalWins, &s.HighScore, &s.GamesPlayed, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserStatsNotFound
		}
		return nil, err
	}
	return &s, nil
}
