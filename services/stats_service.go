package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/coder/quartz"

	"github.com/Dosada05/skullking/ledger"
	"github.com/Dosada05/skullking/metrics"
	"github.com/Dosada05/skullking/models"
	"github.com/Dosada05/skullking/repositories"
)

const maxLeaderboardLimit = 100

type StatsService interface {
	GetUserStats(ctx context.Context, username string) (*models.UserStats, error)
	Leaderboard(ctx context.Context, limit int) ([]*models.UserStats, error)
	// RecordGame folds a completed game into every participant's lifetime
	// stats. Records are updated one by one with no transaction across them.
	// Players already in game.StatsAppliedTo are skipped. Each saved player is
	// appended there and checkpoint, when set, persists the game before the
	// next player is touched.
	RecordGame(ctx context.Context, game *models.Game, checkpoint func(ctx context.Context, game *models.Game) error) error
}

type statsService struct {
	statsRepo repositories.UserStatsRepository
	clock     quartz.Clock
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

func NewStatsService(
	statsRepo repositories.UserStatsRepository,
	clock quartz.Clock,
	m *metrics.Metrics,
	logger *slog.Logger,
) StatsService {
	return &statsService{
		statsRepo: statsRepo,
		clock:     clock,
		metrics:   m,
		logger:    logger,
	}
}

func (s *statsService) GetUserStats(ctx context.Context, username string) (*models.UserStats, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidationFailed)
	}
	stats, err := s.statsRepo.Get(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to load stats for %q: %w", username, err)
	}
	return stats, nil
}

func (s *statsService) Leaderboard(ctx context.Context, limit int) ([]*models.UserStats, error) {
	if limit <= 0 || limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}
	list, err := s.statsRepo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaderboard: %w", err)
	}
	return list, nil
}

func (s *statsService) RecordGame(
	ctx context.Context,
	game *models.Game,
	checkpoint func(ctx context.Context, game *models.Game) error,
) error {
	totals := ledger.Totals(game)
	winners := make(map[string]bool)
	for _, w := range ledger.Winners(game.Players, totals) {
		winners[w] = true
	}

	recorded := 0
	for _, player := range game.Players {
		if game.StatsAppliedFor(player) {
			continue
		}
		if err := s.recordPlayer(ctx, player, totals[player], winners[player]); err != nil {
			s.metrics.StatsUpdates.WithLabelValues(metrics.OutcomeFailure).Inc()
			return fmt.Errorf("game %s: %w", game.ID, err)
		}
		s.metrics.StatsUpdates.WithLabelValues(metrics.OutcomeSuccess).Inc()
		recorded++

		game.StatsAppliedTo = append(game.StatsAppliedTo, player)
		if checkpoint != nil {
			if err := checkpoint(ctx, game); err != nil {
				return fmt.Errorf("game %s: failed to save stats progress after %q: %w", game.ID, player, err)
			}
		}
	}

	s.logger.InfoContext(ctx, "player stats updated for completed game",
		slog.String("game_id", game.ID),
		slog.Any("totals", totals),
		slog.Int("winners", len(winners)),
		slog.Int("recorded", recorded),
	)
	return nil
}

func (s *statsService) recordPlayer(ctx context.Context, player string, total int, won bool) error {
	stats, err := s.statsRepo.Get(ctx, player)
	if err != nil {
		return fmt.Errorf("failed to load stats for %q: %w", player, err)
	}
	stats.GamesPlayed++
	if won {
		stats.TotalWins++
	}
	if total > stats.HighScore {
		stats.HighScore = total
	}
	stats.UpdatedAt = s.clock.Now().UTC()
	if err := s.statsRepo.Update(ctx, stats); err != nil {
		return fmt.Errorf("failed to save stats for %q: %w", player, err)
	}
	return nil
}
