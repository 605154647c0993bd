package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/moby/locker"

	"github.com/Dosada05/skullking/ledger"
	"github.com/Dosada05/skullking/metrics"
	"github.com/Dosada05/skullking/models"
	"github.com/Dosada05/skullking/repositories"
)

type GameService interface {
	CreateGame(ctx context.Context, players []string) (*models.Game, error)
	GetGame(ctx context.Context, gameID string) (*models.Game, error)
	ListGames(ctx context.Context, status models.GameStatus) ([]*models.Game, error)
	GetScoreboard(ctx context.Context, gameID string) (*Scoreboard, error)

	StartRound(ctx context.Context, gameID string, roundNum int) (*models.Game, error)
	SubmitBids(ctx context.Context, gameID string, roundNum int, bids map[string]int) (*models.Game, error)
	SubmitResults(ctx context.Context, gameID string, roundNum int, results map[string]models.ResultInput) (*models.Game, error)

	// FinalizeCompletedGames retries stats aggregation and archiving for
	// completed games where either step did not finish.
	FinalizeCompletedGames(ctx context.Context) (int, error)
}

// Scoreboard is a read model of a game's running totals.
type Scoreboard struct {
	GameID  string               `json:"game_id"`
	Status  models.GameStatus    `json:"status"`
	Players []string             `json:"players"`
	Totals  map[string]int       `json:"totals"`
	Leaders []string             `json:"leaders"`
	Rounds  []ledger.RoundTotals `json:"rounds"`
	Phases  []RoundPhase         `json:"phases"`
}

type RoundPhase struct {
	Round int          `json:"round_num"`
	Phase ledger.Phase `json:"phase"`
}

type gameService struct {
	gameRepo repositories.GameRepository
	stats    StatsService
	archive  ArchiveService
	rules    ledger.Ledger
	clock    quartz.Clock
	metrics  *metrics.Metrics
	logger   *slog.Logger
	locks    *locker.Locker
}

// NewGameService wires the session manager. archive may be nil when no
// object storage is configured.
func NewGameService(
	gameRepo repositories.GameRepository,
	stats StatsService,
	archive ArchiveService,
	rules ledger.Ledger,
	clock quartz.Clock,
	m *metrics.Metrics,
	logger *slog.Logger,
) GameService {
	return &gameService{
		gameRepo: gameRepo,
		stats:    stats,
		archive:  archive,
		rules:    rules,
		clock:    clock,
		metrics:  m,
		logger:   logger,
		locks:    locker.New(),
	}
}

func (s *gameService) CreateGame(ctx context.Context, players []string) (*models.Game, error) {
	names, err := normalizePlayers(players)
	if err != nil {
		return nil, err
	}

	game := &models.Game{
		ID:        uuid.NewString(),
		Players:   names,
		Status:    models.GameStatusActive,
		CreatedAt: s.clock.Now().UTC(),
		Rounds:    []models.Round{},
	}
	if err := s.gameRepo.Create(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	s.metrics.GamesCreated.Inc()
	s.logger.InfoContext(ctx, "game created", slog.String("game_id", game.ID), slog.Int("players", len(names)))
	return game, nil
}

func (s *gameService) GetGame(ctx context.Context, gameID string) (*models.Game, error) {
	game, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, handleGameRepositoryError(err, gameID)
	}
	return game, nil
}

func (s *gameService) ListGames(ctx context.Context, status models.GameStatus) ([]*models.Game, error) {
	switch status {
	case "", models.GameStatusActive, models.GameStatusCompleted:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidationFailed, status)
	}
	games, err := s.gameRepo.ListByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	return games, nil
}

func (s *gameService) GetScoreboard(ctx context.Context, gameID string) (*Scoreboard, error) {
	game, err := s.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	totals := ledger.Totals(game)
	board := &Scoreboard{
		GameID:  game.ID,
		Status:  game.Status,
		Players: game.Players,
		Totals:  totals,
		Leaders: ledger.Winners(game.Players, totals),
		Rounds:  ledger.Progression(game),
		Phases:  make([]RoundPhase, 0, models.FinalRound),
	}
	for n := 1; n <= models.FinalRound; n++ {
		board.Phases = append(board.Phases, RoundPhase{Round: n, Phase: ledger.PhaseOf(game, n)})
	}
	return board, nil
}

func (s *gameService) StartRound(ctx context.Context, gameID string, roundNum int) (*models.Game, error) {
	return s.mutate(ctx, gameID, func(game *models.Game) (bool, error) {
		if err := validateRoundNumber(roundNum); err != nil {
			return false, err
		}
		started := s.rules.StartRound(game, roundNum)
		if started {
			s.metrics.RoundsStarted.Inc()
		}
		return started, nil
	})
}

func (s *gameService) SubmitBids(ctx context.Context, gameID string, roundNum int, bids map[string]int) (*models.Game, error) {
	return s.mutate(ctx, gameID, func(game *models.Game) (bool, error) {
		if err := validateBids(game, bids); err != nil {
			return false, err
		}
		if err := s.rules.SubmitBids(game, roundNum, bids); err != nil {
			return false, err
		}
		s.metrics.BidsSubmitted.Inc()
		return true, nil
	})
}

func (s *gameService) SubmitResults(ctx context.Context, gameID string, roundNum int, results map[string]models.ResultInput) (*models.Game, error) {
	var completed bool
	game, err := s.mutate(ctx, gameID, func(game *models.Game) (bool, error) {
		if err := validateResults(game, results); err != nil {
			return false, err
		}
		var err error
		completed, err = s.rules.SubmitResults(game, roundNum, results)
		if err != nil {
			return false, err
		}
		if completed {
			now := s.clock.Now().UTC()
			game.CompletedAt = &now
		}
		s.metrics.ResultsSubmitted.Inc()
		return true, nil
	}, func(ctx context.Context, game *models.Game) {
		if !completed {
			return
		}
		s.metrics.GamesCompleted.Inc()
		s.logger.InfoContext(ctx, "game completed", slog.String("game_id", game.ID))
		if err := s.finalize(ctx, game); err != nil {
			s.logger.ErrorContext(ctx, "failed to finalize completed game, will retry",
				slog.String("game_id", game.ID), slog.Any("error", err))
		}
	})
	if err != nil {
		return nil, err
	}
	return game, nil
}

func (s *gameService) FinalizeCompletedGames(ctx context.Context) (int, error) {
	games, err := s.gameRepo.ListByStatus(ctx, models.GameStatusCompleted)
	if err != nil {
		return 0, fmt.Errorf("failed to list completed games: %w", err)
	}

	var errs []error
	finalized := 0
	for _, g := range games {
		if !s.needsFinalize(g) {
			continue
		}
		if err := s.finalizeByID(ctx, g.ID); err != nil {
			errs = append(errs, err)
			continue
		}
		finalized++
	}
	return finalized, errors.Join(errs...)
}

// mutate runs one locked read-modify-write cycle. The game is stored only if
// apply succeeds and reports a change; after hooks run while the lock is held.
func (s *gameService) mutate(
	ctx context.Context,
	gameID string,
	apply func(game *models.Game) (bool, error),
	after ...func(ctx context.Context, game *models.Game),
) (*models.Game, error) {
	s.locks.Lock(gameID)
	defer s.locks.Unlock(gameID)

	game, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, handleGameRepositoryError(err, gameID)
	}
	if err := ensureMutable(game); err != nil {
		return nil, err
	}

	changed, err := apply(game)
	if err != nil {
		return nil, err
	}
	if changed {
		if err := s.gameRepo.Update(ctx, game); err != nil {
			return nil, handleGameRepositoryError(err, gameID)
		}
	}
	for _, hook := range after {
		hook(ctx, game)
	}
	return game, nil
}

func (s *gameService) needsFinalize(game *models.Game) bool {
	if game.Status != models.GameStatusCompleted {
		return false
	}
	return !game.StatsApplied || (s.archive != nil && game.ArchivedAt == nil)
}

func (s *gameService) finalizeByID(ctx context.Context, gameID string) error {
	s.locks.Lock(gameID)
	defer s.locks.Unlock(gameID)

	game, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return handleGameRepositoryError(err, gameID)
	}
	if !s.needsFinalize(game) {
		return nil
	}
	return s.finalize(ctx, game)
}

// finalize applies stats at most once per game and player, and archives the
// game when storage is configured. The caller must hold the game's lock.
func (s *gameService) finalize(ctx context.Context, game *models.Game) error {
	changed := false
	var archiveErr error

	if !game.StatsApplied {
		err := s.stats.RecordGame(ctx, game, func(ctx context.Context, g *models.Game) error {
			if err := s.gameRepo.Update(ctx, g); err != nil {
				return handleGameRepositoryError(err, g.ID)
			}
			return nil
		})
		if err != nil {
			return err
		}
		game.StatsApplied = true
		changed = true
	}

	if s.archive != nil && game.ArchivedAt == nil {
		result, err := s.archive.Archive(ctx, game)
		if err != nil {
			s.metrics.ArchiveUploads.WithLabelValues(metrics.OutcomeFailure).Inc()
			archiveErr = err
		} else {
			s.metrics.ArchiveUploads.WithLabelValues(metrics.OutcomeSuccess).Inc()
			now := s.clock.Now().UTC()
			game.ArchivedAt = &now
			changed = true
			s.logger.InfoContext(ctx, "game archived",
				slog.String("game_id", game.ID), slog.String("key", result.Key), slog.String("location", result.Location))
		}
	}

	if changed {
		if err := s.gameRepo.Update(ctx, game); err != nil {
			return errors.Join(handleGameRepositoryError(err, game.ID), archiveErr)
		}
	}
	return archiveErr
}
