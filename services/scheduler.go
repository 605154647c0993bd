package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartFinalizeScheduler runs FinalizeCompletedGames once right away and then
// every interval. The caller owns the returned scheduler and must shut it down.
func StartFinalizeScheduler(ctx context.Context, games GameService, interval time.Duration, logger *slog.Logger) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			n, err := games.FinalizeCompletedGames(ctx)
			if err != nil {
				logger.ErrorContext(ctx, "scheduler: finalize sweep failed", slog.Int("finalized", n), slog.Any("error", err))
				return
			}
			if n > 0 {
				logger.InfoContext(ctx, "scheduler: finalized completed games", slog.Int("finalized", n))
			}
		}),
		gocron.WithName("finalize-completed-games"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, fmt.Errorf("failed to register finalize job: %w", err)
	}

	sched.Start()
	logger.Info("finalize scheduler started", slog.Duration("interval", interval))
	return sched, nil
}
