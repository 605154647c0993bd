package services

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingGameService struct {
	GameService
	calls atomic.Int32
}

func (c *countingGameService) FinalizeCompletedGames(ctx context.Context) (int, error) {
	c.calls.Add(1)
	return 0, nil
}

func TestStartFinalizeScheduler(t *testing.T) {
	svc := &countingGameService{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	sched, err := StartFinalizeScheduler(context.Background(), svc, 20*time.Millisecond, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sched.Shutdown() })

	assert.Eventually(t, func() bool { return svc.calls.Load() >= 1 }, time.Second, 5*time.Millisecond,
		"first sweep should run at start")
	assert.Eventually(t, func() bool { return svc.calls.Load() >= 3 }, 2*time.Second, 10*time.Millisecond)
}

func TestStartFinalizeScheduler_InvalidInterval(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, err := StartFinalizeScheduler(context.Background(), &countingGameService{}, 0, logger)
	assert.Error(t, err)
}
