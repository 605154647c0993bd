//go:build integration

package repositories

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Dosada05/skullking/db"
	"github.com/Dosada05/skullking/models"
)

func setupPostgres(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("skullking"),
		postgres.WithUsername("skullking"),
		postgres.WithPassword("skullking"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(45*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")
	t.Cleanup(func() {
		if err := pgContainer.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	conn, err := db.Connect(connStr, 10*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, db.Migrate(ctx, conn))
	// migrations must be repeatable
	require.NoError(t, db.Migrate(ctx, conn))
	return conn
}

func TestPostgresRepositories(t *testing.T) {
	conn := setupPostgres(t)
	ctx := context.Background()

	t.Run("games", func(t *testing.T) {
		repo := NewPostgresGameRepository(conn)
		created := time.Date(2026, 5, 1, 20, 0, 0, 0, time.UTC)

		game := &models.Game{
			ID:        "g-1",
			Players:   []string{"Alice", "Bob"},
			Status:    models.GameStatusActive,
			CreatedAt: created,
		}
		require.NoError(t, repo.Create(ctx, game))
		assert.ErrorIs(t, repo.Create(ctx, game), ErrGameConflict)

		_, err := repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, ErrGameNotFound)

		got, err := repo.GetByID(ctx, "g-1")
		require.NoError(t, err)
		assert.Equal(t, []string{"Alice", "Bob"}, got.Players)
		assert.Empty(t, got.Rounds)
		assert.Nil(t, got.CompletedAt)
		assert.Nil(t, got.StatsAppliedTo)

		done := created.Add(time.Hour)
		got.Rounds = []models.Round{{
			Number:     10,
			CardsDealt: 10,
			Bids:       map[string]int{"Alice": 2, "Bob": 0},
			Results: map[string]models.RoundResult{
				"Alice": {TricksWon: 2, Bid: 2, RoundScore: 40},
				"Bob":   {TricksWon: 0, Bid: 0, RoundScore: 100},
			},
		}}
		got.Status = models.GameStatusCompleted
		got.CompletedAt = &done
		got.StatsApplied = true
		got.StatsAppliedTo = []string{"Alice", "Bob"}
		require.NoError(t, repo.Update(ctx, got))

		reloaded, err := repo.GetByID(ctx, "g-1")
		require.NoError(t, err)
		assert.Equal(t, models.GameStatusCompleted, reloaded.Status)
		assert.True(t, reloaded.StatsApplied)
		assert.Equal(t, []string{"Alice", "Bob"}, reloaded.StatsAppliedTo)
		require.NotNil(t, reloaded.CompletedAt)
		assert.True(t, done.Equal(*reloaded.CompletedAt))
		assert.Equal(t, got.Rounds, reloaded.Rounds)

		assert.ErrorIs(t, repo.Update(ctx, &models.Game{ID: "missing"}), ErrGameNotFound)

		require.NoError(t, repo.Create(ctx, &models.Game{
			ID: "g-2", Players: []string{"Cy"}, Status: models.GameStatusActive, CreatedAt: created.Add(time.Minute),
		}))

		all, err := repo.ListByStatus(ctx, "")
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "g-2", all[0].ID)

		completed, err := repo.ListByStatus(ctx, models.GameStatusCompleted)
		require.NoError(t, err)
		require.Len(t, completed, 1)
		assert.Equal(t, "g-1", completed[0].ID)
	})

	t.Run("user stats", func(t *testing.T) {
		repo := NewPostgresUserStatsRepository(conn)

		first, err := repo.Get(ctx, "Alice")
		require.NoError(t, err)
		assert.Zero(t, first.GamesPlayed)

		stamp := time.Date(2026, 5, 2, 8, 0, 0, 0, time.UTC)
		first.GamesPlayed, first.TotalWins, first.HighScore = 3, 2, 180
		first.UpdatedAt = stamp
		require.NoError(t, repo.Update(ctx, first))

		again, err := repo.Get(ctx, "Alice")
		require.NoError(t, err)
		assert.Equal(t, 3, again.GamesPlayed)
		assert.Equal(t, 2, again.TotalWins)
		assert.Equal(t, 180, again.HighScore)
		assert.True(t, stamp.Equal(again.UpdatedAt))

		_, err = repo.Get(ctx, "Bob")
		require.NoError(t, err)

		assert.ErrorIs(t, repo.Update(ctx, &models.UserStats{Username: "ghost"}), ErrUserStatsNotFound)

		list, err := repo.List(ctx, 0)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Alice", list[0].Username)

		top, err := repo.List(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, top, 1)
	})
}
