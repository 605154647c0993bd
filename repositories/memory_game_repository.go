package repositories

import (
	"context"
	"sort"
	"sync"

	"github.com/Dosada05/skullking/models"
)

type memoryGameRepository struct {
	mu    sync.RWMutex
	games map[string]*models.Game
}

// NewMemoryGameRepository keeps games for the lifetime of the process.
// Stored values are copied on the way in and out.
func NewMemoryGameRepository() GameRepository {
	return &memoryGameRepository{games: make(map[string]*models.Game)}
}

func (r *memoryGameRepository) Create(ctx context.Context, game *models.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.games[game.ID]; ok {
		return ErrGameConflict
	}
	r.games[game.ID] = game.Clone()
	return nil
}

func (r *memoryGameRepository) GetByID(ctx context.Context, id string) (*models.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return g.Clone(), nil
}

func (r *memoryGameRepository) Update(ctx context.Context, game *models.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.games[game.ID]; !ok {
		return ErrGameNotFound
	}
	r.games[game.ID] = game.Clone()
	return nil
}

func (r *memoryGameRepository) ListByStatus(ctx context.Context, status models.GameStatus) ([]*models.Game, error) {
	r.mu.RLock()
	games := make([]*models.Game, 0, len(r.games))
	for _, g := range r.games {
		if status == "" || g.Status == status {
			games = append(games, g.Clone())
		}
	}
	r.mu.RUnlock()

	sort.Slice(games, func(i, j int) bool {
		if games[i].CreatedAt.Equal(games[j].CreatedAt) {
			return games[i].ID < games[j].ID
		}
		return games[i].CreatedAt.After(games[j].CreatedAt)
	})
	return games, nil
}
