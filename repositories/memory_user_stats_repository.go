package repositories

import (
	"context"
	"sort"
	"sync"

	"github.com/Dosada05/skullking/models"
)

type memoryUserStatsRepository struct {
	mu    sync.Mutex
	stats map[string]models.UserStats
}

func NewMemoryUserStatsRepository() UserStatsRepository {
	return &memoryUserStatsRepository{stats: make(map[string]models.UserStats)}
}

func (r *memoryUserStatsRepository) Get(ctx context.Context, username string) (*models.UserStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stats[username]
	if !ok {
		s = models.UserStats{Username: username}
		r.stats[username] = s
	}
	return &s, nil
}

func (r *memoryUserStatsRepository) Update(ctx context.Context, stats *models.UserStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.stats[stats.Username]; !ok {
		return ErrUserStatsNotFound
	}
	r.stats[stats.Username] = *stats
	return nil
}

func (r *memoryUserStatsRepository) List(ctx context.Context, limit int) ([]*models.UserStats, error) {
	r.mu.Lock()
	list := make([]*models.UserStats, 0, len(r.stats))
	for _, s := range r.stats {
		s := s
		list = append(list, &s)
	}
	r.mu.Unlock()

	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.TotalWins != b.TotalWins {
			return a.TotalWins > b.TotalWins
		}
		if a.HighScore != b.HighScore {
			return a.HighScore > b.HighScore
		}
		return a.Username < b.Username
	})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}
