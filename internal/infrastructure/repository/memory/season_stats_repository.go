package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/hanakm/rinkleague/internal/domain/seasonstats"
)

type PlayerStatRepository struct {
	mu            sync.RWMutex
	itemsBySeason map[string][]seasonstats.PlayerSeasonStat
}

func NewPlayerStatRepository() *PlayerStatRepository {
	return &PlayerStatRepository{itemsBySeason: make(map[string][]seasonstats.PlayerSeasonStat)}
}

func (r *PlayerStatRepository) ListBySeason(_ context.Context, orgID, seasonID string) ([]seasonstats.PlayerSeasonStat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.itemsBySeason[orgKey(orgID, seasonID)]
	out := make([]seasonstats.PlayerSeasonStat, 0, len(items))
	out = append(out, items...)
	return out, nil
}

func (r *PlayerStatRepository) ReplaceBySeason(_ context.Context, orgID, seasonID string, items []seasonstats.PlayerSeasonStat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make([]seasonstats.PlayerSeasonStat, 0, len(items))
	stored = append(stored, items...)
	r.itemsBySeason[orgKey(orgID, seasonID)] = stored
	return nil
}

type GoalieStatRepository struct {
	mu            sync.RWMutex
	itemsBySeason map[string][]seasonstats.GoalieSeasonStat
}

func NewGoalieStatRepository() *GoalieStatRepository {
	return &GoalieStatRepository{itemsBySeason: make(map[string][]seasonstats.GoalieSeasonStat)}
}

func (r *GoalieStatRepository) ListBySeason(_ context.Context, orgID, seasonID string) ([]seasonstats.GoalieSeasonStat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.itemsBySeason[orgKey(orgID, seasonID)]
	out := make([]seasonstats.GoalieSeasonStat, 0, len(items))
	out = append(out, items...)
	return out, nil
}

func (r *GoalieStatRepository) ReplaceBySeason(_ context.Context, orgID, seasonID string, items []seasonstats.GoalieSeasonStat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make([]seasonstats.GoalieSeasonStat, 0, len(items))
	stored = append(stored, items...)
	r.itemsBySeason[orgKey(orgID, seasonID)] = stored
	return nil
}

type GoalieGameStatRepository struct {
	mu          sync.RWMutex
	itemsByGame map[string][]seasonstats.GoalieGameStat
}

func NewGoalieGameStatRepository() *GoalieGameStatRepository {
	return &GoalieGameStatRepository{itemsByGame: make(map[string][]seasonstats.GoalieGameStat)}
}

func (r *GoalieGameStatRepository) ListByGames(_ context.Context, orgID string, gameIDs []string) ([]seasonstats.GoalieGameStat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]seasonstats.GoalieGameStat, 0)
	for _, gameID := range gameIDs {
		out = append(out, r.itemsByGame[orgKey(orgID, gameID)]...)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].GameID != out[j].GameID {
			return out[i].GameID < out[j].GameID
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out, nil
}

func (r *GoalieGameStatRepository) ReplaceByGame(_ context.Context, orgID, gameID string, items []seasonstats.GoalieGameStat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make([]seasonstats.GoalieGameStat, 0, len(items))
	stored = append(stored, items...)
	r.itemsByGame[orgKey(orgID, gameID)] = stored
	return nil
}

func (r *GoalieGameStatRepository) DeleteByGame(_ context.Context, orgID, gameID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.itemsByGame, orgKey(orgID, gameID))
	return nil
}
