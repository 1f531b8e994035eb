package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/hanakm/rinkleague/internal/domain/game"
)

type GameRepository struct {
	mu    sync.RWMutex
	items map[string]game.Game
}

func NewGameRepository(games []game.Game) *GameRepository {
	items := make(map[string]game.Game, len(games))
	for _, item := range games {
		items[orgKey(item.OrgID, item.ID)] = item
	}
	return &GameRepository{items: items}
}

func (r *GameRepository) GetByID(_ context.Context, orgID, gameID string) (game.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[orgKey(orgID, gameID)]
	return cloneGame(item), ok, nil
}

func (r *GameRepository) ListByRound(_ context.Context, orgID, roundID string) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Game, 0)
	for _, item := range r.items {
		if item.OrgID == orgID && item.RoundID == roundID {
			out = append(out, cloneGame(item))
		}
	}
	sortGames(out)
	return out, nil
}

func (r *GameRepository) ListByRounds(_ context.Context, orgID string, roundIDs []string) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[string]struct{}, len(roundIDs))
	for _, roundID := range roundIDs {
		wanted[roundID] = struct{}{}
	}

	out := make([]game.Game, 0)
	for _, item := range r.items {
		if item.OrgID != orgID {
			continue
		}
		if _, ok := wanted[item.RoundID]; ok {
			out = append(out, cloneGame(item))
		}
	}
	sortGames(out)
	return out, nil
}

func (r *GameRepository) Create(_ context.Context, orgID string, items []game.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		key := orgKey(orgID, item.ID)
		if _, exists := r.items[key]; exists {
			return fmt.Errorf("game %s already exists", item.ID)
		}
		r.items[key] = cloneGame(item)
	}
	return nil
}

func (r *GameRepository) UpdateStatus(_ context.Context, orgID string, item game.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := orgKey(orgID, item.ID)
	existing, ok := r.items[key]
	if !ok {
		return fmt.Errorf("game %s not found", item.ID)
	}
	existing.Status = item.Status
	existing.HomeScore = cloneIntPtr(item.HomeScore)
	existing.AwayScore = cloneIntPtr(item.AwayScore)
	existing.FinalizedAt = item.FinalizedAt
	r.items[key] = existing
	return nil
}

func (r *GameRepository) UpdateScores(_ context.Context, orgID, gameID string, homeScore, awayScore *int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := orgKey(orgID, gameID)
	existing, ok := r.items[key]
	if !ok {
		return fmt.Errorf("game %s not found", gameID)
	}
	existing.HomeScore = cloneIntPtr(homeScore)
	existing.AwayScore = cloneIntPtr(awayScore)
	r.items[key] = existing
	return nil
}

func sortGames(items []game.Game) {
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
}

func cloneGame(g game.Game) game.Game {
	copied := g
	copied.HomeScore = cloneIntPtr(g.HomeScore)
	copied.AwayScore = cloneIntPtr(g.AwayScore)
	return copied
}

func cloneIntPtr(v *int) *int {
	if v == nil {
		return nil
	}
	copied := *v
	return &copied
}

func cloneStringPtr(v *string) *string {
	if v == nil {
		return nil
	}
	copied := *v
	return &copied
}
