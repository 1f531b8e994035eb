package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/hanakm/rinkleague/internal/domain/game"
)

type LineupRepository struct {
	mu    sync.RWMutex
	items map[string]game.LineupEntry
}

func NewLineupRepository(entries []game.LineupEntry) *LineupRepository {
	items := make(map[string]game.LineupEntry, len(entries))
	for _, item := range entries {
		items[orgKey(item.OrgID, item.ID)] = item
	}
	return &LineupRepository{items: items}
}

func (r *LineupRepository) ListByGame(_ context.Context, orgID, gameID string) ([]game.LineupEntry, error) {
	return r.list(orgID, func(item game.LineupEntry) bool { return item.GameID == gameID })
}

func (r *LineupRepository) ListByGames(_ context.Context, orgID string, gameIDs []string) ([]game.LineupEntry, error) {
	wanted := make(map[string]struct{}, len(gameIDs))
	for _, gameID := range gameIDs {
		wanted[gameID] = struct{}{}
	}
	return r.list(orgID, func(item game.LineupEntry) bool {
		_, ok := wanted[item.GameID]
		return ok
	})
}

func (r *LineupRepository) ReplaceByGameAndTeam(_ context.Context, orgID, gameID, teamID string, entries []game.LineupEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, item := range r.items {
		if item.OrgID == orgID && item.GameID == gameID && item.TeamID == teamID {
			delete(r.items, key)
		}
	}
	for _, item := range entries {
		r.items[orgKey(orgID, item.ID)] = item
	}
	return nil
}

func (r *LineupRepository) list(orgID string, match func(game.LineupEntry) bool) ([]game.LineupEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.LineupEntry, 0)
	for _, item := range r.items {
		if item.OrgID == orgID && match(item) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
