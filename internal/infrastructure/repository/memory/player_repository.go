package memory

import (
	"context"
	"sync"

	"github.com/hanakm/rinkleague/internal/domain/player"
)

type PlayerRepository struct {
	mu    sync.RWMutex
	items map[string]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	items := make(map[string]player.Player, len(players))
	for _, item := range players {
		items[orgKey(item.OrgID, item.ID)] = item
	}
	return &PlayerRepository{items: items}
}

func (r *PlayerRepository) GetByID(_ context.Context, orgID, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[orgKey(orgID, playerID)]
	return item, ok, nil
}

func (r *PlayerRepository) ListByIDs(_ context.Context, orgID string, playerIDs []string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(playerIDs))
	for _, playerID := range playerIDs {
		if item, ok := r.items[orgKey(orgID, playerID)]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}
