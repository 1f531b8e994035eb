package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/hanakm/rinkleague/internal/domain/game"
)

type SuspensionRepository struct {
	mu    sync.RWMutex
	items map[string]game.Suspension
}

func NewSuspensionRepository(suspensions []game.Suspension) *SuspensionRepository {
	items := make(map[string]game.Suspension, len(suspensions))
	for _, item := range suspensions {
		items[orgKey(item.OrgID, item.ID)] = item
	}
	return &SuspensionRepository{items: items}
}

func (r *SuspensionRepository) ListByTeams(_ context.Context, orgID string, teamIDs []string) ([]game.Suspension, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[string]struct{}, len(teamIDs))
	for _, teamID := range teamIDs {
		wanted[teamID] = struct{}{}
	}

	out := make([]game.Suspension, 0)
	for _, item := range r.items {
		if item.OrgID != orgID {
			continue
		}
		if _, ok := wanted[item.TeamID]; ok {
			out = append(out, cloneSuspension(item))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *SuspensionRepository) Create(_ context.Context, orgID string, item game.Suspension) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := orgKey(orgID, item.ID)
	if _, exists := r.items[key]; exists {
		return fmt.Errorf("suspension %s already exists", item.ID)
	}
	r.items[key] = cloneSuspension(item)
	return nil
}

func (r *SuspensionRepository) AdjustServed(_ context.Context, orgID string, suspensionIDs []string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, suspensionID := range suspensionIDs {
		key := orgKey(orgID, suspensionID)
		item, ok := r.items[key]
		if !ok {
			continue
		}
		item.ServedGames += delta
		if item.ServedGames < 0 {
			item.ServedGames = 0
		}
		r.items[key] = item
	}
	return nil
}

func (r *SuspensionRepository) DeleteByOriginEvent(_ context.Context, orgID, eventID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, item := range r.items {
		if item.OrgID == orgID && item.OriginEventID != nil && *item.OriginEventID == eventID {
			delete(r.items, key)
		}
	}
	return nil
}

func cloneSuspension(s game.Suspension) game.Suspension {
	copied := s
	copied.OriginGameID = cloneStringPtr(s.OriginGameID)
	copied.OriginEventID = cloneStringPtr(s.OriginEventID)
	return copied
}
