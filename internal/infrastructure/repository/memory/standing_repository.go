package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/hanakm/rinkleague/internal/domain/standing"
)

type StandingRepository struct {
	mu           sync.RWMutex
	itemsByRound map[string][]standing.Standing
}

func NewStandingRepository() *StandingRepository {
	return &StandingRepository{itemsByRound: make(map[string][]standing.Standing)}
}

func (r *StandingRepository) ListByRound(_ context.Context, orgID, roundID string) ([]standing.Standing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.itemsByRound[orgKey(orgID, roundID)]
	out := make([]standing.Standing, 0, len(items))
	for _, item := range items {
		out = append(out, cloneStanding(item))
	}
	return out, nil
}

func (r *StandingRepository) ReplaceByRound(_ context.Context, orgID, roundID string, items []standing.Standing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make([]standing.Standing, 0, len(items))
	for _, item := range items {
		stored = append(stored, cloneStanding(item))
	}
	r.itemsByRound[orgKey(orgID, roundID)] = stored
	return nil
}

func cloneStanding(s standing.Standing) standing.Standing {
	copied := s
	copied.PreviousRank = cloneIntPtr(s.PreviousRank)
	return copied
}

type BonusPointRepository struct {
	mu    sync.RWMutex
	items map[string]standing.BonusPoint
}

func NewBonusPointRepository(bonuses []standing.BonusPoint) *BonusPointRepository {
	items := make(map[string]standing.BonusPoint, len(bonuses))
	for _, item := range bonuses {
		items[orgKey(item.OrgID, item.ID)] = item
	}
	return &BonusPointRepository{items: items}
}

func (r *BonusPointRepository) GetByID(_ context.Context, orgID, bonusID string) (standing.BonusPoint, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[orgKey(orgID, bonusID)]
	return item, ok, nil
}

func (r *BonusPointRepository) ListByRound(_ context.Context, orgID, roundID string) ([]standing.BonusPoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]standing.BonusPoint, 0)
	for _, item := range r.items {
		if item.OrgID == orgID && item.RoundID == roundID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *BonusPointRepository) Create(_ context.Context, orgID string, item standing.BonusPoint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[orgKey(orgID, item.ID)] = item
	return nil
}

func (r *BonusPointRepository) Update(_ context.Context, orgID string, item standing.BonusPoint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[orgKey(orgID, item.ID)] = item
	return nil
}

func (r *BonusPointRepository) Delete(_ context.Context, orgID, bonusID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, orgKey(orgID, bonusID))
	return nil
}
