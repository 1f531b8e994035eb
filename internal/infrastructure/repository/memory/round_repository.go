package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/hanakm/rinkleague/internal/domain/division"
	"github.com/hanakm/rinkleague/internal/domain/round"
)

// RoundRepository resolves season scope through the divisions it was seeded
// with, mirroring the round -> division -> season join of the SQL layer.
type RoundRepository struct {
	mu               sync.RWMutex
	items            map[string]round.Round
	seasonByDivision map[string]string
}

func NewRoundRepository(rounds []round.Round, divisions []division.Division) *RoundRepository {
	items := make(map[string]round.Round, len(rounds))
	for _, item := range rounds {
		items[orgKey(item.OrgID, item.ID)] = item
	}
	seasonByDivision := make(map[string]string, len(divisions))
	for _, item := range divisions {
		seasonByDivision[orgKey(item.OrgID, item.ID)] = item.SeasonID
	}
	return &RoundRepository{items: items, seasonByDivision: seasonByDivision}
}

func (r *RoundRepository) GetByID(_ context.Context, orgID, roundID string) (round.Round, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[orgKey(orgID, roundID)]
	return item, ok, nil
}

func (r *RoundRepository) ListByDivision(_ context.Context, orgID, divisionID string) ([]round.Round, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]round.Round, 0)
	for _, item := range r.items {
		if item.OrgID == orgID && item.DivisionID == divisionID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *RoundRepository) ListBySeason(_ context.Context, orgID, seasonID string) ([]round.Round, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]round.Round, 0)
	for _, item := range r.items {
		if item.OrgID != orgID {
			continue
		}
		if r.seasonByDivision[orgKey(orgID, item.DivisionID)] == seasonID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *RoundRepository) Update(_ context.Context, orgID string, item round.Round) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[orgKey(orgID, item.ID)] = item
	return nil
}
