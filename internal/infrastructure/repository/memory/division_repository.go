package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/hanakm/rinkleague/internal/domain/division"
)

type DivisionRepository struct {
	mu    sync.RWMutex
	items map[string]division.Division
}

func NewDivisionRepository(divisions []division.Division) *DivisionRepository {
	items := make(map[string]division.Division, len(divisions))
	for _, item := range divisions {
		items[orgKey(item.OrgID, item.ID)] = item
	}
	return &DivisionRepository{items: items}
}

func (r *DivisionRepository) GetByID(_ context.Context, orgID, divisionID string) (division.Division, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[orgKey(orgID, divisionID)]
	return item, ok, nil
}

func (r *DivisionRepository) ListBySeason(_ context.Context, orgID, seasonID string) ([]division.Division, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]division.Division, 0)
	for _, item := range r.items {
		if item.OrgID == orgID && item.SeasonID == seasonID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
