package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/hanakm/rinkleague/internal/domain/season"
)

type SeasonRepository struct {
	mu    sync.RWMutex
	items map[string]season.Season
}

func NewSeasonRepository(seasons []season.Season) *SeasonRepository {
	items := make(map[string]season.Season, len(seasons))
	for _, item := range seasons {
		items[orgKey(item.OrgID, item.ID)] = item
	}
	return &SeasonRepository{items: items}
}

func (r *SeasonRepository) GetByID(_ context.Context, orgID, seasonID string) (season.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[orgKey(orgID, seasonID)]
	return item, ok, nil
}

func (r *SeasonRepository) ListByOrg(_ context.Context, orgID string) ([]season.Season, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]season.Season, 0)
	for _, item := range r.items {
		if item.OrgID == orgID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func orgKey(orgID, id string) string {
	return orgID + "::" + id
}
