package cache

import (
	"context"

	"github.com/hanakm/rinkleague/internal/domain/division"
	"github.com/hanakm/rinkleague/internal/domain/round"
	"github.com/hanakm/rinkleague/internal/domain/season"
	basecache "github.com/hanakm/rinkleague/internal/platform/cache"
)

// Read-through decorators for the slow-moving reference tables. Cache keys
// carry the org ID so tenants never see each other's rows.

type SeasonRepository struct {
	next  season.Repository
	cache *basecache.Store
}

func NewSeasonRepository(next season.Repository, cache *basecache.Store) *SeasonRepository {
	return &SeasonRepository{next: next, cache: cache}
}

func (r *SeasonRepository) GetByID(ctx context.Context, orgID, seasonID string) (season.Season, bool, error) {
	key := "season:" + orgID + ":id:" + seasonID
	v, err := r.cache.GetOrLoad(ctx, key, func() (any, error) {
		item, exists, err := r.next.GetByID(ctx, orgID, seasonID)
		if err != nil {
			return nil, err
		}
		return cachedSeason{value: item, exists: exists}, nil
	})
	if err != nil {
		return season.Season{}, false, err
	}

	cached, _ := v.(cachedSeason)
	return cached.value, cached.exists, nil
}

func (r *SeasonRepository) ListByOrg(ctx context.Context, orgID string) ([]season.Season, error) {
	key := "season:" + orgID + ":list"
	v, err := r.cache.GetOrLoad(ctx, key, func() (any, error) {
		items, err := r.next.ListByOrg(ctx, orgID)
		if err != nil {
			return nil, err
		}
		return append([]season.Season(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]season.Season)
	return append([]season.Season(nil), items...), nil
}

type cachedSeason struct {
	value  season.Season
	exists bool
}

type DivisionRepository struct {
	next  division.Repository
	cache *basecache.Store
}

func NewDivisionRepository(next division.Repository, cache *basecache.Store) *DivisionRepository {
	return &DivisionRepository{next: next, cache: cache}
}

func (r *DivisionRepository) GetByID(ctx context.Context, orgID, divisionID string) (division.Division, bool, error) {
	key := "division:" + orgID + ":id:" + divisionID
	v, err := r.cache.GetOrLoad(ctx, key, func() (any, error) {
		item, exists, err := r.next.GetByID(ctx, orgID, divisionID)
		if err != nil {
			return nil, err
		}
		return cachedDivision{value: item, exists: exists}, nil
	})
	if err != nil {
		return division.Division{}, false, err
	}

	cached, _ := v.(cachedDivision)
	return cached.value, cached.exists, nil
}

func (r *DivisionRepository) ListBySeason(ctx context.Context, orgID, seasonID string) ([]division.Division, error) {
	key := "division:" + orgID + ":season:" + seasonID
	v, err := r.cache.GetOrLoad(ctx, key, func() (any, error) {
		items, err := r.next.ListBySeason(ctx, orgID, seasonID)
		if err != nil {
			return nil, err
		}
		return append([]division.Division(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]division.Division)
	return append([]division.Division(nil), items...), nil
}

type cachedDivision struct {
	value  division.Division
	exists bool
}

type RoundRepository struct {
	next  round.Repository
	cache *basecache.Store
}

func NewRoundRepository(next round.Repository, cache *basecache.Store) *RoundRepository {
	return &RoundRepository{next: next, cache: cache}
}

func (r *RoundRepository) GetByID(ctx context.Context, orgID, roundID string) (round.Round, bool, error) {
	key := "round:" + orgID + ":id:" + roundID
	v, err := r.cache.GetOrLoad(ctx, key, func() (any, error) {
		item, exists, err := r.next.GetByID(ctx, orgID, roundID)
		if err != nil {
			return nil, err
		}
		return cachedRound{value: item, exists: exists}, nil
	})
	if err != nil {
		return round.Round{}, false, err
	}

	cached, _ := v.(cachedRound)
	return cached.value, cached.exists, nil
}

func (r *RoundRepository) ListByDivision(ctx context.Context, orgID, divisionID string) ([]round.Round, error) {
	key := "round:" + orgID + ":division:" + divisionID
	v, err := r.cache.GetOrLoad(ctx, key, func() (any, error) {
		items, err := r.next.ListByDivision(ctx, orgID, divisionID)
		if err != nil {
			return nil, err
		}
		return append([]round.Round(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]round.Round)
	return append([]round.Round(nil), items...), nil
}

// ListBySeason stays uncached: rounds cannot name their season directly, so
// an Update could not invalidate the season-level key.
func (r *RoundRepository) ListBySeason(ctx context.Context, orgID, seasonID string) ([]round.Round, error) {
	return r.next.ListBySeason(ctx, orgID, seasonID)
}

func (r *RoundRepository) Update(ctx context.Context, orgID string, item round.Round) error {
	if err := r.next.Update(ctx, orgID, item); err != nil {
		return err
	}

	r.cache.Delete(ctx, "round:"+orgID+":id:"+item.ID)
	r.cache.Delete(ctx, "round:"+orgID+":division:"+item.DivisionID)

	return nil
}

type cachedRound struct {
	value  round.Round
	exists bool
}
