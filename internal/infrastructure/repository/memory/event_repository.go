package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/hanakm/rinkleague/internal/domain/game"
)

type EventRepository struct {
	mu    sync.RWMutex
	items map[string]game.Event
}

func NewEventRepository(events []game.Event) *EventRepository {
	items := make(map[string]game.Event, len(events))
	for _, item := range events {
		items[orgKey(item.OrgID, item.ID)] = item
	}
	return &EventRepository{items: items}
}

func (r *EventRepository) GetByID(_ context.Context, orgID, eventID string) (game.Event, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[orgKey(orgID, eventID)]
	return cloneEvent(item), ok, nil
}

func (r *EventRepository) ListByGame(_ context.Context, orgID, gameID string) ([]game.Event, error) {
	return r.list(orgID, func(item game.Event) bool { return item.GameID == gameID })
}

func (r *EventRepository) ListByGames(_ context.Context, orgID string, gameIDs []string) ([]game.Event, error) {
	wanted := make(map[string]struct{}, len(gameIDs))
	for _, gameID := range gameIDs {
		wanted[gameID] = struct{}{}
	}
	return r.list(orgID, func(item game.Event) bool {
		_, ok := wanted[item.GameID]
		return ok
	})
}

func (r *EventRepository) Create(_ context.Context, orgID string, item game.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := orgKey(orgID, item.ID)
	if _, exists := r.items[key]; exists {
		return fmt.Errorf("event %s already exists", item.ID)
	}
	r.items[key] = cloneEvent(item)
	return nil
}

func (r *EventRepository) Update(_ context.Context, orgID string, item game.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := orgKey(orgID, item.ID)
	if _, ok := r.items[key]; !ok {
		return fmt.Errorf("event %s not found", item.ID)
	}
	r.items[key] = cloneEvent(item)
	return nil
}

func (r *EventRepository) Delete(_ context.Context, orgID, eventID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, orgKey(orgID, eventID))
	return nil
}

func (r *EventRepository) DeleteByGame(_ context.Context, orgID, gameID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, item := range r.items {
		if item.OrgID == orgID && item.GameID == gameID {
			delete(r.items, key)
		}
	}
	return nil
}

func (r *EventRepository) list(orgID string, match func(game.Event) bool) ([]game.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Event, 0)
	for _, item := range r.items {
		if item.OrgID == orgID && match(item) {
			out = append(out, cloneEvent(item))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func cloneEvent(e game.Event) game.Event {
	copied := e
	copied.ScorerID = cloneStringPtr(e.ScorerID)
	copied.Assist1ID = cloneStringPtr(e.Assist1ID)
	copied.Assist2ID = cloneStringPtr(e.Assist2ID)
	copied.PenaltyPlayerID = cloneStringPtr(e.PenaltyPlayerID)
	copied.PenaltyTypeID = cloneStringPtr(e.PenaltyTypeID)
	return copied
}
