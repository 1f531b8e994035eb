package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hanakm/rinkleague/internal/domain/game"
	"github.com/hanakm/rinkleague/internal/domain/round"
	"github.com/hanakm/rinkleague/internal/domain/season"
	"github.com/hanakm/rinkleague/internal/domain/seasonstats"
	"github.com/hanakm/rinkleague/internal/platform/cache"
)

// PenaltyStatsService computes penalty-minute breakdowns on demand; nothing
// is persisted, so no recalculation trigger exists. Scope reuses the
// player-stats eligibility flag. Results are briefly cached since the
// computation walks every eligible game.
type PenaltyStatsService struct {
	seasonRepo season.Repository
	roundRepo  round.Repository
	gameRepo   game.Repository
	eventRepo  game.EventRepository
	cache      *cache.Store
}

func NewPenaltyStatsService(
	seasonRepo season.Repository,
	roundRepo round.Repository,
	gameRepo game.Repository,
	eventRepo game.EventRepository,
	store *cache.Store,
) *PenaltyStatsService {
	return &PenaltyStatsService{
		seasonRepo: seasonRepo,
		roundRepo:  roundRepo,
		gameRepo:   gameRepo,
		eventRepo:  eventRepo,
		cache:      store,
	}
}

// PlayerPenalties aggregates penalty events per (player, team), optionally
// filtered to one team, ordered by total minutes.
func (s *PenaltyStatsService) PlayerPenalties(ctx context.Context, orgID, seasonID, teamID string) ([]seasonstats.PlayerPenaltySummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PenaltyStatsService.PlayerPenalties")
	defer span.End()

	events, err := s.eligiblePenaltyEvents(ctx, orgID, seasonID, teamID)
	if err != nil {
		return nil, err
	}

	byKey := make(map[string]*seasonstats.PlayerPenaltySummary)
	typesByKey := make(map[string]map[string]*seasonstats.PenaltyTypeBreakdown)
	order := make([]string, 0)

	for _, event := range events {
		if event.PenaltyPlayerID == nil {
			continue
		}
		key := *event.PenaltyPlayerID + "|" + event.TeamID
		item, ok := byKey[key]
		if !ok {
			item = &seasonstats.PlayerPenaltySummary{PlayerID: *event.PenaltyPlayerID, TeamID: event.TeamID}
			byKey[key] = item
			typesByKey[key] = make(map[string]*seasonstats.PenaltyTypeBreakdown)
			order = append(order, key)
		}
		item.Count++
		item.TotalMinutes += event.PenaltyMinutes
		accumulateType(typesByKey[key], event)
	}

	sort.Strings(order)
	out := make([]seasonstats.PlayerPenaltySummary, 0, len(order))
	for _, key := range order {
		item := byKey[key]
		item.ByType = sortedBreakdown(typesByKey[key])
		out = append(out, *item)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalMinutes > out[j].TotalMinutes })

	return out, nil
}

// TeamPenalties aggregates the same events per team.
func (s *PenaltyStatsService) TeamPenalties(ctx context.Context, orgID, seasonID string) ([]seasonstats.TeamPenaltySummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PenaltyStatsService.TeamPenalties")
	defer span.End()

	events, err := s.eligiblePenaltyEvents(ctx, orgID, seasonID, "")
	if err != nil {
		return nil, err
	}

	byTeam := make(map[string]*seasonstats.TeamPenaltySummary)
	typesByTeam := make(map[string]map[string]*seasonstats.PenaltyTypeBreakdown)
	order := make([]string, 0)

	for _, event := range events {
		item, ok := byTeam[event.TeamID]
		if !ok {
			item = &seasonstats.TeamPenaltySummary{TeamID: event.TeamID}
			byTeam[event.TeamID] = item
			typesByTeam[event.TeamID] = make(map[string]*seasonstats.PenaltyTypeBreakdown)
			order = append(order, event.TeamID)
		}
		item.Count++
		item.TotalMinutes += event.PenaltyMinutes
		accumulateType(typesByTeam[event.TeamID], event)
	}

	sort.Strings(order)
	out := make([]seasonstats.TeamPenaltySummary, 0, len(order))
	for _, teamID := range order {
		item := byTeam[teamID]
		item.ByType = sortedBreakdown(typesByTeam[teamID])
		out = append(out, *item)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalMinutes > out[j].TotalMinutes })

	return out, nil
}

// Invalidate drops the cached event set for a season, called by the game
// lifecycle when completions change the eligible scope.
func (s *PenaltyStatsService) Invalidate(ctx context.Context, orgID, seasonID string) {
	if s.cache == nil {
		return
	}
	s.cache.Delete(ctx, fmt.Sprintf("penalties:%s:%s", orgID, seasonID))
}

func (s *PenaltyStatsService) eligiblePenaltyEvents(ctx context.Context, orgID, seasonID, teamID string) ([]game.Event, error) {
	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return nil, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}
	if _, ok, err := s.seasonRepo.GetByID(ctx, orgID, seasonID); err != nil {
		return nil, fmt.Errorf("get season: %w", err)
	} else if !ok {
		return nil, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}

	load := func() (any, error) {
		games, err := eligibleSeasonGames(ctx, s.roundRepo, s.gameRepo, orgID, seasonID,
			func(r round.Round) bool { return r.CountsForPlayerStats })
		if err != nil {
			return nil, err
		}
		if len(games) == 0 {
			return []game.Event(nil), nil
		}

		events, err := s.eventRepo.ListByGames(ctx, orgID, gameIDs(games))
		if err != nil {
			return nil, fmt.Errorf("list events by games: %w", err)
		}

		penalties := make([]game.Event, 0, len(events))
		for _, event := range events {
			if event.IsPenalty() {
				penalties = append(penalties, event)
			}
		}
		return penalties, nil
	}

	var events []game.Event
	if s.cache != nil {
		key := fmt.Sprintf("penalties:%s:%s", orgID, seasonID)
		cached, err := s.cache.GetOrLoad(ctx, key, load)
		if err != nil {
			return nil, err
		}
		events, _ = cached.([]game.Event)
	} else {
		loaded, err := load()
		if err != nil {
			return nil, err
		}
		events, _ = loaded.([]game.Event)
	}

	if teamID = strings.TrimSpace(teamID); teamID != "" {
		filtered := make([]game.Event, 0, len(events))
		for _, event := range events {
			if event.TeamID == teamID {
				filtered = append(filtered, event)
			}
		}
		events = filtered
	}

	return events, nil
}

func accumulateType(byType map[string]*seasonstats.PenaltyTypeBreakdown, event game.Event) {
	typeID := seasonstats.UnknownPenaltyType
	if event.PenaltyTypeID != nil && strings.TrimSpace(*event.PenaltyTypeID) != "" {
		typeID = *event.PenaltyTypeID
	}
	item, ok := byType[typeID]
	if !ok {
		item = &seasonstats.PenaltyTypeBreakdown{PenaltyTypeID: typeID}
		byType[typeID] = item
	}
	item.Count++
	item.Minutes += event.PenaltyMinutes
}

func sortedBreakdown(byType map[string]*seasonstats.PenaltyTypeBreakdown) []seasonstats.PenaltyTypeBreakdown {
	out := make([]seasonstats.PenaltyTypeBreakdown, 0, len(byType))
	for _, item := range byType {
		out = append(out, *item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Minutes != out[j].Minutes {
			return out[i].Minutes > out[j].Minutes
		}
		return out[i].PenaltyTypeID < out[j].PenaltyTypeID
	})
	return out
}
