package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hanakm/rinkleague/internal/domain/contract"
	"github.com/hanakm/rinkleague/internal/domain/game"
	"github.com/hanakm/rinkleague/internal/domain/round"
	"github.com/hanakm/rinkleague/internal/domain/season"
	"github.com/hanakm/rinkleague/internal/domain/seasonstats"
)

// PlayerStatsService derives per-player season totals from goal and penalty
// events in eligible completed games. Rows are keyed (player, season, team);
// a mid-season transfer yields one row per team.
type PlayerStatsService struct {
	seasonRepo   season.Repository
	roundRepo    round.Repository
	gameRepo     game.Repository
	eventRepo    game.EventRepository
	lineupRepo   game.LineupRepository
	contractRepo contract.Repository
	statRepo     seasonstats.PlayerStatRepository
}

func NewPlayerStatsService(
	seasonRepo season.Repository,
	roundRepo round.Repository,
	gameRepo game.Repository,
	eventRepo game.EventRepository,
	lineupRepo game.LineupRepository,
	contractRepo contract.Repository,
	statRepo seasonstats.PlayerStatRepository,
) *PlayerStatsService {
	return &PlayerStatsService{
		seasonRepo:   seasonRepo,
		roundRepo:    roundRepo,
		gameRepo:     gameRepo,
		eventRepo:    eventRepo,
		lineupRepo:   lineupRepo,
		contractRepo: contractRepo,
		statRepo:     statRepo,
	}
}

// RecalculateSeason rebuilds every PlayerSeasonStat row of the season from
// lineups and events. The scope is completed games in rounds whose
// counts_for_player_stats flag is on; toggling that flag re-runs this and
// the round's contribution appears or disappears wholesale.
func (s *PlayerStatsService) RecalculateSeason(ctx context.Context, orgID, seasonID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerStatsService.RecalculateSeason")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}
	if _, ok, err := s.seasonRepo.GetByID(ctx, orgID, seasonID); err != nil {
		return fmt.Errorf("get season: %w", err)
	} else if !ok {
		return fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}

	games, err := eligibleSeasonGames(ctx, s.roundRepo, s.gameRepo, orgID, seasonID,
		func(r round.Round) bool { return r.CountsForPlayerStats })
	if err != nil {
		return err
	}

	var lineups []game.LineupEntry
	var events []game.Event
	if len(games) > 0 {
		ids := gameIDs(games)
		lineups, err = s.lineupRepo.ListByGames(ctx, orgID, ids)
		if err != nil {
			return fmt.Errorf("list lineups by games: %w", err)
		}
		events, err = s.eventRepo.ListByGames(ctx, orgID, ids)
		if err != nil {
			return fmt.Errorf("list events by games: %w", err)
		}
	}

	rows := buildPlayerSeasonStats(seasonID, lineups, events)
	for i := range rows {
		rows[i].OrgID = orgID
	}

	if err := s.statRepo.ReplaceBySeason(ctx, orgID, seasonID, rows); err != nil {
		return fmt.Errorf("replace player season stats: %w", err)
	}

	return nil
}

// ListBySeason returns the stored season rows in presentation order, filtered
// to one contract position when requested. Position is looked up through the
// (player, team) contract at query time; stat rows store none.
func (s *PlayerStatsService) ListBySeason(ctx context.Context, orgID, seasonID, position string) ([]seasonstats.PlayerSeasonStat, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerStatsService.ListBySeason")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return nil, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}
	if position != "" {
		if contract.NormalizePosition(position) == "" {
			return nil, fmt.Errorf("%w: unknown position %q", ErrInvalidInput, position)
		}
		position = contract.NormalizePosition(position)
	}

	rows, err := s.statRepo.ListBySeason(ctx, orgID, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list player season stats: %w", err)
	}

	if position != "" {
		teamIDs := make([]string, 0, len(rows))
		seen := make(map[string]struct{})
		for _, row := range rows {
			if _, ok := seen[row.TeamID]; ok {
				continue
			}
			seen[row.TeamID] = struct{}{}
			teamIDs = append(teamIDs, row.TeamID)
		}

		contracts, err := s.contractRepo.ListByTeams(ctx, orgID, teamIDs)
		if err != nil {
			return nil, fmt.Errorf("list contracts by teams: %w", err)
		}
		positionByPlayerTeam := make(map[string]string, len(contracts))
		for _, c := range contracts {
			positionByPlayerTeam[c.PlayerID+"|"+c.TeamID] = contract.NormalizePosition(c.Position)
		}

		filtered := rows[:0]
		for _, row := range rows {
			if positionByPlayerTeam[row.PlayerID+"|"+row.TeamID] == position {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.TotalPoints != b.TotalPoints {
			return a.TotalPoints > b.TotalPoints
		}
		if a.Goals != b.Goals {
			return a.Goals > b.Goals
		}
		return a.Assists > b.Assists
	})

	return rows, nil
}

func buildPlayerSeasonStats(seasonID string, lineups []game.LineupEntry, events []game.Event) []seasonstats.PlayerSeasonStat {
	byKey := make(map[string]*seasonstats.PlayerSeasonStat)
	order := make([]string, 0)

	row := func(playerID, teamID string) *seasonstats.PlayerSeasonStat {
		key := playerID + "|" + teamID
		if existing, ok := byKey[key]; ok {
			return existing
		}
		created := &seasonstats.PlayerSeasonStat{SeasonID: seasonID, PlayerID: playerID, TeamID: teamID}
		byKey[key] = created
		order = append(order, key)
		return created
	}

	for _, entry := range lineups {
		row(entry.PlayerID, entry.TeamID).GamesPlayed++
	}

	for _, event := range events {
		switch {
		case event.IsGoal():
			if event.ScorerID != nil {
				row(*event.ScorerID, event.TeamID).Goals++
			}
			if event.Assist1ID != nil {
				row(*event.Assist1ID, event.TeamID).Assists++
			}
			if event.Assist2ID != nil {
				row(*event.Assist2ID, event.TeamID).Assists++
			}
		case event.IsPenalty():
			if event.PenaltyPlayerID != nil {
				row(*event.PenaltyPlayerID, event.TeamID).PenaltyMinutes += event.PenaltyMinutes
			}
		}
	}

	sort.Strings(order)
	rows := make([]seasonstats.PlayerSeasonStat, 0, len(order))
	for _, key := range order {
		item := byKey[key]
		item.TotalPoints = item.Goals + item.Assists
		rows = append(rows, *item)
	}

	return rows
}
