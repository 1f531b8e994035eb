package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hanakm/rinkleague/internal/domain/division"
	"github.com/hanakm/rinkleague/internal/domain/game"
	"github.com/hanakm/rinkleague/internal/domain/round"
	"github.com/hanakm/rinkleague/internal/domain/season"
	"github.com/hanakm/rinkleague/internal/domain/seasonstats"
)

// GoalieLeaderboard splits season goalie rows at the division minimum-games
// threshold. Qualified rows are ranked best average first; the rest are
// listed without significant order.
type GoalieLeaderboard struct {
	MinGames       int
	Qualified      []seasonstats.GoalieSeasonStat
	BelowThreshold []seasonstats.GoalieSeasonStat
}

// GoalieStatsService maintains per-game goalie rows written at completion
// time and the season aggregate derived from them.
type GoalieStatsService struct {
	seasonRepo   season.Repository
	divisionRepo division.Repository
	roundRepo    round.Repository
	gameRepo     game.Repository
	eventRepo    game.EventRepository
	lineupRepo   game.LineupRepository
	gameStatRepo seasonstats.GoalieGameStatRepository
	statRepo     seasonstats.GoalieStatRepository
}

func NewGoalieStatsService(
	seasonRepo season.Repository,
	divisionRepo division.Repository,
	roundRepo round.Repository,
	gameRepo game.Repository,
	eventRepo game.EventRepository,
	lineupRepo game.LineupRepository,
	gameStatRepo seasonstats.GoalieGameStatRepository,
	statRepo seasonstats.GoalieStatRepository,
) *GoalieStatsService {
	return &GoalieStatsService{
		seasonRepo:   seasonRepo,
		divisionRepo: divisionRepo,
		roundRepo:    roundRepo,
		gameRepo:     gameRepo,
		eventRepo:    eventRepo,
		lineupRepo:   lineupRepo,
		gameStatRepo: gameStatRepo,
		statRepo:     statRepo,
	}
}

// GenerateGameStats rewrites the game's goalie rows from its current lineups
// and goal events: one row per starting goalie, goals-against taken from the
// opposing team's goal count. Safe to call on every re-completion.
func (s *GoalieStatsService) GenerateGameStats(ctx context.Context, orgID string, g game.Game) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.GoalieStatsService.GenerateGameStats")
	defer span.End()

	lineups, err := s.lineupRepo.ListByGame(ctx, orgID, g.ID)
	if err != nil {
		return fmt.Errorf("list lineups by game: %w", err)
	}
	events, err := s.eventRepo.ListByGame(ctx, orgID, g.ID)
	if err != nil {
		return fmt.Errorf("list events by game: %w", err)
	}

	rows := buildGoalieGameStats(g, lineups, events)
	for i := range rows {
		rows[i].OrgID = orgID
	}

	if err := s.gameStatRepo.ReplaceByGame(ctx, orgID, g.ID, rows); err != nil {
		return fmt.Errorf("replace goalie game stats: %w", err)
	}

	return nil
}

// ClearGameStats drops the game's goalie rows, used when a completed game is
// reopened and no longer counts anywhere.
func (s *GoalieStatsService) ClearGameStats(ctx context.Context, orgID, gameID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.GoalieStatsService.ClearGameStats")
	defer span.End()

	if err := s.gameStatRepo.DeleteByGame(ctx, orgID, gameID); err != nil {
		return fmt.Errorf("delete goalie game stats: %w", err)
	}
	return nil
}

// BackfillGameStats constructs missing goalie game rows for already-completed
// eligible games, a repair path for historical data imported before the rows
// existed. Games that already have rows are left untouched.
func (s *GoalieStatsService) BackfillGameStats(ctx context.Context, orgID, seasonID string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GoalieStatsService.BackfillGameStats")
	defer span.End()

	games, err := s.eligibleGames(ctx, orgID, seasonID)
	if err != nil {
		return 0, err
	}
	if len(games) == 0 {
		return 0, nil
	}

	existing, err := s.gameStatRepo.ListByGames(ctx, orgID, gameIDs(games))
	if err != nil {
		return 0, fmt.Errorf("list goalie game stats: %w", err)
	}
	hasRows := make(map[string]struct{}, len(existing))
	for _, row := range existing {
		hasRows[row.GameID] = struct{}{}
	}

	backfilled := 0
	for _, g := range games {
		if _, ok := hasRows[g.ID]; ok {
			continue
		}
		if err := s.GenerateGameStats(ctx, orgID, g); err != nil {
			return backfilled, err
		}
		backfilled++
	}

	return backfilled, nil
}

// RecalculateSeason rebuilds every GoalieSeasonStat row from the goalie game
// rows of eligible completed games. A goalie with no games gets no row, so a
// zero games-played division never occurs.
func (s *GoalieStatsService) RecalculateSeason(ctx context.Context, orgID, seasonID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.GoalieStatsService.RecalculateSeason")
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

	games, err := s.eligibleGames(ctx, orgID, seasonID)
	if err != nil {
		return err
	}

	var gameStats []seasonstats.GoalieGameStat
	if len(games) > 0 {
		gameStats, err = s.gameStatRepo.ListByGames(ctx, orgID, gameIDs(games))
		if err != nil {
			return fmt.Errorf("list goalie game stats: %w", err)
		}
	}

	rows := buildGoalieSeasonStats(seasonID, gameStats)
	for i := range rows {
		rows[i].OrgID = orgID
	}

	if err := s.statRepo.ReplaceBySeason(ctx, orgID, seasonID, rows); err != nil {
		return fmt.Errorf("replace goalie season stats: %w", err)
	}

	return nil
}

// Leaderboard applies the qualification threshold at read time. When the
// season's divisions disagree on goalie_min_games the minimum wins; that
// choice is deliberate and documented, not an accident.
func (s *GoalieStatsService) Leaderboard(ctx context.Context, orgID, seasonID string) (GoalieLeaderboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GoalieStatsService.Leaderboard")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return GoalieLeaderboard{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	divisions, err := s.divisionRepo.ListBySeason(ctx, orgID, seasonID)
	if err != nil {
		return GoalieLeaderboard{}, fmt.Errorf("list divisions by season: %w", err)
	}
	minGames := division.DefaultGoalieMinGames
	for i, d := range divisions {
		if i == 0 || d.MinGamesOrDefault() < minGames {
			minGames = d.MinGamesOrDefault()
		}
	}

	rows, err := s.statRepo.ListBySeason(ctx, orgID, seasonID)
	if err != nil {
		return GoalieLeaderboard{}, fmt.Errorf("list goalie season stats: %w", err)
	}

	board := GoalieLeaderboard{MinGames: minGames}
	for _, row := range rows {
		if row.GamesPlayed >= minGames {
			board.Qualified = append(board.Qualified, row)
		} else {
			board.BelowThreshold = append(board.BelowThreshold, row)
		}
	}
	sort.SliceStable(board.Qualified, func(i, j int) bool {
		a, b := board.Qualified[i], board.Qualified[j]
		if a.GAAHundredths != b.GAAHundredths {
			return a.GAAHundredths < b.GAAHundredths
		}
		return a.GamesPlayed > b.GamesPlayed
	})

	return board, nil
}

func (s *GoalieStatsService) eligibleGames(ctx context.Context, orgID, seasonID string) ([]game.Game, error) {
	return eligibleSeasonGames(ctx, s.roundRepo, s.gameRepo, orgID, seasonID,
		func(r round.Round) bool { return r.CountsForGoalieStats })
}

func buildGoalieGameStats(g game.Game, lineups []game.LineupEntry, events []game.Event) []seasonstats.GoalieGameStat {
	goalsByTeam := make(map[string]int)
	for _, event := range events {
		if event.IsGoal() {
			goalsByTeam[event.TeamID]++
		}
	}

	rows := make([]seasonstats.GoalieGameStat, 0, 2)
	for _, entry := range lineups {
		if !entry.IsStartingGoalie {
			continue
		}
		opponent := g.AwayTeamID
		if entry.TeamID == g.AwayTeamID {
			opponent = g.HomeTeamID
		}
		rows = append(rows, seasonstats.GoalieGameStat{
			GameID:       g.ID,
			PlayerID:     entry.PlayerID,
			TeamID:       entry.TeamID,
			GoalsAgainst: goalsByTeam[opponent],
		})
	}

	return rows
}

func buildGoalieSeasonStats(seasonID string, gameStats []seasonstats.GoalieGameStat) []seasonstats.GoalieSeasonStat {
	byKey := make(map[string]*seasonstats.GoalieSeasonStat)
	order := make([]string, 0)

	for _, stat := range gameStats {
		key := stat.PlayerID + "|" + stat.TeamID
		item, ok := byKey[key]
		if !ok {
			item = &seasonstats.GoalieSeasonStat{SeasonID: seasonID, PlayerID: stat.PlayerID, TeamID: stat.TeamID}
			byKey[key] = item
			order = append(order, key)
		}
		item.GamesPlayed++
		item.GoalsAgainst += stat.GoalsAgainst
	}

	sort.Strings(order)
	rows := make([]seasonstats.GoalieSeasonStat, 0, len(order))
	for _, key := range order {
		item := byKey[key]
		item.GAAHundredths = seasonstats.GAAHundredths(item.GoalsAgainst, item.GamesPlayed)
		rows = append(rows, *item)
	}

	return rows
}
