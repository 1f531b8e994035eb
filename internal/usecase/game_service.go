package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/hanakm/rinkleague/internal/domain/division"
	"github.com/hanakm/rinkleague/internal/domain/game"
	"github.com/hanakm/rinkleague/internal/domain/player"
	"github.com/hanakm/rinkleague/internal/domain/round"
	"github.com/hanakm/rinkleague/internal/platform/id"
	"github.com/hanakm/rinkleague/internal/platform/logging"
)

// GameService owns the game lifecycle and is the single place that triggers
// derived-table recalculation. Completing or reopening a game reruns the
// round standings and both season aggregates; editing events only rewrites
// the game's derived scores.
type GameService struct {
	roundRepo      round.Repository
	divisionRepo   division.Repository
	gameRepo       game.Repository
	eventRepo      game.EventRepository
	lineupRepo     game.LineupRepository
	suspensionRepo game.SuspensionRepository
	playerRepo     player.Repository
	standings      *StandingsService
	playerStats    *PlayerStatsService
	goalieStats    *GoalieStatsService
	penaltyStats   *PenaltyStatsService
	idGen          id.Generator
	logger         *logging.Logger
	now            func() time.Time
}

func NewGameService(
	roundRepo round.Repository,
	divisionRepo division.Repository,
	gameRepo game.Repository,
	eventRepo game.EventRepository,
	lineupRepo game.LineupRepository,
	suspensionRepo game.SuspensionRepository,
	playerRepo player.Repository,
	standings *StandingsService,
	playerStats *PlayerStatsService,
	goalieStats *GoalieStatsService,
	penaltyStats *PenaltyStatsService,
	idGen id.Generator,
	logger *logging.Logger,
) *GameService {
	if logger == nil {
		logger = logging.Default()
	}
	return &GameService{
		roundRepo:      roundRepo,
		divisionRepo:   divisionRepo,
		gameRepo:       gameRepo,
		eventRepo:      eventRepo,
		lineupRepo:     lineupRepo,
		suspensionRepo: suspensionRepo,
		playerRepo:     playerRepo,
		standings:      standings,
		playerStats:    playerStats,
		goalieStats:    goalieStats,
		penaltyStats:   penaltyStats,
		idGen:          idGen,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *GameService) GetByID(ctx context.Context, orgID, gameID string) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.GetByID")
	defer span.End()

	g, ok, err := s.gameRepo.GetByID(ctx, orgID, strings.TrimSpace(gameID))
	if err != nil {
		return game.Game{}, fmt.Errorf("get game: %w", err)
	}
	if !ok {
		return game.Game{}, fmt.Errorf("%w: game=%s", ErrNotFound, gameID)
	}
	return g, nil
}

// Complete transitions a game to completed and runs the full recalculation
// sequence. Both teams need at least one lineup entry; scores come from the
// goal events as they stand, a goalless report completes as 0-0.
func (s *GameService) Complete(ctx context.Context, orgID, gameID string) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.Complete")
	defer span.End()

	g, err := s.GetByID(ctx, orgID, gameID)
	if err != nil {
		return game.Game{}, err
	}
	if !g.IsEditable() {
		return game.Game{}, fmt.Errorf("%w: game %s is %s", ErrPreconditionFailed, g.ID, g.Status)
	}

	lineups, err := s.lineupRepo.ListByGame(ctx, orgID, g.ID)
	if err != nil {
		return game.Game{}, fmt.Errorf("list lineups by game: %w", err)
	}
	var homeEntries, awayEntries int
	for _, entry := range lineups {
		switch entry.TeamID {
		case g.HomeTeamID:
			homeEntries++
		case g.AwayTeamID:
			awayEntries++
		}
	}
	if homeEntries == 0 || awayEntries == 0 {
		return game.Game{}, fmt.Errorf("%w: both teams need a lineup before completion", ErrPreconditionFailed)
	}

	events, err := s.eventRepo.ListByGame(ctx, orgID, g.ID)
	if err != nil {
		return game.Game{}, fmt.Errorf("list events by game: %w", err)
	}
	homeScore, awayScore := countGoals(g, events)

	finalizedAt := s.now().UTC()
	g.Status = game.StatusCompleted
	g.HomeScore = &homeScore
	g.AwayScore = &awayScore
	g.FinalizedAt = &finalizedAt
	if err := s.gameRepo.UpdateStatus(ctx, orgID, g); err != nil {
		return game.Game{}, fmt.Errorf("update game status: %w", err)
	}

	if err := s.adjustSuspensions(ctx, orgID, g, +1); err != nil {
		return game.Game{}, err
	}
	if err := s.goalieStats.GenerateGameStats(ctx, orgID, g); err != nil {
		return game.Game{}, err
	}
	if err := s.recalculate(ctx, orgID, g.RoundID); err != nil {
		return game.Game{}, err
	}

	s.logger.InfoContext(ctx, "game completed",
		"game_id", g.ID, "round_id", g.RoundID, "home_score", homeScore, "away_score", awayScore)

	return g, nil
}

// Reopen reverts a completed game to scheduled, rolling back suspension
// serving and the goalie game rows, then reruns the same recalculations so
// the round and season no longer carry this game. Reopening a cancelled
// game only resets the status.
func (s *GameService) Reopen(ctx context.Context, orgID, gameID string) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.Reopen")
	defer span.End()

	g, err := s.GetByID(ctx, orgID, gameID)
	if err != nil {
		return game.Game{}, err
	}

	switch {
	case g.IsCancelled():
		g.Status = game.StatusScheduled
		if err := s.gameRepo.UpdateStatus(ctx, orgID, g); err != nil {
			return game.Game{}, fmt.Errorf("update game status: %w", err)
		}
		return g, nil
	case !g.IsCompleted():
		return game.Game{}, fmt.Errorf("%w: game %s is not completed", ErrPreconditionFailed, g.ID)
	}

	g.Status = game.StatusScheduled
	g.FinalizedAt = nil
	if err := s.gameRepo.UpdateStatus(ctx, orgID, g); err != nil {
		return game.Game{}, fmt.Errorf("update game status: %w", err)
	}

	if err := s.adjustSuspensions(ctx, orgID, g, -1); err != nil {
		return game.Game{}, err
	}
	if err := s.goalieStats.ClearGameStats(ctx, orgID, g.ID); err != nil {
		return game.Game{}, err
	}
	if err := s.recalculate(ctx, orgID, g.RoundID); err != nil {
		return game.Game{}, err
	}

	s.logger.InfoContext(ctx, "game reopened", "game_id", g.ID, "round_id", g.RoundID)

	return g, nil
}

// Cancel drops the report data of a never-completed game. Cancelled games
// were never aggregated, so nothing needs recalculating.
func (s *GameService) Cancel(ctx context.Context, orgID, gameID string) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.Cancel")
	defer span.End()

	g, err := s.GetByID(ctx, orgID, gameID)
	if err != nil {
		return game.Game{}, err
	}
	if !g.IsEditable() {
		return game.Game{}, fmt.Errorf("%w: game %s is %s", ErrPreconditionFailed, g.ID, g.Status)
	}

	// Suspensions linked to the game's penalty events go with those events.
	events, err := s.eventRepo.ListByGame(ctx, orgID, g.ID)
	if err != nil {
		return game.Game{}, fmt.Errorf("list events by game: %w", err)
	}
	for _, event := range events {
		if err := s.suspensionRepo.DeleteByOriginEvent(ctx, orgID, event.ID); err != nil {
			return game.Game{}, fmt.Errorf("delete suspension by origin event: %w", err)
		}
	}
	if err := s.eventRepo.DeleteByGame(ctx, orgID, g.ID); err != nil {
		return game.Game{}, fmt.Errorf("delete events by game: %w", err)
	}

	g.Status = game.StatusCancelled
	g.HomeScore = nil
	g.AwayScore = nil
	if err := s.gameRepo.UpdateStatus(ctx, orgID, g); err != nil {
		return game.Game{}, fmt.Errorf("update game status: %w", err)
	}

	return g, nil
}

// AddEvent records a goal or penalty on an editable game and refreshes the
// game's derived scores. Season aggregates stay untouched until completion.
func (s *GameService) AddEvent(ctx context.Context, orgID string, item game.Event) (game.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.AddEvent")
	defer span.End()

	g, err := s.editableGame(ctx, orgID, item.GameID)
	if err != nil {
		return game.Event{}, err
	}
	if err := validateEvent(g, item); err != nil {
		return game.Event{}, err
	}

	if item.ID == "" {
		newID, err := s.idGen.NewID()
		if err != nil {
			return game.Event{}, fmt.Errorf("generate event id: %w", err)
		}
		item.ID = newID
	}
	item.OrgID = orgID
	if err := s.eventRepo.Create(ctx, orgID, item); err != nil {
		return game.Event{}, fmt.Errorf("create event: %w", err)
	}

	if err := s.refreshScores(ctx, orgID, g); err != nil {
		return game.Event{}, err
	}

	return item, nil
}

func (s *GameService) UpdateEvent(ctx context.Context, orgID string, item game.Event) (game.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.UpdateEvent")
	defer span.End()

	existing, ok, err := s.eventRepo.GetByID(ctx, orgID, item.ID)
	if err != nil {
		return game.Event{}, fmt.Errorf("get event: %w", err)
	}
	if !ok {
		return game.Event{}, fmt.Errorf("%w: event=%s", ErrNotFound, item.ID)
	}

	g, err := s.editableGame(ctx, orgID, existing.GameID)
	if err != nil {
		return game.Event{}, err
	}

	item.GameID = existing.GameID
	item.OrgID = orgID
	if err := validateEvent(g, item); err != nil {
		return game.Event{}, err
	}
	if err := s.eventRepo.Update(ctx, orgID, item); err != nil {
		return game.Event{}, fmt.Errorf("update event: %w", err)
	}

	if err := s.refreshScores(ctx, orgID, g); err != nil {
		return game.Event{}, err
	}

	return item, nil
}

// DeleteEvent removes an event and any suspension that originated from it.
func (s *GameService) DeleteEvent(ctx context.Context, orgID, eventID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.DeleteEvent")
	defer span.End()

	existing, ok, err := s.eventRepo.GetByID(ctx, orgID, strings.TrimSpace(eventID))
	if err != nil {
		return fmt.Errorf("get event: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}

	g, err := s.editableGame(ctx, orgID, existing.GameID)
	if err != nil {
		return err
	}

	if err := s.suspensionRepo.DeleteByOriginEvent(ctx, orgID, existing.ID); err != nil {
		return fmt.Errorf("delete suspension by origin event: %w", err)
	}
	if err := s.eventRepo.Delete(ctx, orgID, existing.ID); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}

	return s.refreshScores(ctx, orgID, g)
}

// SetLineup replaces one team's lineup for an editable game.
func (s *GameService) SetLineup(ctx context.Context, orgID, gameID, teamID string, entries []game.LineupEntry) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.SetLineup")
	defer span.End()

	g, err := s.editableGame(ctx, orgID, gameID)
	if err != nil {
		return err
	}
	if !g.Involves(teamID) {
		return fmt.Errorf("%w: team %s does not play in game %s", ErrInvalidInput, teamID, g.ID)
	}

	seen := make(map[string]struct{}, len(entries))
	for i := range entries {
		if entries[i].PlayerID == "" {
			return fmt.Errorf("%w: lineup entry needs a player id", ErrInvalidInput)
		}
		if _, dup := seen[entries[i].PlayerID]; dup {
			return fmt.Errorf("%w: player %s listed twice", ErrInvalidInput, entries[i].PlayerID)
		}
		seen[entries[i].PlayerID] = struct{}{}

		entries[i].OrgID = orgID
		entries[i].GameID = g.ID
		entries[i].TeamID = teamID
		if entries[i].ID == "" {
			newID, err := s.idGen.NewID()
			if err != nil {
				return fmt.Errorf("generate lineup id: %w", err)
			}
			entries[i].ID = newID
		}
	}

	playerIDs := make([]string, 0, len(seen))
	for playerID := range seen {
		playerIDs = append(playerIDs, playerID)
	}
	known, err := s.playerRepo.ListByIDs(ctx, orgID, playerIDs)
	if err != nil {
		return fmt.Errorf("list players by ids: %w", err)
	}
	registered := make(map[string]struct{}, len(known))
	for _, p := range known {
		registered[p.ID] = struct{}{}
	}
	for playerID := range seen {
		if _, ok := registered[playerID]; !ok {
			return fmt.Errorf("%w: player %s is not registered", ErrInvalidInput, playerID)
		}
	}

	if err := s.lineupRepo.ReplaceByGameAndTeam(ctx, orgID, g.ID, teamID, entries); err != nil {
		return fmt.Errorf("replace lineup: %w", err)
	}

	return nil
}

// CreateSuspension registers a ban, standalone or linked to the penalty
// event that caused it. Serving starts with the next completed game.
func (s *GameService) CreateSuspension(ctx context.Context, orgID string, item game.Suspension) (game.Suspension, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.CreateSuspension")
	defer span.End()

	if item.PlayerID == "" || item.TeamID == "" {
		return game.Suspension{}, fmt.Errorf("%w: player id and team id are required", ErrInvalidInput)
	}
	if item.SuspendedGames <= 0 {
		return game.Suspension{}, fmt.Errorf("%w: suspended games must be positive", ErrInvalidInput)
	}

	if item.ID == "" {
		newID, err := s.idGen.NewID()
		if err != nil {
			return game.Suspension{}, fmt.Errorf("generate suspension id: %w", err)
		}
		item.ID = newID
	}
	item.OrgID = orgID
	item.ServedGames = 0
	if err := s.suspensionRepo.Create(ctx, orgID, item); err != nil {
		return game.Suspension{}, fmt.Errorf("create suspension: %w", err)
	}

	return item, nil
}

func (s *GameService) editableGame(ctx context.Context, orgID, gameID string) (game.Game, error) {
	g, err := s.GetByID(ctx, orgID, gameID)
	if err != nil {
		return game.Game{}, err
	}
	if !g.IsEditable() {
		return game.Game{}, fmt.Errorf("%w: game %s is %s", ErrPreconditionFailed, g.ID, g.Status)
	}
	return g, nil
}

// refreshScores recounts goal events by team and rewrites the game's derived
// scores. With no goal events on a non-completed game the scores return to
// unset.
func (s *GameService) refreshScores(ctx context.Context, orgID string, g game.Game) error {
	events, err := s.eventRepo.ListByGame(ctx, orgID, g.ID)
	if err != nil {
		return fmt.Errorf("list events by game: %w", err)
	}

	hasGoals := false
	for _, event := range events {
		if event.IsGoal() {
			hasGoals = true
			break
		}
	}
	if !hasGoals && !g.IsCompleted() {
		if err := s.gameRepo.UpdateScores(ctx, orgID, g.ID, nil, nil); err != nil {
			return fmt.Errorf("update game scores: %w", err)
		}
		return nil
	}

	homeScore, awayScore := countGoals(g, events)
	if err := s.gameRepo.UpdateScores(ctx, orgID, g.ID, &homeScore, &awayScore); err != nil {
		return fmt.Errorf("update game scores: %w", err)
	}
	return nil
}

// adjustSuspensions moves served_games for active suspensions on either
// team, skipping any suspension that originated in this very game: the
// originating game never counts toward serving. Rollback decrements any
// suspension with served games, including one that had already finished
// serving when the game completed, so a complete/reopen pair is not exactly
// symmetric for a just-expired ban. Counts floor at zero either way.
func (s *GameService) adjustSuspensions(ctx context.Context, orgID string, g game.Game, delta int) error {
	suspensions, err := s.suspensionRepo.ListByTeams(ctx, orgID, []string{g.HomeTeamID, g.AwayTeamID})
	if err != nil {
		return fmt.Errorf("list suspensions by teams: %w", err)
	}

	ids := make([]string, 0, len(suspensions))
	for _, item := range suspensions {
		if item.OriginGameID != nil && *item.OriginGameID == g.ID {
			continue
		}
		if delta > 0 && !item.IsActive() {
			continue
		}
		if delta < 0 && item.ServedGames == 0 {
			continue
		}
		ids = append(ids, item.ID)
	}
	if len(ids) == 0 {
		return nil
	}

	if err := s.suspensionRepo.AdjustServed(ctx, orgID, ids, delta); err != nil {
		return fmt.Errorf("adjust served games: %w", err)
	}
	return nil
}

// recalculate reruns the round standings and, concurrently, both season
// aggregates. Each step is a deterministic full replace, so a rerun after a
// partial failure converges to the same state.
func (s *GameService) recalculate(ctx context.Context, orgID, roundID string) error {
	if err := s.standings.Recalculate(ctx, orgID, roundID); err != nil {
		return err
	}

	seasonID, err := seasonIDForRound(ctx, s.roundRepo, s.divisionRepo, orgID, roundID)
	if err != nil {
		return err
	}

	var playerErr, goalieErr error
	var wg conc.WaitGroup
	wg.Go(func() { playerErr = s.playerStats.RecalculateSeason(ctx, orgID, seasonID) })
	wg.Go(func() { goalieErr = s.goalieStats.RecalculateSeason(ctx, orgID, seasonID) })
	wg.Wait()
	if playerErr != nil {
		return playerErr
	}
	if goalieErr != nil {
		return goalieErr
	}

	if s.penaltyStats != nil {
		s.penaltyStats.Invalidate(ctx, orgID, seasonID)
	}

	return nil
}

func countGoals(g game.Game, events []game.Event) (int, int) {
	home, away := 0, 0
	for _, event := range events {
		if !event.IsGoal() {
			continue
		}
		switch event.TeamID {
		case g.HomeTeamID:
			home++
		case g.AwayTeamID:
			away++
		}
	}
	return home, away
}

func validateEvent(g game.Game, item game.Event) error {
	if !g.Involves(item.TeamID) {
		return fmt.Errorf("%w: team %s does not play in game %s", ErrInvalidInput, item.TeamID, g.ID)
	}

	switch item.EventType {
	case game.EventTypeGoal:
		// Assist slots are independent but must reference distinct players,
		// and never the scorer.
		refs := make(map[string]struct{}, 3)
		for _, ref := range []*string{item.ScorerID, item.Assist1ID, item.Assist2ID} {
			if ref == nil {
				continue
			}
			if *ref == "" {
				return fmt.Errorf("%w: empty player reference on goal event", ErrInvalidInput)
			}
			if _, dup := refs[*ref]; dup {
				return fmt.Errorf("%w: player %s referenced twice on one goal", ErrInvalidInput, *ref)
			}
			refs[*ref] = struct{}{}
		}
		if item.PenaltyPlayerID != nil || item.PenaltyMinutes != 0 {
			return fmt.Errorf("%w: goal event cannot carry penalty fields", ErrInvalidInput)
		}
	case game.EventTypePenalty:
		if item.PenaltyPlayerID == nil || *item.PenaltyPlayerID == "" {
			return fmt.Errorf("%w: penalty event needs a player", ErrInvalidInput)
		}
		if item.PenaltyMinutes <= 0 {
			return fmt.Errorf("%w: penalty minutes must be positive", ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: unknown event type %q", ErrInvalidInput, item.EventType)
	}

	return nil
}
