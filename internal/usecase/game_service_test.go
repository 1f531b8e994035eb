package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/hanakm/rinkleague/internal/domain/game"
)

func TestGameService_CompleteRequiresBothLineups(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, defaultFixtures())
	env.setLineups(t, "game-1", map[string][]game.LineupEntry{
		"team-a": defaultLineup("team-a"),
	})

	_, err := env.game.Complete(context.Background(), testOrgID, "game-1")
	if !errors.Is(err, ErrPreconditionFailed) {
		t.Fatalf("expected ErrPreconditionFailed without away lineup, got %v", err)
	}
}

func TestGameService_CompleteTwiceIsRejected(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, defaultFixtures())
	env.reportGame(t, "game-1", 1, 0)

	_, err := env.game.Complete(context.Background(), testOrgID, "game-1")
	if !errors.Is(err, ErrPreconditionFailed) {
		t.Fatalf("expected ErrPreconditionFailed for double completion, got %v", err)
	}
}

func TestGameService_GoallessGameCompletesAsZeroZero(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, defaultFixtures())
	env.setLineups(t, "game-1", map[string][]game.LineupEntry{
		"team-a": defaultLineup("team-a"),
		"team-b": defaultLineup("team-b"),
	})
	g := env.complete(t, "game-1")

	if g.HomeScore == nil || g.AwayScore == nil || *g.HomeScore != 0 || *g.AwayScore != 0 {
		t.Fatalf("goalless completion must finalize 0-0: %+v", g)
	}
	if g.FinalizedAt == nil {
		t.Fatal("completion must set finalizedAt")
	}
}

func TestGameService_EventEditingRecomputesScores(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, defaultFixtures())

	goal := env.addGoal(t, "game-1", "team-a", "player-a1")
	g, err := env.game.GetByID(context.Background(), testOrgID, "game-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if g.HomeScore == nil || *g.HomeScore != 1 || g.AwayScore == nil || *g.AwayScore != 0 {
		t.Fatalf("derived scores wrong after goal: %+v", g)
	}

	// Scores are derived, so removing the last goal event clears them.
	if err := env.game.DeleteEvent(context.Background(), testOrgID, goal.ID); err != nil {
		t.Fatalf("DeleteEvent error: %v", err)
	}
	g, err = env.game.GetByID(context.Background(), testOrgID, "game-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if g.HomeScore != nil || g.AwayScore != nil {
		t.Fatalf("scores must return to unset without goal events: %+v", g)
	}
}

func TestGameService_EventEditingLockedAfterCompletion(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, defaultFixtures())
	env.reportGame(t, "game-1", 1, 0)

	_, err := env.game.AddEvent(context.Background(), testOrgID, game.Event{
		GameID:    "game-1",
		TeamID:    "team-a",
		EventType: game.EventTypeGoal,
	})
	if !errors.Is(err, ErrPreconditionFailed) {
		t.Fatalf("expected ErrPreconditionFailed on completed game, got %v", err)
	}
}

func TestGameService_CancelClearsReportData(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, defaultFixtures())
	env.addGoal(t, "game-1", "team-a", "player-a1")

	g, err := env.game.Cancel(context.Background(), testOrgID, "game-1")
	if err != nil {
		t.Fatalf("Cancel error: %v", err)
	}
	if !g.IsCancelled() || g.HomeScore != nil || g.AwayScore != nil {
		t.Fatalf("cancel must clear scores: %+v", g)
	}

	events, err := env.events.ListByGame(context.Background(), testOrgID, "game-1")
	if err != nil {
		t.Fatalf("ListByGame error: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("cancel must delete events, got %+v", events)
	}

	// Reopening a cancelled game is a plain status reset.
	g, err = env.game.Reopen(context.Background(), testOrgID, "game-1")
	if err != nil {
		t.Fatalf("Reopen error: %v", err)
	}
	if g.Status != game.StatusScheduled {
		t.Fatalf("expected scheduled after reopen, got %+v", g)
	}
}

func TestGameService_CancelCascadesLinkedSuspensions(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, defaultFixtures())

	penalty := env.addPenalty(t, "game-1", "team-a", "player-a2", 5, "boarding")
	originGame := "game-1"
	if _, err := env.game.CreateSuspension(context.Background(), testOrgID, game.Suspension{
		TeamID:         "team-a",
		PlayerID:       "player-a2",
		OriginGameID:   &originGame,
		OriginEventID:  &penalty.ID,
		SuspendedGames: 2,
	}); err != nil {
		t.Fatalf("CreateSuspension error: %v", err)
	}

	if _, err := env.game.Cancel(context.Background(), testOrgID, "game-1"); err != nil {
		t.Fatalf("Cancel error: %v", err)
	}

	items, err := env.suspensions.ListByTeams(context.Background(), testOrgID, []string{"team-a"})
	if err != nil {
		t.Fatalf("ListByTeams error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("cancel must remove suspensions linked to the dropped events, got %+v", items)
	}
}

func TestGameService_ReopenRoundTripRestoresAggregates(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, defaultFixtures())
	env.reportGame(t, "game-2", 2, 0)

	standingsBefore, err := env.standings.ListByRound(context.Background(), testOrgID, testRoundID)
	if err != nil {
		t.Fatalf("ListByRound error: %v", err)
	}
	playerBefore, err := env.playerDB.ListBySeason(context.Background(), testOrgID, testSeasonID)
	if err != nil {
		t.Fatalf("player ListBySeason error: %v", err)
	}
	goalieBefore, err := env.goalieDB.ListBySeason(context.Background(), testOrgID, testSeasonID)
	if err != nil {
		t.Fatalf("goalie ListBySeason error: %v", err)
	}

	env.reportGame(t, "game-1", 1, 3)
	if _, err := env.game.Reopen(context.Background(), testOrgID, "game-1"); err != nil {
		t.Fatalf("Reopen error: %v", err)
	}

	standingsAfter, err := env.standings.ListByRound(context.Background(), testOrgID, testRoundID)
	if err != nil {
		t.Fatalf("ListByRound error: %v", err)
	}
	if len(standingsAfter) != len(standingsBefore) {
		t.Fatalf("standings row count changed: before %d after %d", len(standingsBefore), len(standingsAfter))
	}
	for i := range standingsAfter {
		standingsAfter[i].PreviousRank = nil
		standingsBefore[i].PreviousRank = nil
	}
	if !reflect.DeepEqual(standingsBefore, standingsAfter) {
		t.Fatalf("standings did not round-trip:\nbefore %+v\nafter  %+v", standingsBefore, standingsAfter)
	}

	playerAfter, err := env.playerDB.ListBySeason(context.Background(), testOrgID, testSeasonID)
	if err != nil {
		t.Fatalf("player ListBySeason error: %v", err)
	}
	if !reflect.DeepEqual(playerBefore, playerAfter) {
		t.Fatalf("player stats did not round-trip:\nbefore %+v\nafter  %+v", playerBefore, playerAfter)
	}

	goalieAfter, err := env.goalieDB.ListBySeason(context.Background(), testOrgID, testSeasonID)
	if err != nil {
		t.Fatalf("goalie ListBySeason error: %v", err)
	}
	if !reflect.DeepEqual(goalieBefore, goalieAfter) {
		t.Fatalf("goalie stats did not round-trip:\nbefore %+v\nafter  %+v", goalieBefore, goalieAfter)
	}

	g, err := env.game.GetByID(context.Background(), testOrgID, "game-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if g.FinalizedAt != nil || !g.IsEditable() {
		t.Fatalf("reopened game must be editable with finalizedAt cleared: %+v", g)
	}
}

func TestGameService_SuspensionServing(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, defaultFixtures())

	// Penalty in game-1 leads to a two-game ban for player-a2.
	penalty := env.addPenalty(t, "game-1", "team-a", "player-a2", 5, "boarding")
	originGame := "game-1"
	suspension, err := env.game.CreateSuspension(context.Background(), testOrgID, game.Suspension{
		TeamID:         "team-a",
		PlayerID:       "player-a2",
		OriginGameID:   &originGame,
		OriginEventID:  &penalty.ID,
		SuspendedGames: 2,
	})
	if err != nil {
		t.Fatalf("CreateSuspension error: %v", err)
	}

	served := func() int {
		t.Helper()
		items, err := env.suspensions.ListByTeams(context.Background(), testOrgID, []string{"team-a"})
		if err != nil {
			t.Fatalf("ListByTeams error: %v", err)
		}
		for _, item := range items {
			if item.ID == suspension.ID {
				return item.ServedGames
			}
		}
		t.Fatalf("suspension %s disappeared", suspension.ID)
		return 0
	}

	// Completing the origin game itself serves nothing.
	env.reportGame(t, "game-1", 1, 0)
	if got := served(); got != 0 {
		t.Fatalf("origin game must not count toward serving, served=%d", got)
	}

	// A later game involving team-a serves one.
	env.reportGame(t, "game-3", 0, 1)
	if got := served(); got != 1 {
		t.Fatalf("expected servedGames=1 after next completed game, got %d", got)
	}

	// Reopening that game takes it back.
	if _, err := env.game.Reopen(context.Background(), testOrgID, "game-3"); err != nil {
		t.Fatalf("Reopen error: %v", err)
	}
	if got := served(); got != 0 {
		t.Fatalf("reopen must decrement servedGames, got %d", got)
	}
}

func TestGameService_DeleteEventCascadesLinkedSuspension(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, defaultFixtures())

	penalty := env.addPenalty(t, "game-1", "team-a", "player-a2", 5, "boarding")
	originGame := "game-1"
	if _, err := env.game.CreateSuspension(context.Background(), testOrgID, game.Suspension{
		TeamID:         "team-a",
		PlayerID:       "player-a2",
		OriginGameID:   &originGame,
		OriginEventID:  &penalty.ID,
		SuspendedGames: 1,
	}); err != nil {
		t.Fatalf("CreateSuspension error: %v", err)
	}

	if err := env.game.DeleteEvent(context.Background(), testOrgID, penalty.ID); err != nil {
		t.Fatalf("DeleteEvent error: %v", err)
	}

	items, err := env.suspensions.ListByTeams(context.Background(), testOrgID, []string{"team-a"})
	if err != nil {
		t.Fatalf("ListByTeams error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("linked suspension must be removed with its event, got %+v", items)
	}
}

func TestGameService_SetLineupRejectsForeignTeam(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, defaultFixtures())
	err := env.game.SetLineup(context.Background(), testOrgID, "game-1", "team-c", defaultLineup("team-c"))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for team outside the game, got %v", err)
	}
}

func TestGameService_SetLineupRejectsUnregisteredPlayer(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, defaultFixtures())
	entries := append(defaultLineup("team-a"), lineup("player-ghost", false))
	err := env.game.SetLineup(context.Background(), testOrgID, "game-1", "team-a", entries)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown player, got %v", err)
	}
}
