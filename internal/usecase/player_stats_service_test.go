package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/hanakm/rinkleague/internal/domain/contract"
	"github.com/hanakm/rinkleague/internal/domain/game"
	"github.com/hanakm/rinkleague/internal/domain/seasonstats"
)

func playerRow(t *testing.T, rows []seasonstats.PlayerSeasonStat, playerID string) seasonstats.PlayerSeasonStat {
	t.Helper()
	for _, row := range rows {
		if row.PlayerID == playerID {
			return row
		}
	}
	t.Fatalf("no stat row for %s in %+v", playerID, rows)
	return seasonstats.PlayerSeasonStat{}
}

func TestPlayerStatsService_AssistIndependence(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, defaultFixtures())
	env.setLineups(t, "game-1", map[string][]game.LineupEntry{
		"team-a": defaultLineup("team-a"),
		"team-b": defaultLineup("team-b"),
	})
	env.addGoal(t, "game-1", "team-a", "player-a1", "player-a2", "goalie-a")
	env.complete(t, "game-1")

	rows, err := env.playerStats.ListBySeason(context.Background(), testOrgID, testSeasonID, "")
	if err != nil {
		t.Fatalf("ListBySeason error: %v", err)
	}

	scorer := playerRow(t, rows, "player-a1")
	if scorer.Goals != 1 || scorer.Assists != 0 || scorer.TotalPoints != 1 {
		t.Fatalf("unexpected scorer row: %+v", scorer)
	}
	for _, assistant := range []string{"player-a2", "goalie-a"} {
		row := playerRow(t, rows, assistant)
		if row.Goals != 0 || row.Assists != 1 || row.TotalPoints != 1 {
			t.Fatalf("unexpected assistant row for %s: %+v", assistant, row)
		}
	}
}

func TestGameService_AddEvent_RejectsSelfAssist(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, defaultFixtures())
	scorer := "player-a1"
	_, err := env.game.AddEvent(context.Background(), testOrgID, game.Event{
		GameID:    "game-1",
		TeamID:    "team-a",
		EventType: game.EventTypeGoal,
		ScorerID:  &scorer,
		Assist1ID: &scorer,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for self-assist, got %v", err)
	}
}

func TestPlayerStatsService_EligibilityToggleRemovesAndRestores(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, defaultFixtures())
	env.reportGame(t, "game-1", 2, 1)

	withGames, err := env.playerStats.ListBySeason(context.Background(), testOrgID, testSeasonID, "")
	if err != nil {
		t.Fatalf("ListBySeason error: %v", err)
	}
	if len(withGames) == 0 {
		t.Fatal("expected stat rows after completion")
	}

	off := false
	if _, err := env.round.Update(context.Background(), testOrgID, testRoundID, RoundUpdateInput{
		CountsForPlayerStats: &off,
	}); err != nil {
		t.Fatalf("Update round error: %v", err)
	}

	toggledOff, err := env.playerStats.ListBySeason(context.Background(), testOrgID, testSeasonID, "")
	if err != nil {
		t.Fatalf("ListBySeason error: %v", err)
	}
	if len(toggledOff) != 0 {
		t.Fatalf("ineligible round must contribute nothing, got %+v", toggledOff)
	}

	on := true
	if _, err := env.round.Update(context.Background(), testOrgID, testRoundID, RoundUpdateInput{
		CountsForPlayerStats: &on,
	}); err != nil {
		t.Fatalf("Update round error: %v", err)
	}

	restored, err := env.playerStats.ListBySeason(context.Background(), testOrgID, testSeasonID, "")
	if err != nil {
		t.Fatalf("ListBySeason error: %v", err)
	}
	if !reflect.DeepEqual(withGames, restored) {
		t.Fatalf("toggling back must restore identical rows:\nbefore %+v\nafter  %+v", withGames, restored)
	}
}

func TestPlayerStatsService_PositionFilter(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, defaultFixtures())
	env.reportGame(t, "game-1", 1, 1)

	forwards, err := env.playerStats.ListBySeason(context.Background(), testOrgID, testSeasonID, contract.PositionForward)
	if err != nil {
		t.Fatalf("ListBySeason error: %v", err)
	}
	for _, row := range forwards {
		switch row.PlayerID {
		case "player-a1", "player-b1", "player-c1":
		default:
			t.Fatalf("non-forward row slipped through the filter: %+v", row)
		}
	}
	if len(forwards) != 2 {
		t.Fatalf("expected the two forwards with lineup entries, got %+v", forwards)
	}

	if _, err := env.playerStats.ListBySeason(context.Background(), testOrgID, testSeasonID, "winger"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown position, got %v", err)
	}
}

func TestPlayerStatsService_PenaltyMinutesAccumulate(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, defaultFixtures())
	env.setLineups(t, "game-1", map[string][]game.LineupEntry{
		"team-a": defaultLineup("team-a"),
		"team-b": defaultLineup("team-b"),
	})
	env.addPenalty(t, "game-1", "team-a", "player-a2", 2, "tripping")
	env.addPenalty(t, "game-1", "team-a", "player-a2", 5, "boarding")
	env.complete(t, "game-1")

	rows, err := env.playerStats.ListBySeason(context.Background(), testOrgID, testSeasonID, "")
	if err != nil {
		t.Fatalf("ListBySeason error: %v", err)
	}
	row := playerRow(t, rows, "player-a2")
	if row.PenaltyMinutes != 7 {
		t.Fatalf("expected 7 penalty minutes, got %+v", row)
	}
	if row.TotalPoints != 0 {
		t.Fatalf("penalties must not score points: %+v", row)
	}
}
