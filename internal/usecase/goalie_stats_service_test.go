package usecase

import (
	"context"
	"testing"

	"github.com/hanakm/rinkleague/internal/domain/seasonstats"
)

func goalieRow(t *testing.T, rows []seasonstats.GoalieSeasonStat, playerID string) seasonstats.GoalieSeasonStat {
	t.Helper()
	for _, row := range rows {
		if row.PlayerID == playerID {
			return row
		}
	}
	t.Fatalf("no goalie row for %s in %+v", playerID, rows)
	return seasonstats.GoalieSeasonStat{}
}

func TestGoalieStatsService_ShutoutHasZeroGAA(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, defaultFixtures())
	env.reportGame(t, "game-1", 3, 0) // goalie-a concedes 0, goalie-b concedes 3

	rows, err := env.goalieDB.ListBySeason(context.Background(), testOrgID, testSeasonID)
	if err != nil {
		t.Fatalf("ListBySeason error: %v", err)
	}

	shutout := goalieRow(t, rows, "goalie-a")
	if shutout.GamesPlayed != 1 || shutout.GoalsAgainst != 0 || shutout.GAAHundredths != 0 {
		t.Fatalf("shutout goalie must carry gaa 0.00 exactly: %+v", shutout)
	}
	if shutout.FormatGAA() != "0.00" {
		t.Fatalf("unexpected gaa rendering: %s", shutout.FormatGAA())
	}

	beaten := goalieRow(t, rows, "goalie-b")
	if beaten.GoalsAgainst != 3 || beaten.GAAHundredths != 300 {
		t.Fatalf("unexpected beaten goalie row: %+v", beaten)
	}

	// goalie-c never played: no row at all, not a zero row.
	for _, row := range rows {
		if row.PlayerID == "goalie-c" {
			t.Fatalf("goalie with zero games must get no row: %+v", row)
		}
	}
}

func TestGoalieStatsService_GAARoundsHalfUp(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, defaultFixtures())
	// goalie-a: 1 against in game-1, 4 against in game-3 -> 5/2 = 2.50.
	env.reportGame(t, "game-1", 2, 1)
	env.reportGame(t, "game-3", 4, 0) // team-c home vs team-a; goalie-a concedes 4

	rows, err := env.goalieDB.ListBySeason(context.Background(), testOrgID, testSeasonID)
	if err != nil {
		t.Fatalf("ListBySeason error: %v", err)
	}
	row := goalieRow(t, rows, "goalie-a")
	if row.GamesPlayed != 2 || row.GoalsAgainst != 5 || row.GAAHundredths != 250 {
		t.Fatalf("unexpected aggregate: %+v", row)
	}
	if row.FormatGAA() != "2.50" {
		t.Fatalf("unexpected gaa rendering: %s", row.FormatGAA())
	}
}

func TestGoalieStatsService_LeaderboardThresholdSplit(t *testing.T) {
	t.Parallel()

	// Division threshold is 3 in the default fixtures.
	env := newTestEnv(t, defaultFixtures())
	env.reportGame(t, "game-1", 1, 0) // a and b at 1 game
	env.reportGame(t, "game-2", 2, 2) // b and c
	env.reportGame(t, "game-3", 0, 1) // c and a

	board, err := env.goalieStats.Leaderboard(context.Background(), testOrgID, testSeasonID)
	if err != nil {
		t.Fatalf("Leaderboard error: %v", err)
	}
	if board.MinGames != 3 {
		t.Fatalf("expected division threshold 3, got %d", board.MinGames)
	}
	if len(board.Qualified) != 0 {
		t.Fatalf("no goalie has 3 games yet: %+v", board.Qualified)
	}
	if len(board.BelowThreshold) != 3 {
		t.Fatalf("expected all three goalies below threshold, got %+v", board.BelowThreshold)
	}
}

func TestGoalieStatsService_LeaderboardQualifiedOrder(t *testing.T) {
	t.Parallel()

	fx := defaultFixtures()
	fx.Divisions[0].GoalieMinGames = 1
	env := newTestEnv(t, fx)

	env.reportGame(t, "game-1", 1, 0) // goalie-a 0 against, goalie-b 1 against
	env.reportGame(t, "game-2", 2, 2) // goalie-b +2, goalie-c 2
	env.reportGame(t, "game-3", 0, 2) // goalie-c +2, goalie-a 0 in 2 games

	board, err := env.goalieStats.Leaderboard(context.Background(), testOrgID, testSeasonID)
	if err != nil {
		t.Fatalf("Leaderboard error: %v", err)
	}
	if len(board.Qualified) != 3 || len(board.BelowThreshold) != 0 {
		t.Fatalf("all goalies should qualify at threshold 1: %+v", board)
	}

	// goalie-a: 0 GA in 2 games (0.00); goalie-b: 3 GA in 2 (1.50);
	// goalie-c: 4 GA in 2 (2.00). Best average first.
	want := []string{"goalie-a", "goalie-b", "goalie-c"}
	for i, row := range board.Qualified {
		if row.PlayerID != want[i] {
			t.Fatalf("unexpected leaderboard order at %d: %+v", i, board.Qualified)
		}
	}
}

func TestGoalieStatsService_BackfillCreatesMissingRows(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, defaultFixtures())
	env.reportGame(t, "game-1", 2, 1)

	// Simulate historical data lacking goalie rows.
	if err := env.goalieGames.DeleteByGame(context.Background(), testOrgID, "game-1"); err != nil {
		t.Fatalf("DeleteByGame error: %v", err)
	}

	count, err := env.goalieStats.BackfillGameStats(context.Background(), testOrgID, testSeasonID)
	if err != nil {
		t.Fatalf("BackfillGameStats error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 backfilled game, got %d", count)
	}

	// A second pass finds nothing to repair.
	count, err = env.goalieStats.BackfillGameStats(context.Background(), testOrgID, testSeasonID)
	if err != nil {
		t.Fatalf("BackfillGameStats error: %v", err)
	}
	if count != 0 {
		t.Fatalf("backfill must be idempotent, got %d", count)
	}

	stats, err := env.goalieGames.ListByGames(context.Background(), testOrgID, []string{"game-1"})
	if err != nil {
		t.Fatalf("ListByGames error: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected rows for both starting goalies, got %+v", stats)
	}
}
