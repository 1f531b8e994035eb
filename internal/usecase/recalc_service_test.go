package usecase

import (
	"context"
	"errors"
	"testing"
)

func TestRecalcService_FullRebuild(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, defaultFixtures())
	env.reportGame(t, "game-1", 2, 1)

	// Simulate drifted derived tables and wiped game-level goalie rows.
	ctx := context.Background()
	if err := env.standingsDB.ReplaceByRound(ctx, testOrgID, testRoundID, nil); err != nil {
		t.Fatalf("ReplaceByRound error: %v", err)
	}
	if err := env.playerDB.ReplaceBySeason(ctx, testOrgID, testSeasonID, nil); err != nil {
		t.Fatalf("player ReplaceBySeason error: %v", err)
	}
	if err := env.goalieDB.ReplaceBySeason(ctx, testOrgID, testSeasonID, nil); err != nil {
		t.Fatalf("goalie ReplaceBySeason error: %v", err)
	}
	if err := env.goalieGames.DeleteByGame(ctx, testOrgID, "game-1"); err != nil {
		t.Fatalf("DeleteByGame error: %v", err)
	}

	result, err := env.recalc.Run(ctx, testOrgID, RecalcInput{SeasonID: testSeasonID})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if result.RoundCount != 1 || result.TaskCount != 4 {
		t.Fatalf("expected 4 tasks over 1 round, got %+v", result)
	}
	if result.SuccessCount != 4 || result.FailedCount != 0 {
		t.Fatalf("all tasks must succeed: %+v", result)
	}
	if len(result.Tasks) != 4 {
		t.Fatalf("expected 4 task rows, got %+v", result.Tasks)
	}
	// Rows come back sorted by target, then round.
	order := []string{"goalie_backfill", "goalie_stats", "player_stats", "standings"}
	for i, want := range order {
		if result.Tasks[i].Target != want || result.Tasks[i].Status != "success" {
			t.Fatalf("task %d: want %s/success, got %+v", i, want, result.Tasks[i])
		}
	}
	if result.Tasks[0].Records != 1 {
		t.Fatalf("backfill must report the repaired game, got %+v", result.Tasks[0])
	}
	if result.Tasks[3].RoundID != testRoundID {
		t.Fatalf("standings task must carry its round id: %+v", result.Tasks[3])
	}

	standings, err := env.standings.ListByRound(ctx, testOrgID, testRoundID)
	if err != nil {
		t.Fatalf("ListByRound error: %v", err)
	}
	if len(standings) != 2 || standings[0].TeamID != "team-a" || standings[0].TotalPoints != 2 {
		t.Fatalf("standings not rebuilt: %+v", standings)
	}
	players, err := env.playerDB.ListBySeason(ctx, testOrgID, testSeasonID)
	if err != nil {
		t.Fatalf("player ListBySeason error: %v", err)
	}
	if len(players) == 0 {
		t.Fatal("player stats not rebuilt")
	}
	goalies, err := env.goalieDB.ListBySeason(ctx, testOrgID, testSeasonID)
	if err != nil {
		t.Fatalf("goalie ListBySeason error: %v", err)
	}
	if len(goalies) == 0 {
		t.Fatal("goalie stats not rebuilt")
	}
}

func TestRecalcService_TargetSubset(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, defaultFixtures())
	env.reportGame(t, "game-1", 1, 0)

	ctx := context.Background()
	if err := env.standingsDB.ReplaceByRound(ctx, testOrgID, testRoundID, nil); err != nil {
		t.Fatalf("ReplaceByRound error: %v", err)
	}
	if err := env.playerDB.ReplaceBySeason(ctx, testOrgID, testSeasonID, nil); err != nil {
		t.Fatalf("player ReplaceBySeason error: %v", err)
	}

	result, err := env.recalc.Run(ctx, testOrgID, RecalcInput{
		SeasonID: testSeasonID,
		Targets:  []string{"Standings"},
	})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if result.TaskCount != 1 || result.SuccessCount != 1 {
		t.Fatalf("expected one standings task, got %+v", result)
	}

	standings, err := env.standings.ListByRound(ctx, testOrgID, testRoundID)
	if err != nil {
		t.Fatalf("ListByRound error: %v", err)
	}
	if len(standings) != 2 {
		t.Fatalf("standings not rebuilt: %+v", standings)
	}
	// The untargeted player table stays as it was left.
	players, err := env.playerDB.ListBySeason(ctx, testOrgID, testSeasonID)
	if err != nil {
		t.Fatalf("player ListBySeason error: %v", err)
	}
	if len(players) != 0 {
		t.Fatalf("player stats must stay untouched: %+v", players)
	}
}

func TestRecalcService_InputValidation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, defaultFixtures())
	ctx := context.Background()

	if _, err := env.recalc.Run(ctx, testOrgID, RecalcInput{SeasonID: "missing"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown season, got %v", err)
	}
	if _, err := env.recalc.Run(ctx, testOrgID, RecalcInput{
		SeasonID: testSeasonID,
		Targets:  []string{"rosters"},
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unsupported target, got %v", err)
	}
}
