package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/hanakm/rinkleague/internal/domain/standing"
)

func TestStandingsService_EndToEndSingleGame(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, defaultFixtures())
	env.reportGame(t, "game-1", 1, 0) // team-a 1, team-b 0

	rows, err := env.standings.ListByRound(context.Background(), testOrgID, testRoundID)
	if err != nil {
		t.Fatalf("ListByRound error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	home := rows[0]
	if home.TeamID != "team-a" || home.Rank != 1 {
		t.Fatalf("unexpected rank 1 row: %+v", home)
	}
	if home.Wins != 1 || home.GoalsFor != 1 || home.GoalsAgainst != 0 || home.TotalPoints != 2 {
		t.Fatalf("unexpected home standing: %+v", home)
	}
	if home.PreviousRank != nil {
		t.Fatalf("expected nil previousRank on first calculation, got %d", *home.PreviousRank)
	}

	away := rows[1]
	if away.TeamID != "team-b" || away.Losses != 1 || away.GoalsFor != 0 || away.GoalsAgainst != 1 {
		t.Fatalf("unexpected away standing: %+v", away)
	}

	stats, err := env.playerStats.ListBySeason(context.Background(), testOrgID, testSeasonID, "")
	if err != nil {
		t.Fatalf("ListBySeason error: %v", err)
	}
	found := false
	for _, row := range stats {
		if row.PlayerID != "player-a1" {
			continue
		}
		found = true
		if row.Goals != 1 || row.Assists != 0 || row.TotalPoints != 1 || row.GamesPlayed != 1 {
			t.Fatalf("unexpected scorer stats: %+v", row)
		}
	}
	if !found {
		t.Fatalf("no stat row for scorer, got %+v", stats)
	}
}

func TestStandingsService_RecalculateIsDeterministic(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, defaultFixtures())
	env.reportGame(t, "game-1", 3, 2)
	env.reportGame(t, "game-2", 1, 1)

	first, err := env.standings.ListByRound(context.Background(), testOrgID, testRoundID)
	if err != nil {
		t.Fatalf("ListByRound error: %v", err)
	}

	if err := env.standings.Recalculate(context.Background(), testOrgID, testRoundID); err != nil {
		t.Fatalf("Recalculate error: %v", err)
	}
	second, err := env.standings.ListByRound(context.Background(), testOrgID, testRoundID)
	if err != nil {
		t.Fatalf("ListByRound error: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("row count changed: %d vs %d", len(first), len(second))
	}
	for i := range second {
		if second[i].PreviousRank == nil || *second[i].PreviousRank != first[i].Rank {
			t.Fatalf("previousRank should track prior rank, row %+v prior %+v", second[i], first[i])
		}
		a, b := first[i], second[i]
		a.PreviousRank, b.PreviousRank = nil, nil
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("rows diverged between identical recalculations:\n%+v\n%+v", first[i], second[i])
		}
	}
}

func TestStandingsService_PointsFormulaWithBonus(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, defaultFixtures())
	env.reportGame(t, "game-1", 2, 2) // draw
	env.reportGame(t, "game-3", 0, 4) // team-a beats team-c away

	if _, err := env.bonus.Create(context.Background(), testOrgID, standing.BonusPoint{
		RoundID: testRoundID,
		TeamID:  "team-a",
		Points:  -1,
		Reason:  "forfeit penalty",
	}); err != nil {
		t.Fatalf("Create bonus error: %v", err)
	}

	rows, err := env.standings.ListByRound(context.Background(), testOrgID, testRoundID)
	if err != nil {
		t.Fatalf("ListByRound error: %v", err)
	}

	for _, row := range rows {
		wantPoints := row.Wins*2 + row.Draws*1 + row.Losses*0
		if row.Points != wantPoints {
			t.Fatalf("points formula broken for %s: %+v", row.TeamID, row)
		}
		if row.TotalPoints != row.Points+row.BonusPoints {
			t.Fatalf("totalPoints != points+bonus for %s: %+v", row.TeamID, row)
		}
		if row.TeamID == "team-a" && row.BonusPoints != -1 {
			t.Fatalf("bonus not applied: %+v", row)
		}
	}
}

func TestBuildStandings_TieBreakOrder(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, defaultFixtures())
	// team-a beats team-b 3-0, team-c beats team-a 2-1, team-b beats team-c 1-0.
	// Every team finishes 1-0-1 on 2 points; goal difference decides.
	env.reportGame(t, "game-1", 3, 0) // a-b
	env.reportGame(t, "game-2", 1, 0) // b-c
	env.reportGame(t, "game-3", 2, 1) // c-a

	rows, err := env.standings.ListByRound(context.Background(), testOrgID, testRoundID)
	if err != nil {
		t.Fatalf("ListByRound error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	// a: GF4 GA2 diff+2, c: GF2 GA2 diff 0, b: GF1 GA3 diff-2.
	if rows[0].TeamID != "team-a" || rows[1].TeamID != "team-c" || rows[2].TeamID != "team-b" {
		t.Fatalf("unexpected tie-break order: %s, %s, %s", rows[0].TeamID, rows[1].TeamID, rows[2].TeamID)
	}
	for i, row := range rows {
		if row.Rank != i+1 {
			t.Fatalf("ranks must be sequential, got %+v", row)
		}
		if row.TotalPoints != 2 {
			t.Fatalf("expected all teams on 2 points, got %+v", row)
		}
	}
}

func TestStandingsService_BonusOnlyTeamGetsNoRow(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, defaultFixtures())
	env.reportGame(t, "game-1", 1, 0) // only team-a and team-b have games

	if _, err := env.bonus.Create(context.Background(), testOrgID, standing.BonusPoint{
		RoundID: testRoundID,
		TeamID:  "team-c",
		Points:  3,
	}); err != nil {
		t.Fatalf("Create bonus error: %v", err)
	}

	rows, err := env.standings.ListByRound(context.Background(), testOrgID, testRoundID)
	if err != nil {
		t.Fatalf("ListByRound error: %v", err)
	}
	for _, row := range rows {
		if row.TeamID == "team-c" {
			t.Fatalf("team without completed games must not get a standing row: %+v", row)
		}
	}
}

func TestStandingsService_RecalculateDivisionRebuildsRounds(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, defaultFixtures())
	env.reportGame(t, "game-1", 1, 0)

	// Wipe the stored table so only a rerun can bring it back.
	if err := env.standingsDB.ReplaceByRound(context.Background(), testOrgID, testRoundID, nil); err != nil {
		t.Fatalf("ReplaceByRound error: %v", err)
	}

	if err := env.standings.RecalculateDivision(context.Background(), testOrgID, testDivisionID); err != nil {
		t.Fatalf("RecalculateDivision error: %v", err)
	}

	rows, err := env.standings.ListByRound(context.Background(), testOrgID, testRoundID)
	if err != nil {
		t.Fatalf("ListByRound error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rebuilt rows, got %+v", rows)
	}
	if rows[0].TeamID != "team-a" || rows[0].Rank != 1 {
		t.Fatalf("unexpected rank 1 row after division rerun: %+v", rows[0])
	}
}

func TestStandingsService_RecalculateDivisionRequiresID(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, defaultFixtures())
	err := env.standings.RecalculateDivision(context.Background(), testOrgID, "  ")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestStandingsService_RecalculateUnknownRound(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, defaultFixtures())
	err := env.standings.Recalculate(context.Background(), testOrgID, "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
