package querybuilder

import (
	"reflect"
	"testing"
)

func TestSelect_WhereGroupOrderLimit(t *testing.T) {
	t.Parallel()

	query, args, err := Select("team_id", "SUM(penalty_minutes) AS minutes").
		From("game_events").
		Where(
			Eq("org_id", "org-1"),
			InStrings("game_id", []string{"g1", "g2"}),
			NotNull("penalty_player_id"),
		).
		GroupBy("team_id").
		OrderBy("minutes DESC").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL: %v", err)
	}

	want := "SELECT team_id, SUM(penalty_minutes) AS minutes FROM game_events" +
		" WHERE org_id = $1 AND game_id IN ($2, $3) AND penalty_player_id IS NOT NULL" +
		" GROUP BY team_id ORDER BY minutes DESC LIMIT 10"
	if query != want {
		t.Fatalf("unexpected query:\n got %s\nwant %s", query, want)
	}
	if !reflect.DeepEqual(args, []any{"org-1", "g1", "g2"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestIn_EmptyValuesNeverMatch(t *testing.T) {
	t.Parallel()

	query, args, err := Select("id").From("games").
		Where(In("round_id", nil)).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL: %v", err)
	}
	if query != "SELECT id FROM games WHERE 1=0" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 0 {
		t.Fatalf("expected no args, got %v", args)
	}
}

func TestInsertModel_UsesDBTags(t *testing.T) {
	t.Parallel()

	type row struct {
		OrgID   string `db:"org_id"`
		RoundID string `db:"round_id"`
		Skipped string `db:"-"`
		NoTag   string
	}

	query, args, err := InsertModel("standings", row{OrgID: "org-1", RoundID: "r1", Skipped: "x"}, "")
	if err != nil {
		t.Fatalf("InsertModel: %v", err)
	}
	if query != "INSERT INTO standings (org_id, round_id) VALUES ($1, $2)" {
		t.Fatalf("unexpected query: %s", query)
	}
	if !reflect.DeepEqual(args, []any{"org-1", "r1"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestUpdate_SetExprBindsArgs(t *testing.T) {
	t.Parallel()

	query, args, err := Update("game_suspensions").
		SetExpr("served_games", "GREATEST(served_games + ?, 0)", -1).
		Where(Eq("org_id", "org-1"), InStrings("id", []string{"s1"})).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL: %v", err)
	}

	want := "UPDATE game_suspensions SET served_games = GREATEST(served_games + $1, 0)" +
		" WHERE org_id = $2 AND id IN ($3)"
	if query != want {
		t.Fatalf("unexpected query:\n got %s\nwant %s", query, want)
	}
	if !reflect.DeepEqual(args, []any{-1, "org-1", "s1"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestDelete_RequiresCondition(t *testing.T) {
	t.Parallel()

	if _, _, err := DeleteFrom("standings").ToSQL(); err == nil {
		t.Fatalf("expected error for unconditional delete")
	}

	query, args, err := DeleteFrom("standings").
		Where(Eq("org_id", "org-1"), Eq("round_id", "r1")).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL: %v", err)
	}
	if query != "DELETE FROM standings WHERE org_id = $1 AND round_id = $2" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %v", args)
	}
}
