package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hanakm/rinkleague/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo organization into an empty database so a
// fresh deployment has something to serve. It is a no-op once any season
// exists.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM seasons WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count seasons for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, s := range memory.SeedSeasons() {
		if err := seedExec(ctx, tx, `
INSERT INTO seasons (public_id, org_id, name, starts_at, ends_at)
VALUES (:public_id, :org_id, :name, :starts_at, :ends_at)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id": s.ID,
			"org_id":    s.OrgID,
			"name":      s.Name,
			"starts_at": s.StartsAt.UTC(),
			"ends_at":   s.EndsAt.UTC(),
		}); err != nil {
			return fmt.Errorf("seed season %s: %w", s.ID, err)
		}
	}

	for _, d := range memory.SeedDivisions() {
		if err := seedExec(ctx, tx, `
INSERT INTO divisions (public_id, org_id, season_public_id, name, goalie_min_games)
VALUES (:public_id, :org_id, :season_public_id, :name, :goalie_min_games)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":        d.ID,
			"org_id":           d.OrgID,
			"season_public_id": d.SeasonID,
			"name":             d.Name,
			"goalie_min_games": d.GoalieMinGames,
		}); err != nil {
			return fmt.Errorf("seed division %s: %w", d.ID, err)
		}
	}

	for _, r := range memory.SeedRounds() {
		if err := seedExec(ctx, tx, `
INSERT INTO rounds (public_id, org_id, division_public_id, name, points_win, points_draw, points_loss, counts_for_player_stats, counts_for_goalie_stats)
VALUES (:public_id, :org_id, :division_public_id, :name, :points_win, :points_draw, :points_loss, :counts_for_player_stats, :counts_for_goalie_stats)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":               r.ID,
			"org_id":                  r.OrgID,
			"division_public_id":      r.DivisionID,
			"name":                    r.Name,
			"points_win":              r.PointsWin,
			"points_draw":             r.PointsDraw,
			"points_loss":             r.PointsLoss,
			"counts_for_player_stats": r.CountsForPlayerStats,
			"counts_for_goalie_stats": r.CountsForGoalieStats,
		}); err != nil {
			return fmt.Errorf("seed round %s: %w", r.ID, err)
		}
	}

	for _, t := range memory.SeedTeams() {
		if err := seedExec(ctx, tx, `
INSERT INTO teams (public_id, org_id, name, short)
VALUES (:public_id, :org_id, :name, :short)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id": t.ID,
			"org_id":    t.OrgID,
			"name":      t.Name,
			"short":     t.Short,
		}); err != nil {
			return fmt.Errorf("seed team %s: %w", t.ID, err)
		}
	}

	for _, p := range memory.SeedPlayers() {
		if err := seedExec(ctx, tx, `
INSERT INTO players (public_id, org_id, first_name, last_name, number)
VALUES (:public_id, :org_id, :first_name, :last_name, :number)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":  p.ID,
			"org_id":     p.OrgID,
			"first_name": p.FirstName,
			"last_name":  p.LastName,
			"number":     p.Number,
		}); err != nil {
			return fmt.Errorf("seed player %s: %w", p.ID, err)
		}
	}

	for _, c := range memory.SeedContracts() {
		if err := seedExec(ctx, tx, `
INSERT INTO contracts (public_id, org_id, player_public_id, team_public_id, position, valid_from)
VALUES (:public_id, :org_id, :player_public_id, :team_public_id, :position, :valid_from)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":        c.ID,
			"org_id":           c.OrgID,
			"player_public_id": c.PlayerID,
			"team_public_id":   c.TeamID,
			"position":         c.Position,
			"valid_from":       c.ValidFrom.UTC(),
		}); err != nil {
			return fmt.Errorf("seed contract %s: %w", c.ID, err)
		}
	}

	for _, g := range memory.SeedGames() {
		if err := seedExec(ctx, tx, `
INSERT INTO games (public_id, org_id, round_public_id, home_team_public_id, away_team_public_id, status, starts_at)
VALUES (:public_id, :org_id, :round_public_id, :home_team_public_id, :away_team_public_id, :status, :starts_at)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":           g.ID,
			"org_id":              g.OrgID,
			"round_public_id":     g.RoundID,
			"home_team_public_id": g.HomeTeamID,
			"away_team_public_id": g.AwayTeamID,
			"status":              g.Status,
			"starts_at":           g.StartsAt.UTC(),
		}); err != nil {
			return fmt.Errorf("seed game %s: %w", g.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}

func seedExec(ctx context.Context, tx *sqlx.Tx, query string, args map[string]any) error {
	bound, boundArgs, err := sqlx.Named(query, args)
	if err != nil {
		return fmt.Errorf("bind seed query: %w", err)
	}
	bound = tx.Rebind(bound)
	if _, err := tx.ExecContext(ctx, bound, boundArgs...); err != nil {
		return err
	}
	return nil
}
