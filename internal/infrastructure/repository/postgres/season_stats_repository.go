package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hanakm/rinkleague/internal/domain/seasonstats"
	qb "github.com/hanakm/rinkleague/internal/platform/querybuilder"
)

type PlayerStatRepository struct {
	db *sqlx.DB
}

func NewPlayerStatRepository(db *sqlx.DB) *PlayerStatRepository {
	return &PlayerStatRepository{db: db}
}

func (r *PlayerStatRepository) ListBySeason(ctx context.Context, orgID, seasonID string) ([]seasonstats.PlayerSeasonStat, error) {
	query, args, err := qb.Select("*").From("player_season_stats").
		Where(
			qb.Eq("org_id", orgID),
			qb.Eq("season_public_id", seasonID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("total_points DESC", "goals DESC", "player_public_id", "team_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list player season stats query: %w", err)
	}

	var rows []playerSeasonStatTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list player season stats: %w", err)
	}

	out := make([]seasonstats.PlayerSeasonStat, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerSeasonStatFromTable(row))
	}
	return out, nil
}

func (r *PlayerStatRepository) ReplaceBySeason(ctx context.Context, orgID, seasonID string, items []seasonstats.PlayerSeasonStat) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace player season stats: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.DeleteFrom("player_season_stats").
		Where(
			qb.Eq("org_id", orgID),
			qb.Eq("season_public_id", seasonID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear player season stats query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear player season stats season=%s: %w", seasonID, err)
	}

	for _, item := range items {
		query, args, err := qb.InsertModel("player_season_stats", playerSeasonStatInsertModel{
			OrgID:          orgID,
			SeasonID:       seasonID,
			PlayerID:       item.PlayerID,
			TeamID:         item.TeamID,
			GamesPlayed:    item.GamesPlayed,
			Goals:          item.Goals,
			Assists:        item.Assists,
			TotalPoints:    item.TotalPoints,
			PenaltyMinutes: item.PenaltyMinutes,
		}, "")
		if err != nil {
			return fmt.Errorf("build insert player season stat query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert player season stat player=%s: %w", item.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace player season stats tx: %w", err)
	}
	return nil
}

type GoalieStatRepository struct {
	db *sqlx.DB
}

func NewGoalieStatRepository(db *sqlx.DB) *GoalieStatRepository {
	return &GoalieStatRepository{db: db}
}

func (r *GoalieStatRepository) ListBySeason(ctx context.Context, orgID, seasonID string) ([]seasonstats.GoalieSeasonStat, error) {
	query, args, err := qb.Select("*").From("goalie_season_stats").
		Where(
			qb.Eq("org_id", orgID),
			qb.Eq("season_public_id", seasonID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("gaa_hundredths", "games_played DESC", "player_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list goalie season stats query: %w", err)
	}

	var rows []goalieSeasonStatTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list goalie season stats: %w", err)
	}

	out := make([]seasonstats.GoalieSeasonStat, 0, len(rows))
	for _, row := range rows {
		out = append(out, goalieSeasonStatFromTable(row))
	}
	return out, nil
}

func (r *GoalieStatRepository) ReplaceBySeason(ctx context.Context, orgID, seasonID string, items []seasonstats.GoalieSeasonStat) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace goalie season stats: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.DeleteFrom("goalie_season_stats").
		Where(
			qb.Eq("org_id", orgID),
			qb.Eq("season_public_id", seasonID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear goalie season stats query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear goalie season stats season=%s: %w", seasonID, err)
	}

	for _, item := range items {
		query, args, err := qb.InsertModel("goalie_season_stats", goalieSeasonStatInsertModel{
			OrgID:         orgID,
			SeasonID:      seasonID,
			PlayerID:      item.PlayerID,
			TeamID:        item.TeamID,
			GamesPlayed:   item.GamesPlayed,
			GoalsAgainst:  item.GoalsAgainst,
			GAAHundredths: item.GAAHundredths,
		}, "")
		if err != nil {
			return fmt.Errorf("build insert goalie season stat query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert goalie season stat player=%s: %w", item.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace goalie season stats tx: %w", err)
	}
	return nil
}

type GoalieGameStatRepository struct {
	db *sqlx.DB
}

func NewGoalieGameStatRepository(db *sqlx.DB) *GoalieGameStatRepository {
	return &GoalieGameStatRepository{db: db}
}

func (r *GoalieGameStatRepository) ListByGames(ctx context.Context, orgID string, gameIDs []string) ([]seasonstats.GoalieGameStat, error) {
	if len(gameIDs) == 0 {
		return nil, nil
	}

	query, args, err := qb.Select("*").From("goalie_game_stats").
		Where(
			qb.Eq("org_id", orgID),
			qb.InStrings("game_public_id", gameIDs),
			qb.IsNull("deleted_at"),
		).
		OrderBy("game_public_id", "player_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list goalie game stats query: %w", err)
	}

	var rows []goalieGameStatTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list goalie game stats: %w", err)
	}

	out := make([]seasonstats.GoalieGameStat, 0, len(rows))
	for _, row := range rows {
		out = append(out, goalieGameStatFromTable(row))
	}
	return out, nil
}

func (r *GoalieGameStatRepository) ReplaceByGame(ctx context.Context, orgID, gameID string, items []seasonstats.GoalieGameStat) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace goalie game stats: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.DeleteFrom("goalie_game_stats").
		Where(
			qb.Eq("org_id", orgID),
			qb.Eq("game_public_id", gameID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear goalie game stats query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear goalie game stats game=%s: %w", gameID, err)
	}

	for _, item := range items {
		query, args, err := qb.InsertModel("goalie_game_stats", goalieGameStatInsertModel{
			OrgID:        orgID,
			GameID:       gameID,
			PlayerID:     item.PlayerID,
			TeamID:       item.TeamID,
			GoalsAgainst: item.GoalsAgainst,
		}, "")
		if err != nil {
			return fmt.Errorf("build insert goalie game stat query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert goalie game stat player=%s: %w", item.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace goalie game stats tx: %w", err)
	}
	return nil
}

func (r *GoalieGameStatRepository) DeleteByGame(ctx context.Context, orgID, gameID string) error {
	query, args, err := qb.DeleteFrom("goalie_game_stats").
		Where(
			qb.Eq("org_id", orgID),
			qb.Eq("game_public_id", gameID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete goalie game stats query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete goalie game stats game=%s: %w", gameID, err)
	}
	return nil
}
