package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hanakm/rinkleague/internal/domain/game"
	qb "github.com/hanakm/rinkleague/internal/platform/querybuilder"
)

type LineupRepository struct {
	db *sqlx.DB
}

func NewLineupRepository(db *sqlx.DB) *LineupRepository {
	return &LineupRepository{db: db}
}

func (r *LineupRepository) ListByGame(ctx context.Context, orgID, gameID string) ([]game.LineupEntry, error) {
	return r.list(ctx, orgID, qb.Eq("game_public_id", gameID))
}

func (r *LineupRepository) ListByGames(ctx context.Context, orgID string, gameIDs []string) ([]game.LineupEntry, error) {
	if len(gameIDs) == 0 {
		return nil, nil
	}
	return r.list(ctx, orgID, qb.InStrings("game_public_id", gameIDs))
}

func (r *LineupRepository) list(ctx context.Context, orgID string, scope qb.Condition) ([]game.LineupEntry, error) {
	query, args, err := qb.Select("*").From("game_lineups").
		Where(
			qb.Eq("org_id", orgID),
			scope,
			qb.IsNull("deleted_at"),
		).
		OrderBy("game_public_id", "team_public_id", "player_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list lineups query: %w", err)
	}

	var rows []lineupTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list lineups: %w", err)
	}

	out := make([]game.LineupEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, lineupFromTable(row))
	}
	return out, nil
}

// ReplaceByGameAndTeam swaps one team's lineup for a game in a single
// transaction; submitting a roster always replaces the previous one whole.
func (r *LineupRepository) ReplaceByGameAndTeam(ctx context.Context, orgID, gameID, teamID string, entries []game.LineupEntry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace lineup: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.Update("game_lineups").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("org_id", orgID),
			qb.Eq("game_public_id", gameID),
			qb.Eq("team_public_id", teamID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear lineup query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear lineup game=%s team=%s: %w", gameID, teamID, err)
	}

	for _, entry := range entries {
		query, args, err := qb.InsertModel("game_lineups", lineupInsertModel{
			PublicID:         entry.ID,
			OrgID:            orgID,
			GameID:           gameID,
			TeamID:           teamID,
			PlayerID:         entry.PlayerID,
			IsStartingGoalie: entry.IsStartingGoalie,
		}, "")
		if err != nil {
			return fmt.Errorf("build insert lineup entry query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert lineup entry player=%s: %w", entry.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace lineup tx: %w", err)
	}
	return nil
}
