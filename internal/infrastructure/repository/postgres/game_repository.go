package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hanakm/rinkleague/internal/domain/game"
	qb "github.com/hanakm/rinkleague/internal/platform/querybuilder"
)

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) GetByID(ctx context.Context, orgID, gameID string) (game.Game, bool, error) {
	query, args, err := qb.Select("*").From("games").
		Where(
			qb.Eq("org_id", orgID),
			qb.Eq("public_id", gameID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return game.Game{}, false, fmt.Errorf("build select game query: %w", err)
	}

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, fmt.Errorf("select game: %w", err)
	}
	return gameFromTable(row), true, nil
}

func (r *GameRepository) ListByRound(ctx context.Context, orgID, roundID string) ([]game.Game, error) {
	return r.list(ctx, orgID, qb.Eq("round_public_id", roundID))
}

func (r *GameRepository) ListByRounds(ctx context.Context, orgID string, roundIDs []string) ([]game.Game, error) {
	if len(roundIDs) == 0 {
		return nil, nil
	}
	return r.list(ctx, orgID, qb.InStrings("round_public_id", roundIDs))
}

func (r *GameRepository) list(ctx context.Context, orgID string, scope qb.Condition) ([]game.Game, error) {
	query, args, err := qb.Select("*").From("games").
		Where(
			qb.Eq("org_id", orgID),
			scope,
			qb.IsNull("deleted_at"),
		).
		OrderBy("starts_at", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list games query: %w", err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameFromTable(row))
	}
	return out, nil
}

func (r *GameRepository) Create(ctx context.Context, orgID string, items []game.Game) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx create games: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		query, args, err := qb.InsertModel("games", gameInsertModel{
			PublicID:   item.ID,
			OrgID:      orgID,
			RoundID:    item.RoundID,
			HomeTeamID: item.HomeTeamID,
			AwayTeamID: item.AwayTeamID,
			Status:     game.NormalizeStatus(item.Status),
			StartsAt:   item.StartsAt.UTC(),
		}, "")
		if err != nil {
			return fmt.Errorf("build insert game query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("game %s already exists: %w", item.ID, err)
			}
			return fmt.Errorf("insert game %s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create games tx: %w", err)
	}
	return nil
}

// UpdateStatus writes the lifecycle fields together so a completed row never
// appears without its scores and finalized timestamp.
func (r *GameRepository) UpdateStatus(ctx context.Context, orgID string, item game.Game) error {
	query, args, err := qb.Update("games").
		Set("status", game.NormalizeStatus(item.Status)).
		Set("home_score", intPtrToNullInt32(item.HomeScore)).
		Set("away_score", intPtrToNullInt32(item.AwayScore)).
		Set("finalized_at", timePtrToNullTime(item.FinalizedAt)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("org_id", orgID),
			qb.Eq("public_id", item.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update game status query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update game %s status: %w", item.ID, err)
	}
	return nil
}

func (r *GameRepository) UpdateScores(ctx context.Context, orgID, gameID string, homeScore, awayScore *int) error {
	query, args, err := qb.Update("games").
		Set("home_score", intPtrToNullInt32(homeScore)).
		Set("away_score", intPtrToNullInt32(awayScore)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("org_id", orgID),
			qb.Eq("public_id", gameID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update game scores query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update game %s scores: %w", gameID, err)
	}
	return nil
}
