package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hanakm/rinkleague/internal/domain/standing"
	qb "github.com/hanakm/rinkleague/internal/platform/querybuilder"
)

type StandingRepository struct {
	db *sqlx.DB
}

func NewStandingRepository(db *sqlx.DB) *StandingRepository {
	return &StandingRepository{db: db}
}

func (r *StandingRepository) ListByRound(ctx context.Context, orgID, roundID string) ([]standing.Standing, error) {
	query, args, err := qb.Select("*").From("standings").
		Where(
			qb.Eq("org_id", orgID),
			qb.Eq("round_public_id", roundID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("rank", "team_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list standings query: %w", err)
	}

	var rows []standingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list standings: %w", err)
	}

	out := make([]standing.Standing, 0, len(rows))
	for _, row := range rows {
		out = append(out, standingFromTable(row))
	}
	return out, nil
}

// ReplaceByRound soft-deletes the round's rows and upserts the fresh set in
// one transaction, so a concurrent reader sees either the old table or the
// new one, never a mix.
func (r *StandingRepository) ReplaceByRound(ctx context.Context, orgID, roundID string, items []standing.Standing) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace standings: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.Update("standings").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("org_id", orgID),
			qb.Eq("round_public_id", roundID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear standings query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear standings round=%s: %w", roundID, err)
	}

	for _, item := range items {
		query, args, err := qb.InsertModel("standings", standingInsertModel{
			OrgID:          orgID,
			RoundID:        roundID,
			TeamID:         item.TeamID,
			GamesPlayed:    item.GamesPlayed,
			Wins:           item.Wins,
			Draws:          item.Draws,
			Losses:         item.Losses,
			GoalsFor:       item.GoalsFor,
			GoalsAgainst:   item.GoalsAgainst,
			GoalDifference: item.GoalDifference,
			Points:         item.Points,
			BonusPoints:    item.BonusPoints,
			TotalPoints:    item.TotalPoints,
			Rank:           item.Rank,
			PreviousRank:   intPtrToNullInt32(item.PreviousRank),
		}, `ON CONFLICT (org_id, round_public_id, team_public_id) WHERE deleted_at IS NULL
DO UPDATE SET
    games_played = EXCLUDED.games_played,
    wins = EXCLUDED.wins,
    draws = EXCLUDED.draws,
    losses = EXCLUDED.losses,
    goals_for = EXCLUDED.goals_for,
    goals_against = EXCLUDED.goals_against,
    goal_difference = EXCLUDED.goal_difference,
    points = EXCLUDED.points,
    bonus_points = EXCLUDED.bonus_points,
    total_points = EXCLUDED.total_points,
    rank = EXCLUDED.rank,
    previous_rank = EXCLUDED.previous_rank,
    updated_at = NOW(),
    deleted_at = NULL`)
		if err != nil {
			return fmt.Errorf("build upsert standing query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert standing team=%s: %w", item.TeamID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace standings tx: %w", err)
	}
	return nil
}

type BonusPointRepository struct {
	db *sqlx.DB
}

func NewBonusPointRepository(db *sqlx.DB) *BonusPointRepository {
	return &BonusPointRepository{db: db}
}

func (r *BonusPointRepository) GetByID(ctx context.Context, orgID, bonusID string) (standing.BonusPoint, bool, error) {
	query, args, err := qb.Select("*").From("bonus_points").
		Where(
			qb.Eq("org_id", orgID),
			qb.Eq("public_id", bonusID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return standing.BonusPoint{}, false, fmt.Errorf("build select bonus point query: %w", err)
	}

	var row bonusPointTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return standing.BonusPoint{}, false, nil
		}
		return standing.BonusPoint{}, false, fmt.Errorf("select bonus point: %w", err)
	}
	return bonusPointFromTable(row), true, nil
}

func (r *BonusPointRepository) ListByRound(ctx context.Context, orgID, roundID string) ([]standing.BonusPoint, error) {
	query, args, err := qb.Select("*").From("bonus_points").
		Where(
			qb.Eq("org_id", orgID),
			qb.Eq("round_public_id", roundID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("team_public_id", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list bonus points query: %w", err)
	}

	var rows []bonusPointTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list bonus points: %w", err)
	}

	out := make([]standing.BonusPoint, 0, len(rows))
	for _, row := range rows {
		out = append(out, bonusPointFromTable(row))
	}
	return out, nil
}

func (r *BonusPointRepository) Create(ctx context.Context, orgID string, item standing.BonusPoint) error {
	query, args, err := qb.InsertModel("bonus_points", bonusPointInsertModel{
		PublicID: item.ID,
		OrgID:    orgID,
		RoundID:  item.RoundID,
		TeamID:   item.TeamID,
		Points:   item.Points,
		Reason:   item.Reason,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert bonus point query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("bonus point %s already exists: %w", item.ID, err)
		}
		return fmt.Errorf("insert bonus point %s: %w", item.ID, err)
	}
	return nil
}

func (r *BonusPointRepository) Update(ctx context.Context, orgID string, item standing.BonusPoint) error {
	query, args, err := qb.Update("bonus_points").
		Set("points", item.Points).
		Set("reason", item.Reason).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("org_id", orgID),
			qb.Eq("public_id", item.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update bonus point query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update bonus point %s: %w", item.ID, err)
	}
	return nil
}

func (r *BonusPointRepository) Delete(ctx context.Context, orgID, bonusID string) error {
	query, args, err := qb.Update("bonus_points").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("org_id", orgID),
			qb.Eq("public_id", bonusID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete bonus point query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete bonus point %s: %w", bonusID, err)
	}
	return nil
}
