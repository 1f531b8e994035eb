package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hanakm/rinkleague/internal/domain/game"
	qb "github.com/hanakm/rinkleague/internal/platform/querybuilder"
)

type SuspensionRepository struct {
	db *sqlx.DB
}

func NewSuspensionRepository(db *sqlx.DB) *SuspensionRepository {
	return &SuspensionRepository{db: db}
}

func (r *SuspensionRepository) ListByTeams(ctx context.Context, orgID string, teamIDs []string) ([]game.Suspension, error) {
	if len(teamIDs) == 0 {
		return nil, nil
	}

	query, args, err := qb.Select("*").From("suspensions").
		Where(
			qb.Eq("org_id", orgID),
			qb.InStrings("team_public_id", teamIDs),
			qb.IsNull("deleted_at"),
		).
		OrderBy("team_public_id", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list suspensions query: %w", err)
	}

	var rows []suspensionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list suspensions: %w", err)
	}

	out := make([]game.Suspension, 0, len(rows))
	for _, row := range rows {
		out = append(out, suspensionFromTable(row))
	}
	return out, nil
}

func (r *SuspensionRepository) Create(ctx context.Context, orgID string, item game.Suspension) error {
	query, args, err := qb.InsertModel("suspensions", suspensionInsertModel{
		PublicID:       item.ID,
		OrgID:          orgID,
		TeamID:         item.TeamID,
		PlayerID:       item.PlayerID,
		OriginGameID:   strPtrToNullString(item.OriginGameID),
		OriginEventID:  strPtrToNullString(item.OriginEventID),
		SuspendedGames: item.SuspendedGames,
		ServedGames:    item.ServedGames,
		Reason:         item.Reason,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert suspension query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("suspension %s already exists: %w", item.ID, err)
		}
		return fmt.Errorf("insert suspension %s: %w", item.ID, err)
	}
	return nil
}

// AdjustServed moves served_games by delta for every listed suspension in one
// statement, clamped at zero so a reopen can never drive the counter negative.
func (r *SuspensionRepository) AdjustServed(ctx context.Context, orgID string, suspensionIDs []string, delta int) error {
	if len(suspensionIDs) == 0 {
		return nil
	}

	query, args, err := qb.Update("suspensions").
		SetExpr("served_games", "GREATEST(0, served_games + ?)", delta).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("org_id", orgID),
			qb.InStrings("public_id", suspensionIDs),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build adjust served games query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("adjust served games: %w", err)
	}
	return nil
}

func (r *SuspensionRepository) DeleteByOriginEvent(ctx context.Context, orgID, eventID string) error {
	query, args, err := qb.Update("suspensions").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("org_id", orgID),
			qb.Eq("origin_event_public_id", eventID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete suspensions by event query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete suspensions by event %s: %w", eventID, err)
	}
	return nil
}
