package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hanakm/rinkleague/internal/domain/division"
	"github.com/hanakm/rinkleague/internal/domain/round"
	"github.com/hanakm/rinkleague/internal/domain/season"
	qb "github.com/hanakm/rinkleague/internal/platform/querybuilder"
)

type SeasonRepository struct {
	db *sqlx.DB
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) GetByID(ctx context.Context, orgID, seasonID string) (season.Season, bool, error) {
	query, args, err := qb.Select("*").From("seasons").
		Where(
			qb.Eq("org_id", orgID),
			qb.Eq("public_id", seasonID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return season.Season{}, false, fmt.Errorf("build select season query: %w", err)
	}

	var row seasonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.Season{}, false, nil
		}
		return season.Season{}, false, fmt.Errorf("select season: %w", err)
	}
	return seasonFromTable(row), true, nil
}

func (r *SeasonRepository) ListByOrg(ctx context.Context, orgID string) ([]season.Season, error) {
	query, args, err := qb.Select("*").From("seasons").
		Where(
			qb.Eq("org_id", orgID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("starts_at DESC", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list seasons query: %w", err)
	}

	var rows []seasonTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}

	out := make([]season.Season, 0, len(rows))
	for _, row := range rows {
		out = append(out, seasonFromTable(row))
	}
	return out, nil
}

func seasonFromTable(row seasonTableModel) season.Season {
	return season.Season{
		ID:       row.PublicID,
		OrgID:    row.OrgID,
		Name:     row.Name,
		StartsAt: row.StartsAt,
		EndsAt:   row.EndsAt,
	}
}

type DivisionRepository struct {
	db *sqlx.DB
}

func NewDivisionRepository(db *sqlx.DB) *DivisionRepository {
	return &DivisionRepository{db: db}
}

func (r *DivisionRepository) GetByID(ctx context.Context, orgID, divisionID string) (division.Division, bool, error) {
	query, args, err := qb.Select("*").From("divisions").
		Where(
			qb.Eq("org_id", orgID),
			qb.Eq("public_id", divisionID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return division.Division{}, false, fmt.Errorf("build select division query: %w", err)
	}

	var row divisionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return division.Division{}, false, nil
		}
		return division.Division{}, false, fmt.Errorf("select division: %w", err)
	}
	return divisionFromTable(row), true, nil
}

func (r *DivisionRepository) ListBySeason(ctx context.Context, orgID, seasonID string) ([]division.Division, error) {
	query, args, err := qb.Select("*").From("divisions").
		Where(
			qb.Eq("org_id", orgID),
			qb.Eq("season_public_id", seasonID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("name", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list divisions query: %w", err)
	}

	var rows []divisionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list divisions: %w", err)
	}

	out := make([]division.Division, 0, len(rows))
	for _, row := range rows {
		out = append(out, divisionFromTable(row))
	}
	return out, nil
}

func divisionFromTable(row divisionTableModel) division.Division {
	return division.Division{
		ID:             row.PublicID,
		OrgID:          row.OrgID,
		SeasonID:       row.SeasonID,
		Name:           row.Name,
		GoalieMinGames: row.GoalieMinGames,
	}
}

type RoundRepository struct {
	db *sqlx.DB
}

func NewRoundRepository(db *sqlx.DB) *RoundRepository {
	return &RoundRepository{db: db}
}

func (r *RoundRepository) GetByID(ctx context.Context, orgID, roundID string) (round.Round, bool, error) {
	query, args, err := qb.Select("*").From("rounds").
		Where(
			qb.Eq("org_id", orgID),
			qb.Eq("public_id", roundID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return round.Round{}, false, fmt.Errorf("build select round query: %w", err)
	}

	var row roundTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return round.Round{}, false, nil
		}
		return round.Round{}, false, fmt.Errorf("select round: %w", err)
	}
	return roundFromTable(row), true, nil
}

func (r *RoundRepository) ListByDivision(ctx context.Context, orgID, divisionID string) ([]round.Round, error) {
	query, args, err := qb.Select("*").From("rounds").
		Where(
			qb.Eq("org_id", orgID),
			qb.Eq("division_public_id", divisionID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("name", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list rounds by division query: %w", err)
	}

	var rows []roundTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list rounds by division: %w", err)
	}

	out := make([]round.Round, 0, len(rows))
	for _, row := range rows {
		out = append(out, roundFromTable(row))
	}
	return out, nil
}

func (r *RoundRepository) ListBySeason(ctx context.Context, orgID, seasonID string) ([]round.Round, error) {
	query, args, err := qb.Select("r.*").From("rounds r").
		Where(
			qb.Eq("r.org_id", orgID),
			qb.Expr("r.division_public_id IN (SELECT public_id FROM divisions WHERE org_id = ? AND season_public_id = ? AND deleted_at IS NULL)", orgID, seasonID),
			qb.IsNull("r.deleted_at"),
		).
		OrderBy("r.name", "r.public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list rounds by season query: %w", err)
	}

	var rows []roundTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list rounds by season: %w", err)
	}

	out := make([]round.Round, 0, len(rows))
	for _, row := range rows {
		out = append(out, roundFromTable(row))
	}
	return out, nil
}

func (r *RoundRepository) Update(ctx context.Context, orgID string, item round.Round) error {
	query, args, err := qb.Update("rounds").
		Set("name", item.Name).
		Set("points_win", item.PointsWin).
		Set("points_draw", item.PointsDraw).
		Set("points_loss", item.PointsLoss).
		Set("counts_for_player_stats", item.CountsForPlayerStats).
		Set("counts_for_goalie_stats", item.CountsForGoalieStats).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("org_id", orgID),
			qb.Eq("public_id", item.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update round query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update round %s: %w", item.ID, err)
	}
	return nil
}

func roundFromTable(row roundTableModel) round.Round {
	return round.Round{
		ID:                   row.PublicID,
		OrgID:                row.OrgID,
		DivisionID:           row.DivisionID,
		Name:                 row.Name,
		PointsWin:            row.PointsWin,
		PointsDraw:           row.PointsDraw,
		PointsLoss:           row.PointsLoss,
		CountsForPlayerStats: row.CountsForPlayerStats,
		CountsForGoalieStats: row.CountsForGoalieStats,
	}
}
