package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hanakm/rinkleague/internal/domain/game"
	qb "github.com/hanakm/rinkleague/internal/platform/querybuilder"
)

type EventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) GetByID(ctx context.Context, orgID, eventID string) (game.Event, bool, error) {
	query, args, err := qb.Select("*").From("game_events").
		Where(
			qb.Eq("org_id", orgID),
			qb.Eq("public_id", eventID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return game.Event{}, false, fmt.Errorf("build select event query: %w", err)
	}

	var row eventTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.Event{}, false, nil
		}
		return game.Event{}, false, fmt.Errorf("select event: %w", err)
	}
	return eventFromTable(row), true, nil
}

func (r *EventRepository) ListByGame(ctx context.Context, orgID, gameID string) ([]game.Event, error) {
	return r.list(ctx, orgID, qb.Eq("game_public_id", gameID))
}

func (r *EventRepository) ListByGames(ctx context.Context, orgID string, gameIDs []string) ([]game.Event, error) {
	if len(gameIDs) == 0 {
		return nil, nil
	}
	return r.list(ctx, orgID, qb.InStrings("game_public_id", gameIDs))
}

func (r *EventRepository) list(ctx context.Context, orgID string, scope qb.Condition) ([]game.Event, error) {
	query, args, err := qb.Select("*").From("game_events").
		Where(
			qb.Eq("org_id", orgID),
			scope,
			qb.IsNull("deleted_at"),
		).
		OrderBy("game_public_id", "period", "minute", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list events query: %w", err)
	}

	var rows []eventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	out := make([]game.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, eventFromTable(row))
	}
	return out, nil
}

func (r *EventRepository) Create(ctx context.Context, orgID string, item game.Event) error {
	query, args, err := qb.InsertModel("game_events", eventInsertFromDomain(orgID, item), "")
	if err != nil {
		return fmt.Errorf("build insert event query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("event %s already exists: %w", item.ID, err)
		}
		return fmt.Errorf("insert event %s: %w", item.ID, err)
	}
	return nil
}

func (r *EventRepository) Update(ctx context.Context, orgID string, item game.Event) error {
	query, args, err := qb.Update("game_events").
		Set("team_public_id", item.TeamID).
		Set("event_type", item.EventType).
		Set("period", item.Period).
		Set("minute", item.Minute).
		Set("scorer_public_id", strPtrToNullString(item.ScorerID)).
		Set("assist1_public_id", strPtrToNullString(item.Assist1ID)).
		Set("assist2_public_id", strPtrToNullString(item.Assist2ID)).
		Set("penalty_player_public_id", strPtrToNullString(item.PenaltyPlayerID)).
		Set("penalty_minutes", item.PenaltyMinutes).
		Set("penalty_type_id", strPtrToNullString(item.PenaltyTypeID)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("org_id", orgID),
			qb.Eq("public_id", item.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update event query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update event %s: %w", item.ID, err)
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, orgID, eventID string) error {
	query, args, err := qb.Update("game_events").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("org_id", orgID),
			qb.Eq("public_id", eventID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete event query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete event %s: %w", eventID, err)
	}
	return nil
}

func (r *EventRepository) DeleteByGame(ctx context.Context, orgID, gameID string) error {
	query, args, err := qb.Update("game_events").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("org_id", orgID),
			qb.Eq("game_public_id", gameID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete events by game query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete events by game %s: %w", gameID, err)
	}
	return nil
}
