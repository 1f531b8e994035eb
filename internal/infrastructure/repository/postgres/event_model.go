package postgres

import (
	"database/sql"
	"time"

	"github.com/hanakm/rinkleague/internal/domain/game"
)

type eventTableModel struct {
	ID              int64          `db:"id"`
	PublicID        string         `db:"public_id"`
	OrgID           string         `db:"org_id"`
	GameID          string         `db:"game_public_id"`
	TeamID          string         `db:"team_public_id"`
	EventType       string         `db:"event_type"`
	Period          int            `db:"period"`
	Minute          int            `db:"minute"`
	ScorerID        sql.NullString `db:"scorer_public_id"`
	Assist1ID       sql.NullString `db:"assist1_public_id"`
	Assist2ID       sql.NullString `db:"assist2_public_id"`
	PenaltyPlayerID sql.NullString `db:"penalty_player_public_id"`
	PenaltyMinutes  int            `db:"penalty_minutes"`
	PenaltyTypeID   sql.NullString `db:"penalty_type_id"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
	DeletedAt       *time.Time     `db:"deleted_at"`
}

type eventInsertModel struct {
	PublicID        string         `db:"public_id"`
	OrgID           string         `db:"org_id"`
	GameID          string         `db:"game_public_id"`
	TeamID          string         `db:"team_public_id"`
	EventType       string         `db:"event_type"`
	Period          int            `db:"period"`
	Minute          int            `db:"minute"`
	ScorerID        sql.NullString `db:"scorer_public_id"`
	Assist1ID       sql.NullString `db:"assist1_public_id"`
	Assist2ID       sql.NullString `db:"assist2_public_id"`
	PenaltyPlayerID sql.NullString `db:"penalty_player_public_id"`
	PenaltyMinutes  int            `db:"penalty_minutes"`
	PenaltyTypeID   sql.NullString `db:"penalty_type_id"`
}

func eventInsertFromDomain(orgID string, item game.Event) eventInsertModel {
	return eventInsertModel{
		PublicID:        item.ID,
		OrgID:           orgID,
		GameID:          item.GameID,
		TeamID:          item.TeamID,
		EventType:       item.EventType,
		Period:          item.Period,
		Minute:          item.Minute,
		ScorerID:        strPtrToNullString(item.ScorerID),
		Assist1ID:       strPtrToNullString(item.Assist1ID),
		Assist2ID:       strPtrToNullString(item.Assist2ID),
		PenaltyPlayerID: strPtrToNullString(item.PenaltyPlayerID),
		PenaltyMinutes:  item.PenaltyMinutes,
		PenaltyTypeID:   strPtrToNullString(item.PenaltyTypeID),
	}
}

func eventFromTable(row eventTableModel) game.Event {
	return game.Event{
		ID:              row.PublicID,
		OrgID:           row.OrgID,
		GameID:          row.GameID,
		TeamID:          row.TeamID,
		EventType:       row.EventType,
		Period:          row.Period,
		Minute:          row.Minute,
		ScorerID:        nullStringToPtr(row.ScorerID),
		Assist1ID:       nullStringToPtr(row.Assist1ID),
		Assist2ID:       nullStringToPtr(row.Assist2ID),
		PenaltyPlayerID: nullStringToPtr(row.PenaltyPlayerID),
		PenaltyMinutes:  row.PenaltyMinutes,
		PenaltyTypeID:   nullStringToPtr(row.PenaltyTypeID),
	}
}
