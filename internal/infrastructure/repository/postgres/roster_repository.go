package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hanakm/rinkleague/internal/domain/contract"
	"github.com/hanakm/rinkleague/internal/domain/player"
	"github.com/hanakm/rinkleague/internal/domain/team"
	qb "github.com/hanakm/rinkleague/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetByID(ctx context.Context, orgID, teamID string) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(
			qb.Eq("org_id", orgID),
			qb.Eq("public_id", teamID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("select team: %w", err)
	}
	return teamFromTable(row), true, nil
}

func (r *TeamRepository) ListByOrg(ctx context.Context, orgID string) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(
			qb.Eq("org_id", orgID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("name", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromTable(row))
	}
	return out, nil
}

func teamFromTable(row teamTableModel) team.Team {
	return team.Team{
		ID:    row.PublicID,
		OrgID: row.OrgID,
		Name:  row.Name,
		Short: row.Short,
	}
}

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) GetByID(ctx context.Context, orgID, playerID string) (player.Player, bool, error) {
	query, args, err := qb.Select("*").From("players").
		Where(
			qb.Eq("org_id", orgID),
			qb.Eq("public_id", playerID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("select player: %w", err)
	}
	return playerFromTable(row), true, nil
}

// ListByIDs preserves the requested order; unknown ids are skipped.
func (r *PlayerRepository) ListByIDs(ctx context.Context, orgID string, playerIDs []string) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return nil, nil
	}

	query, args, err := qb.Select("*").From("players").
		Where(
			qb.Eq("org_id", orgID),
			qb.InStrings("public_id", playerIDs),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players by ids query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list players by ids: %w", err)
	}

	byID := make(map[string]player.Player, len(rows))
	for _, row := range rows {
		byID[row.PublicID] = playerFromTable(row)
	}
	out := make([]player.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		if item, ok := byID[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func playerFromTable(row playerTableModel) player.Player {
	return player.Player{
		ID:        row.PublicID,
		OrgID:     row.OrgID,
		FirstName: row.FirstName,
		LastName:  row.LastName,
		Number:    row.Number,
	}
}

type ContractRepository struct {
	db *sqlx.DB
}

func NewContractRepository(db *sqlx.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

func (r *ContractRepository) GetByPlayerAndTeam(ctx context.Context, orgID, playerID, teamID string) (contract.Contract, bool, error) {
	query, args, err := qb.Select("*").From("contracts").
		Where(
			qb.Eq("org_id", orgID),
			qb.Eq("player_public_id", playerID),
			qb.Eq("team_public_id", teamID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("valid_from DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return contract.Contract{}, false, fmt.Errorf("build select contract query: %w", err)
	}

	var row contractTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return contract.Contract{}, false, nil
		}
		return contract.Contract{}, false, fmt.Errorf("select contract: %w", err)
	}
	return contractFromTable(row), true, nil
}

func (r *ContractRepository) ListByTeams(ctx context.Context, orgID string, teamIDs []string) ([]contract.Contract, error) {
	if len(teamIDs) == 0 {
		return nil, nil
	}

	query, args, err := qb.Select("*").From("contracts").
		Where(
			qb.Eq("org_id", orgID),
			qb.InStrings("team_public_id", teamIDs),
			qb.IsNull("deleted_at"),
		).
		OrderBy("team_public_id", "player_public_id", "valid_from DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list contracts by teams query: %w", err)
	}

	var rows []contractTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list contracts by teams: %w", err)
	}

	out := make([]contract.Contract, 0, len(rows))
	for _, row := range rows {
		out = append(out, contractFromTable(row))
	}
	return out, nil
}

func contractFromTable(row contractTableModel) contract.Contract {
	return contract.Contract{
		ID:        row.PublicID,
		OrgID:     row.OrgID,
		PlayerID:  row.PlayerID,
		TeamID:    row.TeamID,
		Position:  row.Position,
		ValidFrom: row.ValidFrom,
		ValidTo:   nullTimeToTimePtr(row.ValidTo),
	}
}
