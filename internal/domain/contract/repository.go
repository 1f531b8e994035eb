package contract

import "context"

type Repository interface {
	GetByPlayerAndTeam(ctx context.Context, orgID, playerID, teamID string) (Contract, bool, error)
	ListByTeams(ctx context.Context, orgID string, teamIDs []string) ([]Contract, error)
}
