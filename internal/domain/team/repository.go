package team

import "context"

type Repository interface {
	GetByID(ctx context.Context, orgID, teamID string) (Team, bool, error)
	ListByOrg(ctx context.Context, orgID string) ([]Team, error)
}
