package player

import "context"

type Repository interface {
	GetByID(ctx context.Context, orgID, playerID string) (Player, bool, error)
	ListByIDs(ctx context.Context, orgID string, playerIDs []string) ([]Player, error)
}
