package division

import "context"

type Repository interface {
	GetByID(ctx context.Context, orgID, divisionID string) (Division, bool, error)
	ListBySeason(ctx context.Context, orgID, seasonID string) ([]Division, error)
}
