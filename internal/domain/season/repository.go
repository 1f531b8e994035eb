package season

import "context"

type Repository interface {
	GetByID(ctx context.Context, orgID, seasonID string) (Season, bool, error)
	ListByOrg(ctx context.Context, orgID string) ([]Season, error)
}
