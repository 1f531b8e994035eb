package round

import "context"

type Repository interface {
	GetByID(ctx context.Context, orgID, roundID string) (Round, bool, error)
	ListByDivision(ctx context.Context, orgID, divisionID string) ([]Round, error)
	ListBySeason(ctx context.Context, orgID, seasonID string) ([]Round, error)
	Update(ctx context.Context, orgID string, item Round) error
}
