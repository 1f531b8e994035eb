package standing

import "context"

type Repository interface {
	ListByRound(ctx context.Context, orgID, roundID string) ([]Standing, error)
	// ReplaceByRound swaps the full set of rows for the round inside one
	// transaction so readers never observe a half-written table.
	ReplaceByRound(ctx context.Context, orgID, roundID string, items []Standing) error
}

type BonusPointRepository interface {
	GetByID(ctx context.Context, orgID, bonusID string) (BonusPoint, bool, error)
	ListByRound(ctx context.Context, orgID, roundID string) ([]BonusPoint, error)
	Create(ctx context.Context, orgID string, item BonusPoint) error
	Update(ctx context.Context, orgID string, item BonusPoint) error
	Delete(ctx context.Context, orgID, bonusID string) error
}
