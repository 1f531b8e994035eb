package seasonstats

import "context"

type PlayerStatRepository interface {
	ListBySeason(ctx context.Context, orgID, seasonID string) ([]PlayerSeasonStat, error)
	// ReplaceBySeason swaps every row of the season inside one transaction.
	ReplaceBySeason(ctx context.Context, orgID, seasonID string, items []PlayerSeasonStat) error
}

type GoalieStatRepository interface {
	ListBySeason(ctx context.Context, orgID, seasonID string) ([]GoalieSeasonStat, error)
	ReplaceBySeason(ctx context.Context, orgID, seasonID string, items []GoalieSeasonStat) error
}

type GoalieGameStatRepository interface {
	ListByGames(ctx context.Context, orgID string, gameIDs []string) ([]GoalieGameStat, error)
	ReplaceByGame(ctx context.Context, orgID, gameID string, items []GoalieGameStat) error
	DeleteByGame(ctx context.Context, orgID, gameID string) error
}
