package game

import "context"

type Repository interface {
	GetByID(ctx context.Context, orgID, gameID string) (Game, bool, error)
	ListByRound(ctx context.Context, orgID, roundID string) ([]Game, error)
	ListByRounds(ctx context.Context, orgID string, roundIDs []string) ([]Game, error)
	Create(ctx context.Context, orgID string, items []Game) error
	UpdateStatus(ctx context.Context, orgID string, item Game) error
	UpdateScores(ctx context.Context, orgID, gameID string, homeScore, awayScore *int) error
}

type EventRepository interface {
	GetByID(ctx context.Context, orgID, eventID string) (Event, bool, error)
	ListByGame(ctx context.Context, orgID, gameID string) ([]Event, error)
	ListByGames(ctx context.Context, orgID string, gameIDs []string) ([]Event, error)
	Create(ctx context.Context, orgID string, item Event) error
	Update(ctx context.Context, orgID string, item Event) error
	Delete(ctx context.Context, orgID, eventID string) error
	DeleteByGame(ctx context.Context, orgID, gameID string) error
}

type LineupRepository interface {
	ListByGame(ctx context.Context, orgID, gameID string) ([]LineupEntry, error)
	ListByGames(ctx context.Context, orgID string, gameIDs []string) ([]LineupEntry, error)
	ReplaceByGameAndTeam(ctx context.Context, orgID, gameID, teamID string, entries []LineupEntry) error
}

type SuspensionRepository interface {
	ListByTeams(ctx context.Context, orgID string, teamIDs []string) ([]Suspension, error)
	Create(ctx context.Context, orgID string, item Suspension) error
	// AdjustServed applies delta to served_games for every listed suspension,
	// clamping at zero, as one set-based statement.
	AdjustServed(ctx context.Context, orgID string, suspensionIDs []string, delta int) error
	DeleteByOriginEvent(ctx context.Context, orgID, eventID string) error
}
