package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/hanakm/rinkleague/internal/config"
	"github.com/hanakm/rinkleague/internal/domain/contract"
	"github.com/hanakm/rinkleague/internal/domain/division"
	"github.com/hanakm/rinkleague/internal/domain/game"
	"github.com/hanakm/rinkleague/internal/domain/player"
	"github.com/hanakm/rinkleague/internal/domain/round"
	"github.com/hanakm/rinkleague/internal/domain/season"
	"github.com/hanakm/rinkleague/internal/domain/seasonstats"
	"github.com/hanakm/rinkleague/internal/domain/standing"
	"github.com/hanakm/rinkleague/internal/domain/team"
	cacherepo "github.com/hanakm/rinkleague/internal/infrastructure/repository/cache"
	"github.com/hanakm/rinkleague/internal/infrastructure/repository/memory"
	"github.com/hanakm/rinkleague/internal/infrastructure/repository/postgres"
	"github.com/hanakm/rinkleague/internal/interfaces/httpapi"
	"github.com/hanakm/rinkleague/internal/platform/cache"
	idgen "github.com/hanakm/rinkleague/internal/platform/id"
	"github.com/hanakm/rinkleague/internal/platform/logging"
	"github.com/hanakm/rinkleague/internal/usecase"
)

type repositories struct {
	seasons        season.Repository
	divisions      division.Repository
	rounds         round.Repository
	teams          team.Repository
	players        player.Repository
	contracts      contract.Repository
	games          game.Repository
	events         game.EventRepository
	lineups        game.LineupRepository
	suspensions    game.SuspensionRepository
	standings      standing.Repository
	bonusPoints    standing.BonusPointRepository
	playerStats    seasonstats.PlayerStatRepository
	goalieStats    seasonstats.GoalieStatRepository
	goalieGameRows seasonstats.GoalieGameStatRepository
}

func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	if cfg.CacheEnabled {
		store := cache.NewStore(cfg.CacheTTL)
		repos.seasons = cacherepo.NewSeasonRepository(repos.seasons, store)
		repos.divisions = cacherepo.NewDivisionRepository(repos.divisions, store)
		repos.rounds = cacherepo.NewRoundRepository(repos.rounds, store)
	}

	idGen := idgen.NewRandomGenerator()

	standingsSvc := usecase.NewStandingsService(repos.rounds, repos.games, repos.standings, repos.bonusPoints)
	playerStatsSvc := usecase.NewPlayerStatsService(repos.seasons, repos.rounds, repos.games, repos.events, repos.lineups, repos.contracts, repos.playerStats)
	goalieStatsSvc := usecase.NewGoalieStatsService(repos.seasons, repos.divisions, repos.rounds, repos.games, repos.events, repos.lineups, repos.goalieGameRows, repos.goalieStats)
	penaltyStatsSvc := usecase.NewPenaltyStatsService(repos.seasons, repos.rounds, repos.games, repos.events, cache.NewStore(cfg.CacheTTL))
	gameSvc := usecase.NewGameService(repos.rounds, repos.divisions, repos.games, repos.events, repos.lineups, repos.suspensions, repos.players, standingsSvc, playerStatsSvc, goalieStatsSvc, penaltyStatsSvc, idGen, logger)
	roundSvc := usecase.NewRoundService(repos.rounds, repos.divisions, standingsSvc, playerStatsSvc, goalieStatsSvc, penaltyStatsSvc)
	scheduleSvc := usecase.NewScheduleService(repos.rounds, repos.teams, repos.games, idGen)
	bonusSvc := usecase.NewBonusPointService(repos.rounds, repos.bonusPoints, standingsSvc, idGen)
	recalcSvc := usecase.NewRecalcService(repos.seasons, repos.divisions, repos.rounds, standingsSvc, playerStatsSvc, goalieStatsSvc, penaltyStatsSvc)
	if cfg.RecalcMaxWorkers > 0 {
		recalcSvc.SetDefaultWorkers(cfg.RecalcMaxWorkers)
	}

	handler := httpapi.NewHandler(
		standingsSvc,
		playerStatsSvc,
		goalieStatsSvc,
		penaltyStatsSvc,
		gameSvc,
		roundSvc,
		scheduleSvc,
		bonusSvc,
		recalcSvc,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		logger.Info("storage driver selected", "driver", config.StorageMemory)
		return memoryRepositories(), nil
	case config.StoragePostgres:
		return postgresRepositories(ctx, cfg, logger)
	default:
		return repositories{}, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

func memoryRepositories() repositories {
	return repositories{
		seasons:        memory.NewSeasonRepository(memory.SeedSeasons()),
		divisions:      memory.NewDivisionRepository(memory.SeedDivisions()),
		rounds:         memory.NewRoundRepository(memory.SeedRounds(), memory.SeedDivisions()),
		teams:          memory.NewTeamRepository(memory.SeedTeams()),
		players:        memory.NewPlayerRepository(memory.SeedPlayers()),
		contracts:      memory.NewContractRepository(memory.SeedContracts()),
		games:          memory.NewGameRepository(memory.SeedGames()),
		events:         memory.NewEventRepository(nil),
		lineups:        memory.NewLineupRepository(nil),
		suspensions:    memory.NewSuspensionRepository(nil),
		standings:      memory.NewStandingRepository(),
		bonusPoints:    memory.NewBonusPointRepository(nil),
		playerStats:    memory.NewPlayerStatRepository(),
		goalieStats:    memory.NewGoalieStatRepository(),
		goalieGameRows: memory.NewGoalieGameStatRepository(),
	}
}

func postgresRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return repositories{}, fmt.Errorf("connect database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if cfg.SeedDemoData {
		if err := postgres.BootstrapSeed(ctx, db); err != nil {
			return repositories{}, fmt.Errorf("bootstrap seed: %w", err)
		}
		logger.Info("demo seed ensured", "database", dbNameFromURL(dsn))
	}

	logger.Info("storage driver selected", "driver", config.StoragePostgres, "database", dbNameFromURL(dsn))

	return postgresRepositorySet(db), nil
}

func postgresRepositorySet(db *sqlx.DB) repositories {
	return repositories{
		seasons:        postgres.NewSeasonRepository(db),
		divisions:      postgres.NewDivisionRepository(db),
		rounds:         postgres.NewRoundRepository(db),
		teams:          postgres.NewTeamRepository(db),
		players:        postgres.NewPlayerRepository(db),
		contracts:      postgres.NewContractRepository(db),
		games:          postgres.NewGameRepository(db),
		events:         postgres.NewEventRepository(db),
		lineups:        postgres.NewLineupRepository(db),
		suspensions:    postgres.NewSuspensionRepository(db),
		standings:      postgres.NewStandingRepository(db),
		bonusPoints:    postgres.NewBonusPointRepository(db),
		playerStats:    postgres.NewPlayerStatRepository(db),
		goalieStats:    postgres.NewGoalieStatRepository(db),
		goalieGameRows: postgres.NewGoalieGameStatRepository(db),
	}
}
