package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/hockey-league/external/jobqueue"
	"github.com/riskibarqy/hockey-league/external/rating"
	"github.com/riskibarqy/hockey-league/external/statsfeed"
	"github.com/riskibarqy/hockey-league/internal/config"
	"github.com/riskibarqy/hockey-league/internal/domain/category"
	"github.com/riskibarqy/hockey-league/internal/domain/matchup"
	"github.com/riskibarqy/hockey-league/internal/domain/season"
	"github.com/riskibarqy/hockey-league/internal/domain/statline"
	"github.com/riskibarqy/hockey-league/internal/domain/team"
	cacherepo "github.com/riskibarqy/hockey-league/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/hockey-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/hockey-league/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/hockey-league/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/hockey-league/internal/platform/cache"
	idgen "github.com/riskibarqy/hockey-league/internal/platform/id"
	"github.com/riskibarqy/hockey-league/internal/platform/logging"
	"github.com/riskibarqy/hockey-league/internal/platform/resilience"
	"github.com/riskibarqy/hockey-league/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

// App bundles the wired pipeline: repositories, services, the HTTP server,
// and the optional QStash scheduler. Close releases the database handle.
type App struct {
	Server       *http.Server
	Orchestrator *usecase.JobOrchestratorService
	Scheduler    *jobqueue.Scheduler
	DB           *sqlx.DB
}

type repositories struct {
	seasons  season.Repository
	teams    team.Repository
	stats    statline.Repository
	matchups matchup.Repository
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, repos, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, err
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.seasons = cacherepo.NewSeasonRepository(repos.seasons, store)
		repos.teams = cacherepo.NewTeamRepository(repos.teams, store)
	}

	feedClient := statsfeed.NewClient(statsfeed.ClientConfig{
		BaseURL:    cfg.StatsFeedBaseURL,
		Token:      cfg.StatsFeedToken,
		Timeout:    cfg.StatsFeedTimeout,
		MaxRetries: cfg.StatsFeedMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.StatsFeedCircuitEnabled,
			FailureThreshold: cfg.StatsFeedCircuitFailureCount,
			OpenTimeout:      cfg.StatsFeedCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.StatsFeedCircuitHalfOpenMaxReq,
		},
	})
	rater := rating.NewRater()
	optimizer := rating.NewOptimizer()
	table := category.DefaultTable()

	contextSvc := usecase.NewSeasonContextService(repos.seasons, repos.teams, logger)
	teamDaySvc := usecase.NewTeamDayService(table, rater, logger)
	dailySync := usecase.NewDailySyncService(contextSvc, teamDaySvc, feedClient, optimizer, rater, repos.stats, logger)
	rollup := usecase.NewWeekRollupService(contextSvc, repos.stats, table, rater, logger)
	matchups := usecase.NewMatchupService(contextSvc, repos.matchups, repos.stats, table, cfg.GoalieStartMinimum, logger)
	backfill := usecase.NewBackfillService(repos.seasons, dailySync, rollup, matchups, cfg.BackfillWorkers, logger)

	windows, err := usecase.ParseJobWindows(cfg.JobWindows)
	if err != nil {
		return nil, fmt.Errorf("parse JOB_WINDOWS: %w", err)
	}
	location, err := time.LoadLocation(cfg.JobTimezone)
	if err != nil {
		return nil, fmt.Errorf("load JOB_TIMEZONE: %w", err)
	}

	orchestrator := usecase.NewJobOrchestratorService(
		dailySync, rollup, matchups, backfill, contextSvc, windows, location, logger)
	statsQuery := usecase.NewStatsQueryService(repos.seasons, repos.stats, repos.matchups)

	var scheduler *jobqueue.Scheduler
	if cfg.QStashEnabled {
		publisher := jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
			BaseURL:          cfg.QStashBaseURL,
			Token:            cfg.QStashToken,
			TargetBaseURL:    cfg.QStashTargetBaseURL,
			Retries:          cfg.QStashRetries,
			InternalJobToken: cfg.InternalJobToken,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.QStashCircuitEnabled,
				FailureThreshold: cfg.QStashCircuitFailureCount,
				OpenTimeout:      cfg.QStashCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.QStashCircuitHalfOpenMaxReq,
			},
		}, logger)
		scheduler = jobqueue.NewScheduler(publisher)
	}

	handler := httpapi.NewHandler(orchestrator, statsQuery, logger)
	router := httpapi.NewRouter(handler, logger, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{
		Server:       server,
		Orchestrator: orchestrator,
		Scheduler:    scheduler,
		DB:           db,
	}, nil
}

func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

// buildRepositories connects to Postgres and builds the repository set on
// top of it. When the database is unreachable outside prod, the app falls
// back to seeded in-memory repositories so the pipeline stays runnable on a
// laptop.
func buildRepositories(cfg config.Config, logger *logging.Logger) (*sqlx.DB, repositories, error) {
	db, err := openDB(cfg)
	if err != nil {
		if cfg.AppEnv == config.EnvProd {
			return nil, repositories{}, fmt.Errorf("connect database: %w", err)
		}
		logger.Warn("database unavailable, using seeded in-memory repositories", "error", err)
		return nil, repositories{
			seasons:  memory.NewSeasonRepository(memory.SeedSeasons(), memory.SeedWeeks()),
			teams:    memory.NewTeamRepository(memory.SeedTeams()),
			stats:    memory.NewStatlineRepository(),
			matchups: memory.NewMatchupRepository(memory.SeedMatchups(), idgen.NewRandomGenerator()),
		}, nil
	}

	return db, repositories{
		seasons:  postgres.NewSeasonRepository(db),
		teams:    postgres.NewTeamRepository(db),
		stats:    postgres.NewStatlineRepository(db),
		matchups: postgres.NewMatchupRepository(db, idgen.NewRandomGenerator()),
	}, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dbURL,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
