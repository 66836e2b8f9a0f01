package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/spl-fantasy/internal/config"
	"github.com/riskibarqy/spl-fantasy/internal/domain/club"
	"github.com/riskibarqy/spl-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/spl-fantasy/internal/domain/league"
	"github.com/riskibarqy/spl-fantasy/internal/domain/match"
	"github.com/riskibarqy/spl-fantasy/internal/domain/player"
	"github.com/riskibarqy/spl-fantasy/internal/domain/scoring"
	"github.com/riskibarqy/spl-fantasy/internal/infrastructure/account/identity"
	cacherepo "github.com/riskibarqy/spl-fantasy/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/spl-fantasy/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/spl-fantasy/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/spl-fantasy/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/spl-fantasy/internal/platform/cache"
	idgen "github.com/riskibarqy/spl-fantasy/internal/platform/id"
	"github.com/riskibarqy/spl-fantasy/internal/platform/logging"
	"github.com/riskibarqy/spl-fantasy/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
)

const dbPingTimeout = 5 * time.Second

// App owns the HTTP server and the resources behind it.
type App struct {
	Server *http.Server
	db     *sqlx.DB
}

// Close releases the database pool, if any.
func (a *App) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

type repositories struct {
	clubs   club.Repository
	players player.Repository
	matches match.Repository
	records scoring.Repository
	teams   fantasy.Repository
	leagues league.Repository
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	squadRules, err := fantasy.RulesForPolicy(cfg.SquadRulesPolicy, cfg.SquadBudget)
	if err != nil {
		return nil, fmt.Errorf("resolve squad rules: %w", err)
	}

	out := &App{}
	var repos repositories
	if cfg.DBEnabled {
		db, err := openDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		out.db = db
		if cfg.DBSeedOnStart {
			if err := postgres.BootstrapSeed(ctx, db); err != nil {
				_ = db.Close()
				return nil, fmt.Errorf("bootstrap seed: %w", err)
			}
		}
		repos = postgresRepositories(db)
		logger.Info("storage ready", "backend", "postgres", "db_name", dbNameFromURL(cfg.DBURL), "seeded", cfg.DBSeedOnStart)
	} else {
		repos = memoryRepositories()
		logger.Info("storage ready", "backend", "memory")
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.players = cacherepo.NewPlayerRepository(repos.players, store)
		repos.clubs = cacherepo.NewClubRepository(repos.clubs, store)
		repos.records = cacherepo.NewScoringRepository(repos.records, store)
		logger.Info("read cache enabled", "ttl", cfg.CacheTTL.String())
	}

	identityClient := identity.NewClient(identity.ClientConfig{
		HTTPClient:     &http.Client{Timeout: cfg.IdentityTimeout},
		BaseURL:        cfg.IdentityBaseURL,
		IntrospectPath: cfg.IdentityIntrospectPath,
		AdminKey:       cfg.IdentityAdminKey,
		CacheTTL:       cfg.IdentityCacheTTL,
		CircuitBreaker: cfg.IdentityCircuit,
		Logger:         logger,
	})

	handler := httpapi.NewHandler(
		usecase.NewPlayerService(repos.players),
		usecase.NewFixtureService(repos.clubs, repos.matches),
		usecase.NewSquadService(repos.players, repos.teams, repos.leagues, squadRules, idgen.NewPrefixedGenerator("team"), logger.Named("squad")),
		usecase.NewScoringService(repos.matches, repos.players, repos.records, repos.teams, scoring.DefaultRules(), cfg.ScoringWorkers, logger.Named("scoring")),
		usecase.NewLeagueService(repos.leagues, repos.teams, idgen.NewPrefixedGenerator("league"), logger.Named("league")),
		usecase.NewAdminService(repos.clubs, repos.players, repos.matches, idgen.NewUUIDGenerator(), logger.Named("admin")),
		logger,
	)
	routerOpts := []httpapi.RouterOption{httpapi.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst)}
	if cfg.MetricsEnabled {
		routerOpts = append(routerOpts, httpapi.WithMetrics(httpapi.NewMetrics()))
	}
	router := httpapi.NewRouter(handler, identityClient, logger, cfg.CORSAllowedOrigins, routerOpts...)

	out.Server = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}
	if out.Server.Addr == "" {
		_ = out.Close()
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	logger.Info("squad rules loaded",
		"policy", string(squadRules.Policy),
		"budget", player.FormatPrice(squadRules.Budget),
		"scoring_workers", cfg.ScoringWorkers,
	)
	return out, nil
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres",
		normalizeDBURL(cfg.DBURL, cfg.ServiceName, cfg.DBBinaryParameters),
		otelsql.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("db.name", dbNameFromURL(cfg.DBURL)),
		),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxOpenConns / 2)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

func postgresRepositories(db *sqlx.DB) repositories {
	return repositories{
		clubs:   postgres.NewClubRepository(db),
		players: postgres.NewPlayerRepository(db),
		matches: postgres.NewMatchRepository(db),
		records: postgres.NewScoringRepository(db),
		teams:   postgres.NewTeamRepository(db),
		leagues: postgres.NewLeagueRepository(db),
	}
}

func memoryRepositories() repositories {
	players := memory.NewPlayerRepository(memory.SeedPlayers())
	teams := memory.NewTeamRepository()
	return repositories{
		clubs:   memory.NewClubRepository(memory.SeedClubs()),
		players: players,
		matches: memory.NewMatchRepository(memory.SeedSeasons(), memory.SeedMatches()),
		records: memory.NewScoringRepository(players, teams),
		teams:   teams,
		leagues: memory.NewLeagueRepository(memory.SeedLeagues()),
	}
}
