package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/leetstreak/internal/config"
	"github.com/riskibarqy/leetstreak/internal/domain/challenge"
	"github.com/riskibarqy/leetstreak/internal/infrastructure/rediscache"
	repocache "github.com/riskibarqy/leetstreak/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/leetstreak/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/leetstreak/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/leetstreak/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/leetstreak/internal/platform/cache"
	idgen "github.com/riskibarqy/leetstreak/internal/platform/id"
	"github.com/riskibarqy/leetstreak/internal/platform/logging"
	"github.com/riskibarqy/leetstreak/internal/platform/resilience"
	"github.com/riskibarqy/leetstreak/internal/usecase"
)

const (
	dbMaxOpenConns    = 20
	dbMaxIdleConns    = 10
	dbConnMaxLifetime = 30 * time.Minute
	dbPingTimeout     = 5 * time.Second
)

// Closer releases what NewHTTPServer opened. It runs after the HTTP server
// has stopped and only logs failures.
type Closer func()

type store struct {
	repo   challenge.Repository
	writer challenge.Writer
	close  func() error
}

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, Closer, error) {
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}
	if logger == nil {
		logger = logging.Default()
	}

	clock := usecase.NewClock(cfg.Location)
	st, err := newStore(cfg, clock, logger)
	if err != nil {
		return nil, nil, err
	}

	repo := repocache.NewChallengeRepository(st.repo, basecache.NewStore(cfg.ChallengeCacheTTL))

	var redisClient *rediscache.Client
	var durable basecache.Durable
	if cfg.RedisEnabled {
		redisClient, err = rediscache.New(rediscache.Config{
			URL:         cfg.RedisURL,
			DialTimeout: cfg.RedisDialTimeout,
			OpTimeout:   cfg.RedisOpTimeout,
			Reconnect: resilience.ReconnectPolicy{
				MaxAttempts: cfg.RedisReconnectMaxAttempts,
				Step:        cfg.RedisReconnectStep,
				MaxDelay:    cfg.RedisReconnectMaxDelay,
			},
		}, logger)
		if err != nil {
			_ = st.close()
			return nil, nil, fmt.Errorf("build redis client: %w", err)
		}
		redisClient.Start()
		durable = redisClient
	} else {
		logger.Warn("redis disabled, leaderboards use the in-process cache only")
	}

	var tieredOpts []basecache.TieredOption
	if cfg.RedisCircuitEnabled {
		breaker := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: cfg.RedisCircuitFailureCount,
			OpenTimeout:      cfg.RedisCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.RedisCircuitHalfOpenMaxReq,
		})
		tieredOpts = append(tieredOpts, basecache.WithCircuitBreaker(breaker))
	}
	fallback := basecache.NewStore(cfg.LeaderboardCacheTTL, basecache.WithMaxEntries(cfg.FallbackCacheMaxEntries))
	tiered := basecache.NewTiered(fallback, durable, logger, tieredOpts...)
	leaderboardCache := repocache.NewLeaderboardCache(tiered, cfg.LeaderboardCacheTTL, logger)

	leaderboardSvc := usecase.NewLeaderboardService(repo, leaderboardCache, usecase.LeaderboardServiceConfig{
		TTL:              cfg.LeaderboardCacheTTL,
		LoadConcurrency:  cfg.LeaderboardLoadConcurrency,
		StrictInvariants: cfg.StrictInvariants(),
	}, logger)
	warmer := usecase.NewLeaderboardWarmer(repo, leaderboardSvc, cfg.LeaderboardWarmWorkers, logger)
	progressSvc := usecase.NewProgressService(repo)
	dashboardSvc := usecase.NewDashboardService(repo, leaderboardSvc, clock, cfg.LeaderboardLoadConcurrency)
	heatmapSvc := usecase.NewHeatmapService(repo, clock)
	resultSvc := usecase.NewResultService(repo, st.writer, leaderboardSvc, clock)

	handler := httpapi.NewHandler(
		leaderboardSvc,
		warmer,
		progressSvc,
		dashboardSvc,
		heatmapSvc,
		resultSvc,
		tiered,
		clock.Location,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	closer := func() {
		if redisClient != nil {
			redisClient.Close()
		}
		if err := st.close(); err != nil {
			logger.Warn("close repository failed", "error", err)
		}
	}

	return server, closer, nil
}

func newStore(cfg config.Config, clock usecase.Clock, logger *logging.Logger) (store, error) {
	switch cfg.RepositoryDriver {
	case config.RepositoryMemory:
		repo := memory.NewChallengeRepository(idgen.NewUUIDGenerator())
		if err := memory.Seed(context.Background(), repo, clock.Today(), clock.Location); err != nil {
			return store{}, fmt.Errorf("seed memory repository: %w", err)
		}
		logger.Info("using memory repository with seed data")
		return store{repo: repo, writer: repo, close: func() error { return nil }}, nil
	case config.RepositoryPostgres:
		db, err := postgres.Open(context.Background(), postgres.OpenConfig{
			URL:                   cfg.DBURL,
			DisablePreparedBinary: cfg.DBDisablePreparedBinary,
			MaxOpenConns:          dbMaxOpenConns,
			MaxIdleConns:          dbMaxIdleConns,
			ConnMaxLifetime:       dbConnMaxLifetime,
			PingTimeout:           dbPingTimeout,
		})
		if err != nil {
			return store{}, err
		}
		repo := postgres.NewChallengeRepository(db, idgen.NewUUIDGenerator())
		return store{repo: repo, writer: repo, close: db.Close}, nil
	default:
		return store{}, fmt.Errorf("unsupported repository driver %q", cfg.RepositoryDriver)
	}
}
