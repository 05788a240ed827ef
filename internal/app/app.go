package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/bc-quiz/internal/catalog"
	"github.com/gokatarajesh/bc-quiz/internal/config"
	"github.com/gokatarajesh/bc-quiz/internal/db/repository"
	"github.com/gokatarajesh/bc-quiz/internal/logging"
	"github.com/gokatarajesh/bc-quiz/internal/metrics"
	"github.com/gokatarajesh/bc-quiz/internal/recommend"
	"github.com/gokatarajesh/bc-quiz/internal/server"
	"github.com/gokatarajesh/bc-quiz/internal/session"
	ws "github.com/gokatarajesh/bc-quiz/pkg/http/ws"
)

// Application aggregates shared infrastructure (DB, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server
	hub   *ws.Hub

	sweeper   *session.Sweeper
	bgCancels []context.CancelFunc
}

// New bootstraps logger, catalog, optional Postgres and Redis, and the HTTP
// server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env, cfg.LogLevel)
	logger.Info().Msg("starting application bootstrap")

	a := &Application{
		cfg:       cfg,
		logger:    logger,
		bgCancels: make([]context.CancelFunc, 0, 1),
	}

	var pingers []server.Pinger

	if cfg.Postgres.Enabled() {
		pool, err := pgxpool.New(ctx, cfg.Postgres.DSN())
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		a.pool = pool
		pingers = append(pingers, server.PingFunc{Label: "postgres", Fn: pool.Ping})
	}

	cat, err := a.loadCatalog(ctx)
	if err != nil {
		a.close()
		return nil, err
	}

	engines, err := recommend.NewEngines(cat, cfg.Quiz.DefaultRuleSet)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("build engines: %w", err)
	}

	var store session.Store
	if cfg.Redis.Enabled() {
		a.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		store = session.NewRedisStore(a.redis, cfg.Quiz.SessionTTL, logger)
		client := a.redis
		pingers = append(pingers, server.PingFunc{Label: "redis", Fn: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}})
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("using redis session store")
	} else {
		mem := session.NewMemoryStore(cfg.Quiz.SessionTTL)
		store = mem
		a.sweeper = session.NewSweeper(mem, 0, logger)
		logger.Warn().Msg("REDIS_ADDR not set; sessions kept in process memory")
	}

	tokens := session.NewTokenManager(session.TokenConfig{
		Secret: []byte(cfg.Security.SessionTokenSecret),
		TTL:    cfg.Quiz.SessionTTL,
		Issuer: cfg.Name,
	})

	quizMetrics := metrics.NewQuiz(prometheus.DefaultRegisterer)
	svc := session.NewService(store, engines, tokens, quizMetrics, logger)

	a.hub = ws.NewHub(logger)
	httpHandlers := session.NewHTTPHandlers(svc, logger)
	wsHandler := session.NewWSHandler(svc, a.hub, server.NewWSUpgrader(cfg.CORS.AllowedOrigins), logger)

	a.http = server.NewHTTPServer(cfg, logger, httpHandlers, wsHandler.HandleWebSocket, pingers...)

	logger.Info().
		Str("default_rule_set", engines.Default()).
		Int("methods", cat.Len()).
		Msg("quiz service ready")
	return a, nil
}

func (a *Application) loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	if a.cfg.Quiz.CatalogSource != config.CatalogPostgres {
		return catalog.Default(), nil
	}
	if a.pool == nil {
		return nil, errors.New("postgres catalog requested but PG_HOST is empty")
	}
	repo := repository.NewMethodRepository(repository.New(a.pool))
	cat, err := repo.LoadCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	a.logger.Info().Int("methods", cat.Len()).Msg("catalog loaded from postgres")
	return cat, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	a.startBackgroundWorkers(ctx)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		a.close()
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	a.close()
	a.logger.Info().Msg("shutdown complete")
	return nil
}

func (a *Application) startBackgroundWorkers(ctx context.Context) {
	if a.sweeper != nil {
		bgCtx, cancel := context.WithCancel(ctx)
		a.bgCancels = append(a.bgCancels, cancel)
		go func() {
			if err := a.sweeper.Run(bgCtx); err != nil && err != context.Canceled {
				a.logger.Warn().Err(err).Msg("session sweeper stopped")
			}
		}()
	}
}

func (a *Application) close() {
	for _, cancel := range a.bgCancels {
		cancel()
	}
	if a.hub != nil {
		a.hub.CloseAll()
	}
	if a.pool != nil {
		a.pool.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error().Err(err).Msg("redis shutdown error")
		}
	}
}
