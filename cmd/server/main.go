package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	httpAdapter "github.com/finbooks/ledger/internal/adapter/http"
	"github.com/finbooks/ledger/internal/adapter/http/handler"
	"github.com/finbooks/ledger/internal/adapter/http/middleware"
	"github.com/finbooks/ledger/internal/adapter/repository/memory"
	postgresRepo "github.com/finbooks/ledger/internal/adapter/repository/postgres"
	redisRepo "github.com/finbooks/ledger/internal/adapter/repository/redis"
	"github.com/finbooks/ledger/internal/infrastructure/config"
	"github.com/finbooks/ledger/internal/infrastructure/logger"
	"github.com/finbooks/ledger/internal/infrastructure/metrics"
	"github.com/finbooks/ledger/internal/infrastructure/postgres"
	redisInfra "github.com/finbooks/ledger/internal/infrastructure/redis"
	"github.com/finbooks/ledger/internal/usecase"
)

// retryingPostingService re-runs a whole posting attempt when the commit lost
// a concurrency race. The posting use case itself fails fast on conflicts.
type retryingPostingService struct {
	inner   handler.PostingService
	retrier *postgresRepo.Retrier
}

func (s *retryingPostingService) PostTransaction(ctx context.Context, input usecase.PostTransactionInput) (*usecase.PostedBatch, error) {
	var batch *usecase.PostedBatch

	err := s.retrier.Retry(ctx, func() error {
		b, err := s.inner.PostTransaction(ctx, input)
		if err != nil {
			return err
		}
		batch = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	return batch, nil
}

// storage bundles the repository set behind one backend choice.
type storage struct {
	txManager   usecase.TransactionManager
	accountRepo usecase.AccountRepository
	entryRepo   usecase.EntryRepository
	ledgerRepo  usecase.LedgerRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		// No logger yet.
		panic(err)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited with error")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		store *storage
		pool  *pgxpool.Pool
	)

	switch cfg.StorageBackend {
	case "memory":
		log.Info().Msg("using in-memory storage backend")
		store = newMemoryStorage()
	case "postgres":
		var err error
		pool, err = postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
			DatabaseURL:    cfg.DatabaseURL,
			MaxConns:       cfg.DatabaseMaxConns,
			MinConns:       cfg.DatabaseMinConns,
			ConnectTimeout: cfg.DatabaseTimeout,
		})
		if err != nil {
			return err
		}
		defer pool.Close()
		log.Info().Msg("connected to postgres")

		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			return err
		}

		store = newPostgresStorage(pool)
	default:
		return errors.New("unknown storage backend: " + cfg.StorageBackend)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		var err error
		redisClient, err = redisInfra.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer redisClient.Close()
		log.Info().Msg("connected to redis")
	} else {
		log.Info().Msg("redis disabled, idempotency and account caching off")
	}

	idGen := postgresRepo.NewULIDGenerator()

	accountUC := usecase.NewAccountUseCase(store.accountRepo, store.entryRepo, idGen)
	postingUC := usecase.NewPostingUseCase(store.txManager, store.accountRepo, store.entryRepo, idGen)
	entryUC := usecase.NewEntryUseCase(store.entryRepo)
	ledgerUC := usecase.NewLedgerUseCase(store.accountRepo, store.entryRepo, store.ledgerRepo)

	m := metrics.New(prometheus.DefaultRegisterer)

	postingSvc := metrics.NewInstrumentedPostingService(&retryingPostingService{
		inner:   postingUC,
		retrier: postgresRepo.NewRetrier(log),
	}, m)
	accountSvc := metrics.NewInstrumentedAccountService(accountUC, m)

	var (
		accountCache     handler.AccountCache
		idempotencyStore usecase.IdempotencyStore
	)
	if redisClient != nil {
		accountCache = redisRepo.NewAccountCache(redisClient, cfg.AccountCacheTTL)
		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
	}

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimitEnabled {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:     handler.NewAccountHandler(accountSvc, accountCache, log),
		TransactionHandler: handler.NewTransactionHandler(postingSvc, entryUC, accountCache, log),
		EntryHandler:       handler.NewEntryHandler(entryUC),
		LedgerHandler:      handler.NewLedgerHandler(ledgerUC),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:   idempotencyStore,
		RateLimiter:        rateLimiter,
		Logger:             log,
	})

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info().Msg("server stopped")
	return nil
}

func newMemoryStorage() *storage {
	store := memory.NewStore()
	return &storage{
		txManager:   store,
		accountRepo: memory.NewAccountRepository(store),
		entryRepo:   memory.NewEntryRepository(store),
		ledgerRepo:  memory.NewLedgerRepository(store),
	}
}

func newPostgresStorage(pool *pgxpool.Pool) *storage {
	return &storage{
		txManager:   postgresRepo.NewTxManager(pool),
		accountRepo: postgresRepo.NewAccountRepository(pool),
		entryRepo:   postgresRepo.NewEntryRepository(pool),
		ledgerRepo:  postgresRepo.NewLedgerRepository(pool),
	}
}
