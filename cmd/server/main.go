package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/fleetpay/walletledger/internal/adapter/http"
	"github.com/fleetpay/walletledger/internal/adapter/http/handler"
	"github.com/fleetpay/walletledger/internal/adapter/http/middleware"
	postgresRepo "github.com/fleetpay/walletledger/internal/adapter/repository/postgres"
	redisRepo "github.com/fleetpay/walletledger/internal/adapter/repository/redis"
	"github.com/fleetpay/walletledger/internal/infrastructure/config"
	"github.com/fleetpay/walletledger/internal/infrastructure/eventpublisher"
	"github.com/fleetpay/walletledger/internal/infrastructure/logger"
	"github.com/fleetpay/walletledger/internal/infrastructure/metrics"
	"github.com/fleetpay/walletledger/internal/infrastructure/postgres"
	"github.com/fleetpay/walletledger/internal/infrastructure/redis"
	"github.com/fleetpay/walletledger/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	ctx := context.Background()

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	holderRepo := postgresRepo.NewHolderRepository(pool)
	transferRepo := postgresRepo.NewTransferRepository(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	withdrawalRepo := postgresRepo.NewWithdrawalRepository(pool)
	var outboxRepo usecase.OutboxRepository = postgresRepo.NewOutboxRepository(pool)
	if !cfg.OutboxEnabled {
		outboxRepo = postgresRepo.NewNullOutboxRepository()
	}
	ledgerRepo := postgresRepo.NewLedgerRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier()
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	appMetrics := metrics.New()

	// Initialize use cases
	holderUC := usecase.NewHolderUseCase(txManager, holderRepo, outboxRepo, idGen, cache)
	transferUC := usecase.NewTransferUseCase(txManager, holderRepo, transferRepo, entryRepo, outboxRepo, idGen, retrier, cache, appMetrics)
	entryUC := usecase.NewEntryUseCase(txManager, entryRepo)
	withdrawalUC := usecase.NewWithdrawalUseCase(txManager, holderRepo, withdrawalRepo, entryRepo, outboxRepo, idGen, retrier, cache, appMetrics)
	reconciliationUC := usecase.NewReconciliationUseCase(holderRepo, entryRepo, ledgerRepo)

	// Initialize handlers
	holderHandler := handler.NewHolderHandler(holderUC)
	transferHandler := handler.NewTransferHandler(transferUC)
	entryHandler := handler.NewEntryHandler(entryUC)
	withdrawalHandler := handler.NewWithdrawalHandler(withdrawalUC)
	ledgerHandler := handler.NewLedgerHandler(reconciliationUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Rate limiter with periodic cleanup
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	serverCtx, stopBackground := context.WithCancel(ctx)
	defer stopBackground()

	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-serverCtx.Done():
				return
			case <-ticker.C:
				rateLimiter.Cleanup(time.Hour)
			}
		}
	}()

	// Outbox publisher
	if cfg.OutboxEnabled {
		var sink eventpublisher.Publisher
		if len(cfg.KafkaBrokers) > 0 {
			kafkaPublisher := eventpublisher.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
			defer kafkaPublisher.Close()
			sink = kafkaPublisher
			log.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("publishing events to kafka")
		} else {
			sink = eventpublisher.NewLogPublisher(nil)
			log.Info().Msg("kafka not configured, logging events instead")
		}

		publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
			OutboxRepo: outboxRepo,
			Publisher:  sink,
			BatchSize:  cfg.OutboxBatchSize,
			Interval:   cfg.OutboxPollInterval,
			Retention:  time.Duration(cfg.OutboxRetentionHours) * time.Hour,
		})

		go func() {
			if err := publisher.Start(serverCtx); err != nil && serverCtx.Err() == nil {
				log.Error().Err(err).Msg("event publisher stopped")
			}
		}()
	} else {
		log.Info().Msg("outbox disabled, events are not recorded")
	}

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		HolderHandler:     holderHandler,
		TransferHandler:   transferHandler,
		EntryHandler:      entryHandler,
		WithdrawalHandler: withdrawalHandler,
		LedgerHandler:     ledgerHandler,
		HealthHandler:     healthHandler,
		IdempotencyStore:  idempotencyStore,
		IdempotencyTTL:    cfg.IdempotencyTTL,
		RateLimiter:       rateLimiter,
		Logger:            appLogger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	stopBackground()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
