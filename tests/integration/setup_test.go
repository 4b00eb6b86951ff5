package integration

import (
	"context"
	"net/http"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	adaptershttp "github.com/fleetpay/walletledger/internal/adapter/http"
	"github.com/fleetpay/walletledger/internal/adapter/http/handler"
	"github.com/fleetpay/walletledger/internal/adapter/repository/postgres"
	redisrepo "github.com/fleetpay/walletledger/internal/adapter/repository/redis"
	infraredis "github.com/fleetpay/walletledger/internal/infrastructure/redis"
	"github.com/fleetpay/walletledger/internal/usecase"
	"github.com/fleetpay/walletledger/tests/testutil"
)

// testEnv wires the full HTTP stack against real postgres and redis.
type testEnv struct {
	DB          *testutil.TestDB
	Router      http.Handler
	RedisClient *redis.Client
	HolderUC    *usecase.HolderUseCase
	TransferUC  *usecase.TransferUseCase
	OutboxRepo  *postgres.OutboxRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	t.Cleanup(testDB.Cleanup)
	testDB.TruncateAll(ctx)

	pool := testDB.Pool
	txManager := postgres.NewTxManager(pool)
	holderRepo := postgres.NewHolderRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	entryRepo := postgres.NewEntryRepository(pool)
	withdrawalRepo := postgres.NewWithdrawalRepository(pool)
	outboxRepo := postgres.NewOutboxRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	idGen := postgres.NewULIDGenerator()
	retrier := postgres.NewRetrier()

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { redisClient.Close() })

	cache := redisrepo.NewCache(redisClient)
	idempotencyStore := redisrepo.NewIdempotencyStore(redisClient)

	holderUC := usecase.NewHolderUseCase(txManager, holderRepo, outboxRepo, idGen, cache)
	transferUC := usecase.NewTransferUseCase(txManager, holderRepo, transferRepo, entryRepo, outboxRepo, idGen, retrier, cache, nil)
	entryUC := usecase.NewEntryUseCase(txManager, entryRepo)
	withdrawalUC := usecase.NewWithdrawalUseCase(txManager, holderRepo, withdrawalRepo, entryRepo, outboxRepo, idGen, retrier, cache, nil)
	reconciliationUC := usecase.NewReconciliationUseCase(holderRepo, entryRepo, ledgerRepo)

	router := adaptershttp.NewRouter(adaptershttp.RouterConfig{
		HolderHandler:     handler.NewHolderHandler(holderUC),
		TransferHandler:   handler.NewTransferHandler(transferUC),
		EntryHandler:      handler.NewEntryHandler(entryUC),
		WithdrawalHandler: handler.NewWithdrawalHandler(withdrawalUC),
		LedgerHandler:     handler.NewLedgerHandler(reconciliationUC),
		HealthHandler:     handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:  idempotencyStore,
		Logger:            zerolog.Nop(),
	})

	return &testEnv{
		DB:          testDB,
		Router:      router,
		RedisClient: redisClient,
		HolderUC:    holderUC,
		TransferUC:  transferUC,
		OutboxRepo:  outboxRepo,
	}
}
