package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fleetpay/walletledger/internal/adapter/repository/postgres"
	"github.com/fleetpay/walletledger/internal/domain"
	"github.com/fleetpay/walletledger/internal/usecase"
)

// newStressTransferUC builds a transfer usecase that skips outbox writes so
// the stress subtests exercise only ledger contention.
func newStressTransferUC(env *testEnv) *usecase.TransferUseCase {
	pool := env.DB.Pool

	return usecase.NewTransferUseCase(
		postgres.NewTxManager(pool),
		postgres.NewHolderRepository(pool),
		postgres.NewTransferRepository(pool),
		postgres.NewEntryRepository(pool),
		postgres.NewNullOutboxRepository(),
		postgres.NewULIDGenerator(),
		postgres.NewRetrier(),
		nil,
		nil,
	)
}

func TestConcurrentTransfers(t *testing.T) {
	env := newTestEnv(t)
	transferUC := newStressTransferUC(env)
	ctx := context.Background()

	t.Run("100 concurrent payouts no overdraft", func(t *testing.T) {
		env.DB.TruncateAll(ctx)

		// Balance allows exactly 100 payouts of 10
		admin := env.DB.CreateTestHolderWithBalance(ctx, domain.HolderTypePlatform, "FleetPay", "NGN", decimal.NewFromInt(1000), false)
		rider := env.DB.CreateTestHolder(ctx, domain.HolderTypeRider, "Ade", "NGN", false)

		numTransfers := 100
		amount := decimal.NewFromInt(10)

		var (
			wg           sync.WaitGroup
			successCount atomic.Int32
			errorCount   atomic.Int32
		)

		wg.Add(numTransfers)

		for range numTransfers {
			go func() {
				defer wg.Done()

				_, err := transferUC.TransferMoney(ctx, usecase.TransferMoneyInput{
					SenderID:    admin.ID,
					RecipientID: rider.ID,
					Amount:      amount,
					Narration:   "delivery payout",
				})
				if err != nil {
					errorCount.Add(1)
				} else {
					successCount.Add(1)
				}
			}()
		}

		wg.Wait()

		if successCount.Load() != int32(numTransfers) {
			t.Errorf("expected %d successful transfers, got %d (errors: %d)", numTransfers, successCount.Load(), errorCount.Load())
		}

		gotAdmin, _ := env.HolderUC.GetHolder(ctx, admin.ID)
		gotRider, _ := env.HolderUC.GetHolder(ctx, rider.ID)

		if !gotAdmin.Balance.Equal(decimal.Zero) {
			t.Errorf("expected sender balance 0, got %s", gotAdmin.Balance)
		}
		if !gotRider.Balance.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected recipient balance 1000, got %s", gotRider.Balance)
		}

		// The stress usecase runs with the no-op outbox, so nothing
		// should be queued for publishing.
		events, err := env.OutboxRepo.GetUnpublished(ctx, 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(events) != 0 {
			t.Errorf("expected no outbox events, got %d", len(events))
		}
	})

	t.Run("concurrent transfers reject overdraft", func(t *testing.T) {
		env.DB.TruncateAll(ctx)

		customer := env.DB.CreateTestHolderWithBalance(ctx, domain.HolderTypeUser, "Funke", "NGN", decimal.NewFromInt(100), false)
		restaurant := env.DB.CreateTestHolder(ctx, domain.HolderTypeRestaurant, "Mama Put", "NGN", false)

		numTransfers := 20
		amount := decimal.NewFromInt(10) // 20 * 10 = 200 > 100

		var (
			wg           sync.WaitGroup
			successCount atomic.Int32
		)

		wg.Add(numTransfers)

		for range numTransfers {
			go func() {
				defer wg.Done()

				_, err := transferUC.TransferMoney(ctx, usecase.TransferMoneyInput{
					SenderID:    customer.ID,
					RecipientID: restaurant.ID,
					Amount:      amount,
					Narration:   "order payment",
				})
				if err == nil {
					successCount.Add(1)
				}
			}()
		}

		wg.Wait()

		if successCount.Load() != 10 {
			t.Errorf("expected 10 successful transfers, got %d", successCount.Load())
		}

		gotCustomer, _ := env.HolderUC.GetHolder(ctx, customer.ID)
		if !gotCustomer.Balance.Equal(decimal.Zero) {
			t.Errorf("expected customer balance 0, got %s", gotCustomer.Balance)
		}
	})

	t.Run("deadlock prevention with opposing transfers", func(t *testing.T) {
		env.DB.TruncateAll(ctx)

		a := env.DB.CreateTestHolderWithBalance(ctx, domain.HolderTypeMerchant, "Merchant A", "NGN", decimal.NewFromInt(1000), true)
		b := env.DB.CreateTestHolderWithBalance(ctx, domain.HolderTypeMerchant, "Merchant B", "NGN", decimal.NewFromInt(1000), true)

		numTransfers := 50

		var (
			wg           sync.WaitGroup
			successCount atomic.Int32
		)

		// Half A -> B, half B -> A concurrently; lock ordering by holder ID
		// keeps the pairs from deadlocking.

		wg.Add(numTransfers * 2)

		for range numTransfers {
			go func() {
				defer wg.Done()

				_, err := transferUC.TransferMoney(ctx, usecase.TransferMoneyInput{
					SenderID:    a.ID,
					RecipientID: b.ID,
					Amount:      decimal.NewFromInt(10),
					Narration:   "settlement",
				})
				if err == nil {
					successCount.Add(1)
				}
			}()
			go func() {
				defer wg.Done()

				_, err := transferUC.TransferMoney(ctx, usecase.TransferMoneyInput{
					SenderID:    b.ID,
					RecipientID: a.ID,
					Amount:      decimal.NewFromInt(10),
					Narration:   "settlement",
				})
				if err == nil {
					successCount.Add(1)
				}
			}()
		}

		wg.Wait()

		if successCount.Load() != int32(numTransfers*2) {
			t.Errorf("expected %d successful transfers, got %d", numTransfers*2, successCount.Load())
		}

		gotA, _ := env.HolderUC.GetHolder(ctx, a.ID)
		gotB, _ := env.HolderUC.GetHolder(ctx, b.ID)

		if !gotA.Balance.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected balance 1000 for a, got %s", gotA.Balance)
		}
		if !gotB.Balance.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected balance 1000 for b, got %s", gotB.Balance)
		}
	})

	t.Run("conservation holds under concurrency", func(t *testing.T) {
		env.DB.TruncateAll(ctx)

		// All funds enter through the ledger so balances and entries agree.
		admin := env.DB.CreateTestHolder(ctx, domain.HolderTypePlatform, "FleetPay", "NGN", true)
		rider := env.DB.CreateTestHolder(ctx, domain.HolderTypeRider, "Ade", "NGN", false)
		restaurant := env.DB.CreateTestHolder(ctx, domain.HolderTypeRestaurant, "Mama Put", "NGN", false)

		var wg sync.WaitGroup
		wg.Add(40)

		for range 20 {
			go func() {
				defer wg.Done()
				transferUC.TransferMoney(ctx, usecase.TransferMoneyInput{
					SenderID:    admin.ID,
					RecipientID: rider.ID,
					Amount:      decimal.NewFromInt(50),
					Narration:   "delivery payout",
				})
			}()
			go func() {
				defer wg.Done()
				transferUC.TransferMoney(ctx, usecase.TransferMoneyInput{
					SenderID:    admin.ID,
					RecipientID: restaurant.ID,
					Amount:      decimal.NewFromInt(75),
					Narration:   "order settlement",
				})
			}()
		}

		wg.Wait()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/ledger/conservation", nil)
		rec := httptest.NewRecorder()
		env.Router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected conserved ledger, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}
