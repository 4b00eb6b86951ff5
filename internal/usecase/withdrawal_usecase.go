package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fleetpay/walletledger/internal/domain"
	"github.com/fleetpay/walletledger/internal/infrastructure/metrics"
)

// WithdrawalUseCase handles withdrawal requests. A pending withdrawal
// reserves its amount against the holder's available balance; approval
// converts the reservation into a committed debit entry, rejection releases
// it.
type WithdrawalUseCase struct {
	txManager      TransactionManager
	holderRepo     HolderRepository
	withdrawalRepo WithdrawalRepository
	entryRepo      EntryRepository
	outboxRepo     OutboxRepository
	idGen          IDGenerator
	retrier        Retrier
	cache          Cache
	metrics        *metrics.Metrics
}

// NewWithdrawalUseCase creates a new WithdrawalUseCase. Retrier, cache and
// metrics may be nil.
func NewWithdrawalUseCase(
	txManager TransactionManager,
	holderRepo HolderRepository,
	withdrawalRepo WithdrawalRepository,
	entryRepo EntryRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	retrier Retrier,
	cache Cache,
	m *metrics.Metrics,
) *WithdrawalUseCase {
	return &WithdrawalUseCase{
		txManager:      txManager,
		holderRepo:     holderRepo,
		withdrawalRepo: withdrawalRepo,
		entryRepo:      entryRepo,
		outboxRepo:     outboxRepo,
		idGen:          idGen,
		retrier:        retrier,
		cache:          cache,
		metrics:        m,
	}
}

// RequestWithdrawalInput represents a holder's withdrawal request.
type RequestWithdrawalInput struct {
	HolderID    string
	Amount      decimal.Decimal
	Narration   string
	TrxRef      string
	BankAccount string
	ActorID     string
	Metadata    map[string]any
}

// RequestWithdrawal reserves funds for a withdrawal. The amount counts
// against the holder's available balance until the request is resolved.
func (uc *WithdrawalUseCase) RequestWithdrawal(ctx context.Context, input RequestWithdrawalInput) (*domain.Withdrawal, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if err := domain.ValidateNarration(input.Narration); err != nil {
		return nil, err
	}

	var withdrawal *domain.Withdrawal

	err := uc.withRetry(ctx, func() error {
		txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := uc.txManager.Begin(txCtx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(txCtx) }()

		holder, err := uc.holderRepo.GetByIDForUpdate(txCtx, tx, input.HolderID)
		if err != nil {
			return err
		}

		if err := holder.ValidateDebit(input.Amount); err != nil {
			return err
		}

		now := time.Now().UTC()

		withdrawal = &domain.Withdrawal{
			ID:          uc.idGen.Generate(),
			HolderID:    input.HolderID,
			Amount:      input.Amount,
			Narration:   input.Narration,
			TrxRef:      input.TrxRef,
			BankAccount: input.BankAccount,
			Status:      domain.WithdrawalStatusPending,
			Metadata:    input.Metadata,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if err := withdrawal.Validate(); err != nil {
			return err
		}

		if err := uc.withdrawalRepo.Create(txCtx, tx, withdrawal); err != nil {
			return err
		}

		newPending := holder.PendingBalance.Add(input.Amount)
		if err := uc.holderRepo.UpdatePendingBalance(txCtx, tx, holder.ID, newPending, now); err != nil {
			return err
		}

		event := uc.withdrawalEvent(withdrawal, holder.Currency, domain.EventTypeWithdrawalRequested, input.ActorID, now)
		if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
			return err
		}

		return tx.Commit(txCtx)
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateHolder(ctx, input.HolderID)

	if uc.metrics != nil {
		uc.metrics.WithdrawalsRequested.Inc()
	}

	return withdrawal, nil
}

// ApproveWithdrawal converts a pending withdrawal into a committed debit:
// the reservation is released, the balance is decremented, and one debit
// ledger entry records the movement.
func (uc *WithdrawalUseCase) ApproveWithdrawal(ctx context.Context, withdrawalID, actorID string) (*domain.Withdrawal, error) {
	var withdrawal *domain.Withdrawal
	var holderID string

	err := uc.withRetry(ctx, func() error {
		txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := uc.txManager.Begin(txCtx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(txCtx) }()

		withdrawal, err = uc.withdrawalRepo.GetByIDForUpdate(txCtx, tx, withdrawalID)
		if err != nil {
			return err
		}

		if withdrawal.Status != domain.WithdrawalStatusPending {
			return domain.ErrWithdrawalNotPending
		}

		holder, err := uc.holderRepo.GetByIDForUpdate(txCtx, tx, withdrawal.HolderID)
		if err != nil {
			return err
		}

		holderID = holder.ID
		now := time.Now().UTC()

		newBalance := holder.ApplyDebit(withdrawal.Amount)
		newPending := holder.PendingBalance.Sub(withdrawal.Amount)
		if newPending.IsNegative() {
			newPending = decimal.Zero
		}

		entry := &domain.Entry{
			ID:            uc.idGen.Generate(),
			HolderID:      holder.ID,
			Type:          domain.EntryTypeDebit,
			Amount:        withdrawal.Amount,
			Narration:     withdrawal.Narration,
			TrxRef:        withdrawal.TrxRef,
			Status:        domain.EntryStatusSuccessful,
			BalanceBefore: holder.Balance,
			BalanceAfter:  newBalance,
			HolderVersion: holder.Version + 1,
			CreatedAt:     now,
		}

		if err := entry.Validate(); err != nil {
			return err
		}

		if err := uc.entryRepo.Create(txCtx, tx, entry); err != nil {
			return err
		}

		if err := uc.holderRepo.UpdateBalance(txCtx, tx, holder.ID, newBalance, now); err != nil {
			return err
		}

		if err := uc.holderRepo.UpdatePendingBalance(txCtx, tx, holder.ID, newPending, now); err != nil {
			return err
		}

		if err := uc.withdrawalRepo.UpdateStatus(txCtx, tx, withdrawal.ID, domain.WithdrawalStatusApproved, now); err != nil {
			return err
		}

		withdrawal.Status = domain.WithdrawalStatusApproved
		withdrawal.UpdatedAt = now

		event := uc.withdrawalEvent(withdrawal, holder.Currency, domain.EventTypeWithdrawalApproved, actorID, now)
		if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
			return err
		}

		return tx.Commit(txCtx)
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateHolder(ctx, holderID)

	if uc.metrics != nil {
		uc.metrics.WithdrawalsApproved.Inc()
	}

	return withdrawal, nil
}

// RejectWithdrawal releases the reservation of a pending withdrawal without
// touching the balance.
func (uc *WithdrawalUseCase) RejectWithdrawal(ctx context.Context, withdrawalID, actorID string) (*domain.Withdrawal, error) {
	var withdrawal *domain.Withdrawal
	var holderID string

	err := uc.withRetry(ctx, func() error {
		txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := uc.txManager.Begin(txCtx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(txCtx) }()

		withdrawal, err = uc.withdrawalRepo.GetByIDForUpdate(txCtx, tx, withdrawalID)
		if err != nil {
			return err
		}

		if withdrawal.Status != domain.WithdrawalStatusPending {
			return domain.ErrWithdrawalNotPending
		}

		holder, err := uc.holderRepo.GetByIDForUpdate(txCtx, tx, withdrawal.HolderID)
		if err != nil {
			return err
		}

		holderID = holder.ID
		now := time.Now().UTC()

		newPending := holder.PendingBalance.Sub(withdrawal.Amount)
		if newPending.IsNegative() {
			newPending = decimal.Zero
		}

		if err := uc.holderRepo.UpdatePendingBalance(txCtx, tx, holder.ID, newPending, now); err != nil {
			return err
		}

		if err := uc.withdrawalRepo.UpdateStatus(txCtx, tx, withdrawal.ID, domain.WithdrawalStatusRejected, now); err != nil {
			return err
		}

		withdrawal.Status = domain.WithdrawalStatusRejected
		withdrawal.UpdatedAt = now

		event := uc.withdrawalEvent(withdrawal, holder.Currency, domain.EventTypeWithdrawalRejected, actorID, now)
		if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
			return err
		}

		return tx.Commit(txCtx)
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateHolder(ctx, holderID)

	if uc.metrics != nil {
		uc.metrics.WithdrawalsRejected.Inc()
	}

	return withdrawal, nil
}

// GetWithdrawal retrieves a withdrawal by ID.
func (uc *WithdrawalUseCase) GetWithdrawal(ctx context.Context, id string) (*domain.Withdrawal, error) {
	return uc.withdrawalRepo.GetByID(ctx, id)
}

// ListWithdrawalsInput represents input for listing withdrawals.
type ListWithdrawalsInput struct {
	HolderID string
	Limit    int
	Offset   int
}

// ListWithdrawals lists a holder's withdrawal requests newest-first.
func (uc *WithdrawalUseCase) ListWithdrawals(ctx context.Context, input ListWithdrawalsInput) ([]*domain.Withdrawal, error) {
	return uc.withdrawalRepo.ListByHolder(ctx, input.HolderID, clampPage(input.Limit), input.Offset)
}

func (uc *WithdrawalUseCase) withdrawalEvent(w *domain.Withdrawal, currency, eventType, actorID string, now time.Time) *domain.OutboxEvent {
	return &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   w.ID,
		AggregateType: domain.AggregateTypeWithdrawal,
		EventType:     eventType,
		Payload: map[string]any{
			"withdrawal_id": w.ID,
			"holder_id":     w.HolderID,
			"amount":        w.Amount.String(),
			"currency":      currency,
			"status":        string(w.Status),
			"actor_id":      actorID,
		},
		CreatedAt: now,
	}
}

func (uc *WithdrawalUseCase) withRetry(ctx context.Context, operation func() error) error {
	if uc.retrier == nil {
		return operation()
	}

	return uc.retrier.Retry(ctx, operation)
}

func (uc *WithdrawalUseCase) invalidateHolder(ctx context.Context, id string) {
	if uc.cache == nil || id == "" {
		return
	}

	_ = uc.cache.Delete(ctx, holderCacheKey(id))
}
