package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fleetpay/walletledger/internal/domain"
	"github.com/fleetpay/walletledger/internal/infrastructure/metrics"
)

// TransferUseCase applies money movement between wallet holders. Every
// operation is a single database transaction: holder rows are locked in
// sorted-ID order, balances are re-validated under the lock, and the balance
// writes commit together with their ledger entries or not at all.
type TransferUseCase struct {
	txManager    TransactionManager
	holderRepo   HolderRepository
	transferRepo TransferRepository
	entryRepo    EntryRepository
	outboxRepo   OutboxRepository
	idGen        IDGenerator
	retrier      Retrier
	cache        Cache
	metrics      *metrics.Metrics
}

// NewTransferUseCase creates a new TransferUseCase. Retrier, cache and
// metrics may be nil.
func NewTransferUseCase(
	txManager TransactionManager,
	holderRepo HolderRepository,
	transferRepo TransferRepository,
	entryRepo EntryRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	retrier Retrier,
	cache Cache,
	m *metrics.Metrics,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:    txManager,
		holderRepo:   holderRepo,
		transferRepo: transferRepo,
		entryRepo:    entryRepo,
		outboxRepo:   outboxRepo,
		idGen:        idGen,
		retrier:      retrier,
		cache:        cache,
		metrics:      m,
	}
}

// TransferMoneyInput represents a request to move value between two holders.
type TransferMoneyInput struct {
	SenderID    string
	RecipientID string
	Amount      decimal.Decimal
	Narration   string
	TrxRef      string
	ActorID     string
	Metadata    map[string]any
}

// DebitMoneyInput represents a platform-initiated single-sided debit.
type DebitMoneyInput struct {
	HolderID  string
	Amount    decimal.Decimal
	Narration string
	TrxRef    string
	ActorID   string
}

// CreditMoneyInput represents a platform-initiated single-sided credit.
type CreditMoneyInput struct {
	HolderID  string
	Amount    decimal.Decimal
	Narration string
	TrxRef    string
	ActorID   string
}

// ReverseTransferInput represents a request to reverse a committed transfer.
type ReverseTransferInput struct {
	TransferID string
	Narration  string
	ActorID    string
	Metadata   map[string]any
}

// TransferMoney atomically debits the sender, credits the recipient and
// appends one ledger entry per holder. Caller-side validation is never
// trusted; everything is re-checked here under the row locks.
func (uc *TransferUseCase) TransferMoney(ctx context.Context, input TransferMoneyInput) (*domain.Transfer, error) {
	if err := uc.validateMoneyInput(input.Amount, input.Narration); err != nil {
		return nil, err
	}

	if input.SenderID == input.RecipientID {
		return nil, domain.ErrSameHolder
	}

	start := time.Now()

	var transfer *domain.Transfer

	err := uc.withRetry(ctx, func() error {
		var err error

		transfer, err = uc.transferMoneyTx(ctx, input)

		return err
	})
	if err != nil {
		uc.countTransferError(err)
		return nil, err
	}

	uc.invalidateHolders(ctx, input.SenderID, input.RecipientID)

	if uc.metrics != nil {
		uc.metrics.TransfersCreated.Inc()
		uc.metrics.TransferDuration.Observe(time.Since(start).Seconds())
		amount, _ := input.Amount.Float64()
		uc.metrics.TransferAmount.Observe(amount)
	}

	return transfer, nil
}

func (uc *TransferUseCase) transferMoneyTx(ctx context.Context, input TransferMoneyInput) (*domain.Transfer, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	// Lock holders in sorted order to avoid lock-order deadlocks.
	ids := []string{input.SenderID, input.RecipientID}
	sort.Strings(ids)

	holders, err := uc.holderRepo.GetByIDsForUpdate(txCtx, tx, ids)
	if err != nil {
		return nil, err
	}

	if len(holders) != len(ids) {
		return nil, domain.ErrHolderNotFound
	}

	holderMap := buildHolderMap(holders)
	sender := holderMap[input.SenderID]
	recipient := holderMap[input.RecipientID]

	if sender == nil || recipient == nil {
		return nil, domain.ErrHolderNotFound
	}

	if sender.Currency != recipient.Currency {
		return nil, domain.ErrCurrencyMismatch
	}

	if err := sender.ValidateDebit(input.Amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	transfer := &domain.Transfer{
		ID:          uc.idGen.Generate(),
		SenderID:    input.SenderID,
		RecipientID: input.RecipientID,
		Amount:      input.Amount,
		Narration:   input.Narration,
		TrxRef:      input.TrxRef,
		Metadata:    input.Metadata,
		CreatedAt:   now,
	}

	if err := transfer.Validate(); err != nil {
		return nil, err
	}

	if err := uc.transferRepo.Create(txCtx, tx, transfer); err != nil {
		return nil, err
	}

	if err := uc.applyEntry(txCtx, tx, sender, transfer, domain.EntryTypeDebit, now); err != nil {
		return nil, err
	}

	if err := uc.applyEntry(txCtx, tx, recipient, transfer, domain.EntryTypeCredit, now); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   transfer.ID,
		AggregateType: domain.AggregateTypeTransfer,
		EventType:     domain.EventTypeTransferCreated,
		Payload: map[string]any{
			"transfer_id":  transfer.ID,
			"sender_id":    transfer.SenderID,
			"recipient_id": transfer.RecipientID,
			"amount":       transfer.Amount.String(),
			"currency":     sender.Currency,
			"narration":    transfer.Narration,
			"actor_id":     input.ActorID,
		},
		CreatedAt: now,
	}
	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return transfer, nil
}

// applyEntry writes one ledger entry for holder and persists the matching
// balance update. The entry records the before/after balance and the holder
// version it was applied at.
func (uc *TransferUseCase) applyEntry(
	ctx context.Context,
	tx Transaction,
	holder *domain.Holder,
	transfer *domain.Transfer,
	entryType domain.EntryType,
	now time.Time,
) error {
	newBalance := holder.ApplyCredit(transfer.Amount)
	if entryType == domain.EntryTypeDebit {
		newBalance = holder.ApplyDebit(transfer.Amount)
	}

	entry := &domain.Entry{
		ID:            uc.idGen.Generate(),
		HolderID:      holder.ID,
		TransferID:    transfer.ID,
		Type:          entryType,
		Amount:        transfer.Amount,
		Narration:     transfer.Narration,
		TrxRef:        transfer.TrxRef,
		Status:        domain.EntryStatusSuccessful,
		BalanceBefore: holder.Balance,
		BalanceAfter:  newBalance,
		HolderVersion: holder.Version + 1,
		CreatedAt:     now,
	}

	if err := entry.Validate(); err != nil {
		return err
	}

	if err := uc.entryRepo.Create(ctx, tx, entry); err != nil {
		return err
	}

	if err := uc.holderRepo.UpdateBalance(ctx, tx, holder.ID, newBalance, now); err != nil {
		return err
	}

	holder.Balance = newBalance
	holder.Version++

	return nil
}

// DebitMoney decrements a single holder's balance and appends one debit
// entry. Debits below zero are rejected unless the holder's policy allows a
// negative balance.
func (uc *TransferUseCase) DebitMoney(ctx context.Context, input DebitMoneyInput) (*domain.Entry, error) {
	return uc.singleSided(ctx, input.HolderID, input.Amount, input.Narration, input.TrxRef, input.ActorID, domain.EntryTypeDebit)
}

// CreditMoney increments a single holder's balance and appends one credit
// entry.
func (uc *TransferUseCase) CreditMoney(ctx context.Context, input CreditMoneyInput) (*domain.Entry, error) {
	return uc.singleSided(ctx, input.HolderID, input.Amount, input.Narration, input.TrxRef, input.ActorID, domain.EntryTypeCredit)
}

func (uc *TransferUseCase) singleSided(
	ctx context.Context,
	holderID string,
	amount decimal.Decimal,
	narration, trxRef, actorID string,
	entryType domain.EntryType,
) (*domain.Entry, error) {
	if err := uc.validateMoneyInput(amount, narration); err != nil {
		return nil, err
	}

	var entry *domain.Entry

	err := uc.withRetry(ctx, func() error {
		txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := uc.txManager.Begin(txCtx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(txCtx) }()

		holder, err := uc.holderRepo.GetByIDForUpdate(txCtx, tx, holderID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()

		newBalance := holder.ApplyCredit(amount)
		eventType := domain.EventTypeHolderCredited

		if entryType == domain.EntryTypeDebit {
			if err := holder.ValidateDebit(amount); err != nil {
				return err
			}

			newBalance = holder.ApplyDebit(amount)
			eventType = domain.EventTypeHolderDebited
		}

		entry = &domain.Entry{
			ID:            uc.idGen.Generate(),
			HolderID:      holder.ID,
			Type:          entryType,
			Amount:        amount,
			Narration:     narration,
			TrxRef:        trxRef,
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

		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   holder.ID,
			AggregateType: domain.AggregateTypeHolder,
			EventType:     eventType,
			Payload: map[string]any{
				"holder_id": holder.ID,
				"entry_id":  entry.ID,
				"amount":    amount.String(),
				"currency":  holder.Currency,
				"narration": narration,
				"actor_id":  actorID,
			},
			CreatedAt: now,
		}
		if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
			return err
		}

		return tx.Commit(txCtx)
	})
	if err != nil {
		uc.countTransferError(err)
		return nil, err
	}

	uc.invalidateHolders(ctx, holderID)

	return entry, nil
}

// ReverseTransfer creates a compensating transfer moving the amount back
// from the recipient to the sender and marks the original entries reversed.
// A transfer can only be reversed once; the entry status machine enforces it.
func (uc *TransferUseCase) ReverseTransfer(ctx context.Context, input ReverseTransferInput) (*domain.Transfer, error) {
	original, err := uc.transferRepo.GetByID(ctx, input.TransferID)
	if err != nil {
		return nil, err
	}

	narration := input.Narration
	if narration == "" {
		narration = "Reversal of " + original.ID
	}

	var reversal *domain.Transfer

	err = uc.withRetry(ctx, func() error {
		txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := uc.txManager.Begin(txCtx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(txCtx) }()

		ids := []string{original.SenderID, original.RecipientID}
		sort.Strings(ids)

		holders, err := uc.holderRepo.GetByIDsForUpdate(txCtx, tx, ids)
		if err != nil {
			return err
		}

		if len(holders) != len(ids) {
			return domain.ErrHolderNotFound
		}

		holderMap := buildHolderMap(holders)
		sender := holderMap[original.SenderID]
		recipient := holderMap[original.RecipientID]

		// Re-read the original entries under the holder locks: a concurrent
		// reversal would already have flipped them to reversed.
		originalEntries, err := uc.entryRepo.GetByTransferTx(txCtx, tx, original.ID)
		if err != nil {
			return err
		}

		for _, e := range originalEntries {
			if !e.Status.CanTransitionTo(domain.EntryStatusReversed) {
				return domain.ErrTransferNotReversible
			}
		}

		// Money moves back: the original recipient is debited.
		if err := recipient.ValidateDebit(original.Amount); err != nil {
			return err
		}

		now := time.Now().UTC()

		reversal = &domain.Transfer{
			ID:                 uc.idGen.Generate(),
			SenderID:           original.RecipientID,
			RecipientID:        original.SenderID,
			Amount:             original.Amount,
			Narration:          narration,
			TrxRef:             original.TrxRef,
			Metadata:           input.Metadata,
			ReversedTransferID: &original.ID,
			CreatedAt:          now,
		}

		if err := reversal.Validate(); err != nil {
			return err
		}

		if err := uc.transferRepo.Create(txCtx, tx, reversal); err != nil {
			return err
		}

		if err := uc.applyEntry(txCtx, tx, recipient, reversal, domain.EntryTypeDebit, now); err != nil {
			return err
		}

		if err := uc.applyEntry(txCtx, tx, sender, reversal, domain.EntryTypeCredit, now); err != nil {
			return err
		}

		for _, e := range originalEntries {
			if err := uc.entryRepo.UpdateStatus(txCtx, tx, e.ID, domain.EntryStatusReversed); err != nil {
				return err
			}
		}

		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   reversal.ID,
			AggregateType: domain.AggregateTypeTransfer,
			EventType:     domain.EventTypeTransferReversed,
			Payload: map[string]any{
				"reversal_transfer_id": reversal.ID,
				"original_transfer_id": original.ID,
				"amount":               reversal.Amount.String(),
				"currency":             sender.Currency,
				"actor_id":             input.ActorID,
			},
			CreatedAt: now,
		}
		if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
			return err
		}

		return tx.Commit(txCtx)
	})
	if err != nil {
		uc.countTransferError(err)
		return nil, err
	}

	uc.invalidateHolders(ctx, original.SenderID, original.RecipientID)

	if uc.metrics != nil {
		uc.metrics.TransfersReversed.Inc()
	}

	return reversal, nil
}

// GetTransfer retrieves a transfer by ID.
func (uc *TransferUseCase) GetTransfer(ctx context.Context, id string) (*domain.Transfer, error) {
	return uc.transferRepo.GetByID(ctx, id)
}

// ListTransfersByHolderInput represents input for listing transfers.
type ListTransfersByHolderInput struct {
	HolderID string
	Limit    int
	Offset   int
}

// ListTransfersByHolder lists transfers a holder took part in, newest first.
func (uc *TransferUseCase) ListTransfersByHolder(ctx context.Context, input ListTransfersByHolderInput) ([]*domain.Transfer, error) {
	return uc.transferRepo.ListByHolder(ctx, input.HolderID, clampPage(input.Limit), input.Offset)
}

func (uc *TransferUseCase) validateMoneyInput(amount decimal.Decimal, narration string) error {
	if err := domain.ValidateAmount(amount); err != nil {
		return err
	}

	return domain.ValidateNarration(narration)
}

func (uc *TransferUseCase) withRetry(ctx context.Context, operation func() error) error {
	if uc.retrier == nil {
		return operation()
	}

	return uc.retrier.Retry(ctx, operation)
}

func (uc *TransferUseCase) invalidateHolders(ctx context.Context, ids ...string) {
	if uc.cache == nil {
		return
	}

	for _, id := range ids {
		_ = uc.cache.Delete(ctx, holderCacheKey(id))
	}
}

func (uc *TransferUseCase) countTransferError(err error) {
	if uc.metrics == nil {
		return
	}

	uc.metrics.TransferErrors.WithLabelValues(errorLabel(err)).Inc()
}

func errorLabel(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, domain.ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, domain.ErrHolderNotFound):
		return "holder_not_found"
	case errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, domain.ErrSameHolder):
		return "same_holder"
	case errors.Is(err, domain.ErrCurrencyMismatch):
		return "currency_mismatch"
	case errors.Is(err, domain.ErrTransferNotReversible):
		return "not_reversible"
	default:
		return "other"
	}
}

func buildHolderMap(holders []*domain.Holder) map[string]*domain.Holder {
	m := make(map[string]*domain.Holder)
	for _, h := range holders {
		m[h.ID] = h
	}

	return m
}
