package usecase

import (
	"context"

	"github.com/fleetpay/walletledger/internal/domain"
)

// EntryUseCase handles ledger entry queries and status transitions.
type EntryUseCase struct {
	entryRepo EntryRepository
	txManager TransactionManager
}

// NewEntryUseCase creates a new EntryUseCase.
func NewEntryUseCase(txManager TransactionManager, entryRepo EntryRepository) *EntryUseCase {
	return &EntryUseCase{
		txManager: txManager,
		entryRepo: entryRepo,
	}
}

// ListEntriesInput represents input for listing entries.
type ListEntriesInput struct {
	HolderID string
	Limit    int
	Offset   int
}

// ListEntries lists a holder's ledger entries newest-first.
func (uc *EntryUseCase) ListEntries(ctx context.Context, input ListEntriesInput) ([]*domain.Entry, error) {
	return uc.entryRepo.GetByHolder(ctx, input.HolderID, clampPage(input.Limit), input.Offset)
}

// GetEntriesByTransfer lists the paired entries of a transfer.
func (uc *EntryUseCase) GetEntriesByTransfer(ctx context.Context, transferID string) ([]*domain.Entry, error) {
	return uc.entryRepo.GetByTransfer(ctx, transferID)
}

// UpdateEntryStatus moves an entry to the next lifecycle status. The status
// machine in the domain is the only authority on which moves are legal.
func (uc *EntryUseCase) UpdateEntryStatus(ctx context.Context, entryID string, next domain.EntryStatus) (*domain.Entry, error) {
	// Reversal must go through transfer reversal, which appends the
	// compensating entries in the same transaction. A bare status flip
	// would leave the holder balance without a backing entry.
	if next == domain.EntryStatusReversed {
		return nil, domain.ErrEntryReversalForbidden
	}

	entry, err := uc.entryRepo.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	if err := entry.Transition(next); err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := uc.entryRepo.UpdateStatus(ctx, tx, entryID, next); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return entry, nil
}
