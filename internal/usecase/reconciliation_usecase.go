package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrLedgerNotConserved is returned when the sum of holder balances does not
// match the net of committed ledger entries.
var ErrLedgerNotConserved = errors.New("ledger not conserved: holder balances do not match entry history")

// ReconciliationUseCase verifies that the balance store and the ledger entry
// store agree with each other.
type ReconciliationUseCase struct {
	holderRepo HolderRepository
	entryRepo  EntryRepository
	ledgerRepo LedgerRepository
}

// NewReconciliationUseCase creates a new ReconciliationUseCase.
func NewReconciliationUseCase(
	holderRepo HolderRepository,
	entryRepo EntryRepository,
	ledgerRepo LedgerRepository,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		holderRepo: holderRepo,
		entryRepo:  entryRepo,
		ledgerRepo: ledgerRepo,
	}
}

// HolderReconciliation is the result of reconciling one holder.
type HolderReconciliation struct {
	HolderID          string
	RecordedBalance   decimal.Decimal
	CalculatedBalance decimal.Decimal
	Difference        decimal.Decimal
	IsReconciled      bool
	CheckedAt         time.Time
}

// ReconcileHolder recomputes a holder's balance from its posted ledger
// entries and compares it with the stored balance. Reversed entries are
// included: reversing a transfer never rewrites history, it appends
// compensating entries, so the originals still account for balance moves.
func (uc *ReconciliationUseCase) ReconcileHolder(ctx context.Context, holderID string) (*HolderReconciliation, error) {
	holder, err := uc.holderRepo.GetByID(ctx, holderID)
	if err != nil {
		return nil, err
	}

	calculated, err := uc.entryRepo.SumPostedByHolder(ctx, holderID)
	if err != nil {
		return nil, err
	}

	difference := holder.Balance.Sub(calculated)

	return &HolderReconciliation{
		HolderID:          holderID,
		RecordedBalance:   holder.Balance,
		CalculatedBalance: calculated,
		Difference:        difference,
		IsReconciled:      difference.IsZero(),
		CheckedAt:         time.Now().UTC(),
	}, nil
}

// CheckConservation verifies that the total of all holder balances equals
// the net of all posted entries: value only enters or leaves a wallet
// through a ledger entry.
func (uc *ReconciliationUseCase) CheckConservation(ctx context.Context) error {
	totalBalance, entryNet, err := uc.ledgerRepo.CheckConservation(ctx)
	if err != nil {
		return err
	}

	if !totalBalance.Equal(entryNet) {
		return ErrLedgerNotConserved
	}

	return nil
}
