package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fleetpay/walletledger/internal/domain"
	"github.com/fleetpay/walletledger/internal/usecase"
	"github.com/fleetpay/walletledger/internal/usecase/mocks"
)

func newEntry(id, holderID string, status domain.EntryStatus, createdAt time.Time) *domain.Entry {
	return &domain.Entry{
		ID:        id,
		HolderID:  holderID,
		Type:      domain.EntryTypeCredit,
		Amount:    decimal.RequireFromString("100"),
		Narration: "test entry",
		Status:    status,
		CreatedAt: createdAt,
	}
}

func TestEntryUseCase_ListEntries(t *testing.T) {
	entryRepo := mocks.NewMockEntryRepository()
	uc := usecase.NewEntryUseCase(mocks.NewMockTransactionManager(), entryRepo)

	base := time.Now().UTC()
	entryRepo.Add(newEntry("e1", "h1", domain.EntryStatusSuccessful, base.Add(-2*time.Minute)))
	entryRepo.Add(newEntry("e2", "h1", domain.EntryStatusSuccessful, base.Add(-time.Minute)))
	entryRepo.Add(newEntry("e3", "h2", domain.EntryStatusSuccessful, base))

	entries, err := uc.ListEntries(context.Background(), usecase.ListEntriesInput{HolderID: "h1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID != "e2" {
		t.Errorf("expected newest entry first, got %s", entries[0].ID)
	}
}

func TestEntryUseCase_GetEntriesByTransfer(t *testing.T) {
	entryRepo := mocks.NewMockEntryRepository()
	uc := usecase.NewEntryUseCase(mocks.NewMockTransactionManager(), entryRepo)

	now := time.Now().UTC()
	debit := newEntry("e1", "h1", domain.EntryStatusSuccessful, now)
	debit.TransferID = "t1"
	credit := newEntry("e2", "h2", domain.EntryStatusSuccessful, now)
	credit.TransferID = "t1"
	other := newEntry("e3", "h3", domain.EntryStatusSuccessful, now)
	other.TransferID = "t2"

	entryRepo.Add(debit)
	entryRepo.Add(credit)
	entryRepo.Add(other)

	entries, err := uc.GetEntriesByTransfer(context.Background(), "t1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries for transfer, got %d", len(entries))
	}
}

func TestEntryUseCase_UpdateEntryStatus(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.EntryStatus
		to      domain.EntryStatus
		wantErr error
	}{
		{name: "pending to successful", from: domain.EntryStatusPending, to: domain.EntryStatusSuccessful},
		{name: "pending to failed", from: domain.EntryStatusPending, to: domain.EntryStatusFailed},
		{name: "reversal only via transfer", from: domain.EntryStatusSuccessful, to: domain.EntryStatusReversed, wantErr: domain.ErrEntryReversalForbidden},
		{name: "failed is terminal", from: domain.EntryStatusFailed, to: domain.EntryStatusSuccessful, wantErr: domain.ErrInvalidStatusTransition},
		{name: "reversed is terminal", from: domain.EntryStatusReversed, to: domain.EntryStatusSuccessful, wantErr: domain.ErrInvalidStatusTransition},
		{name: "successful cannot fail", from: domain.EntryStatusSuccessful, to: domain.EntryStatusFailed, wantErr: domain.ErrInvalidStatusTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entryRepo := mocks.NewMockEntryRepository()
			uc := usecase.NewEntryUseCase(mocks.NewMockTransactionManager(), entryRepo)

			entryRepo.Add(newEntry("e1", "h1", tt.from, time.Now().UTC()))

			entry, err := uc.UpdateEntryStatus(context.Background(), "e1", tt.to)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				stored, _ := entryRepo.GetByID(context.Background(), "e1")
				if stored.Status != tt.from {
					t.Errorf("status changed on rejected transition: %s", stored.Status)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if entry.Status != tt.to {
				t.Errorf("expected %s, got %s", tt.to, entry.Status)
			}
		})
	}
}

func TestEntryUseCase_UpdateEntryStatus_NotFound(t *testing.T) {
	uc := usecase.NewEntryUseCase(mocks.NewMockTransactionManager(), mocks.NewMockEntryRepository())

	_, err := uc.UpdateEntryStatus(context.Background(), "missing", domain.EntryStatusSuccessful)
	if !errors.Is(err, domain.ErrEntryNotFound) {
		t.Errorf("expected ErrEntryNotFound, got %v", err)
	}
}
