package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestEntryStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    EntryStatus
		to      EntryStatus
		allowed bool
	}{
		{EntryStatusPending, EntryStatusSuccessful, true},
		{EntryStatusPending, EntryStatusFailed, true},
		{EntryStatusPending, EntryStatusReversed, false},
		{EntryStatusSuccessful, EntryStatusReversed, true},
		{EntryStatusSuccessful, EntryStatusFailed, false},
		{EntryStatusSuccessful, EntryStatusPending, false},
		{EntryStatusFailed, EntryStatusSuccessful, false},
		{EntryStatusFailed, EntryStatusPending, false},
		{EntryStatusReversed, EntryStatusSuccessful, false},
		{EntryStatusReversed, EntryStatusPending, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.allowed {
			t.Errorf("%s -> %s: got %v, want %v", tt.from, tt.to, got, tt.allowed)
		}
	}
}

func TestEntry_Transition(t *testing.T) {
	e := &Entry{Status: EntryStatusPending}

	if err := e.Transition(EntryStatusSuccessful); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if e.Status != EntryStatusSuccessful {
		t.Errorf("status = %s, want successful", e.Status)
	}

	if err := e.Transition(EntryStatusReversed); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// reversed is terminal
	if err := e.Transition(EntryStatusSuccessful); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Errorf("expected ErrInvalidStatusTransition, got %v", err)
	}
}

func TestEntry_Validate(t *testing.T) {
	tests := []struct {
		name    string
		entry   Entry
		wantErr error
	}{
		{
			name:  "valid debit entry",
			entry: Entry{Type: EntryTypeDebit, Amount: decimal.NewFromInt(100), Narration: "Requested a rider"},
		},
		{
			name:    "zero amount",
			entry:   Entry{Type: EntryTypeCredit, Amount: decimal.Zero, Narration: "x"},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			entry:   Entry{Type: EntryTypeCredit, Amount: decimal.NewFromInt(-5), Narration: "x"},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "empty narration",
			entry:   Entry{Type: EntryTypeCredit, Amount: decimal.NewFromInt(5)},
			wantErr: ErrEmptyNarration,
		},
		{
			name:    "unknown entry type",
			entry:   Entry{Type: EntryType("transfer"), Amount: decimal.NewFromInt(5), Narration: "x"},
			wantErr: ErrInvalidEntryType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
