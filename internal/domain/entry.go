package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType marks a ledger entry as a credit or a debit against its holder.
type EntryType string

const (
	EntryTypeCredit EntryType = "credit"
	EntryTypeDebit  EntryType = "debit"
)

// EntryStatus is the lifecycle state of a ledger entry.
type EntryStatus string

const (
	EntryStatusPending    EntryStatus = "pending"
	EntryStatusSuccessful EntryStatus = "successful"
	EntryStatusFailed     EntryStatus = "failed"
	EntryStatusReversed   EntryStatus = "reversed"
)

// entryTransitions is the single source of truth for status transitions.
// failed and reversed are terminal.
var entryTransitions = map[EntryStatus]map[EntryStatus]bool{
	EntryStatusPending: {
		EntryStatusSuccessful: true,
		EntryStatusFailed:     true,
	},
	EntryStatusSuccessful: {
		EntryStatusReversed: true,
	},
}

// CanTransitionTo reports whether status may move to next.
func (s EntryStatus) CanTransitionTo(next EntryStatus) bool {
	return entryTransitions[s][next]
}

// Entry represents a single immutable ledger entry against a holder.
// Entries are append-only; only Status may change after the initial write.
type Entry struct {
	ID            string
	HolderID      string
	TransferID    string
	Type          EntryType
	Amount        decimal.Decimal
	Narration     string
	TrxRef        string
	Status        EntryStatus
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
	HolderVersion int64
	CreatedAt     time.Time
}

// Validate checks entry invariants before it is written.
func (e *Entry) Validate() error {
	if e.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if e.Narration == "" {
		return ErrEmptyNarration
	}

	if e.Type != EntryTypeCredit && e.Type != EntryTypeDebit {
		return ErrInvalidEntryType
	}

	return nil
}

// Transition moves the entry to the next status, enforcing the state machine.
func (e *Entry) Transition(next EntryStatus) error {
	if !e.Status.CanTransitionTo(next) {
		return ErrInvalidStatusTransition
	}

	e.Status = next

	return nil
}
