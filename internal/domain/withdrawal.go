package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrWithdrawalNotFound   = errors.New("withdrawal not found")
	ErrWithdrawalNotPending = errors.New("withdrawal is not pending")
)

// WithdrawalStatus is the lifecycle state of a withdrawal request.
type WithdrawalStatus string

const (
	WithdrawalStatusPending  WithdrawalStatus = "pending"
	WithdrawalStatusApproved WithdrawalStatus = "approved"
	WithdrawalStatusRejected WithdrawalStatus = "rejected"
)

// Withdrawal represents a holder's request to withdraw funds. While pending,
// the amount is reserved against the holder's available balance.
type Withdrawal struct {
	ID          string
	HolderID    string
	Amount      decimal.Decimal
	Narration   string
	TrxRef      string
	Status      WithdrawalStatus
	BankAccount string
	Metadata    map[string]any
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks if the withdrawal request is valid.
func (w *Withdrawal) Validate() error {
	if w.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if w.Narration == "" {
		return ErrEmptyNarration
	}

	return nil
}
