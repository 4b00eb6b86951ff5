package domain

import "errors"

var (
	// Holder errors
	ErrHolderNotFound      = errors.New("holder not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidHolderType   = errors.New("invalid holder type")

	// Transfer errors
	ErrSameHolder            = errors.New("cannot transfer to same holder")
	ErrInvalidAmount         = errors.New("amount must be positive")
	ErrEmptyNarration        = errors.New("narration must not be empty")
	ErrCurrencyMismatch      = errors.New("cannot transfer between different currencies")
	ErrTransferNotFound      = errors.New("transfer not found")
	ErrTransferNotReversible = errors.New("transfer has already been reversed")

	// Entry errors
	ErrEntryNotFound           = errors.New("ledger entry not found")
	ErrInvalidEntryType        = errors.New("entry type must be credit or debit")
	ErrInvalidStatusTransition = errors.New("invalid entry status transition")
	ErrEntryReversalForbidden  = errors.New("entries can only be reversed by reversing their transfer")
)
