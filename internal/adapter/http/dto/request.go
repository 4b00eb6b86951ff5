package dto

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/fleetpay/walletledger/internal/domain"
	"github.com/fleetpay/walletledger/internal/usecase"
)

var validate = validator.New()

// CreateHolderRequest represents a request to create a wallet holder.
type CreateHolderRequest struct {
	Type                 string `json:"type" validate:"required,oneof=user rider restaurant merchant platform"`
	Name                 string `json:"name" validate:"required,max=255"`
	Currency             string `json:"currency" validate:"required,len=3"`
	AllowNegativeBalance bool   `json:"allow_negative_balance"`
}

// Validate checks the request against its field constraints.
func (r *CreateHolderRequest) Validate() error {
	return validate.Struct(r)
}

// ToUseCaseInput converts to use case input.
func (r *CreateHolderRequest) ToUseCaseInput() usecase.CreateHolderInput {
	return usecase.CreateHolderInput{
		Type:                 domain.HolderType(r.Type),
		Name:                 r.Name,
		Currency:             r.Currency,
		AllowNegativeBalance: r.AllowNegativeBalance,
	}
}

// TransferRequest represents a request to move money between two holders.
type TransferRequest struct {
	SenderID    string          `json:"sender_id" validate:"required"`
	RecipientID string          `json:"recipient_id" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Narration   string          `json:"narration" validate:"required,max=500"`
	TrxRef      string          `json:"trx_ref"`
	Metadata    map[string]any  `json:"metadata,omitempty"`
}

// Validate checks the request against its field constraints.
func (r *TransferRequest) Validate() error {
	return validate.Struct(r)
}

// ToUseCaseInput converts to use case input.
func (r *TransferRequest) ToUseCaseInput() usecase.TransferMoneyInput {
	return usecase.TransferMoneyInput{
		SenderID:    r.SenderID,
		RecipientID: r.RecipientID,
		Amount:      r.Amount,
		Narration:   r.Narration,
		TrxRef:      r.TrxRef,
		Metadata:    r.Metadata,
	}
}

// MoneyRequest represents a single-sided debit or credit against a holder.
// The holder ID comes from the URL.
type MoneyRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Narration string          `json:"narration" validate:"required,max=500"`
	TrxRef    string          `json:"trx_ref"`
}

// Validate checks the request against its field constraints.
func (r *MoneyRequest) Validate() error {
	return validate.Struct(r)
}

// ToDebitInput converts to a debit use case input.
func (r *MoneyRequest) ToDebitInput(holderID string) usecase.DebitMoneyInput {
	return usecase.DebitMoneyInput{
		HolderID:  holderID,
		Amount:    r.Amount,
		Narration: r.Narration,
		TrxRef:    r.TrxRef,
	}
}

// ToCreditInput converts to a credit use case input.
func (r *MoneyRequest) ToCreditInput(holderID string) usecase.CreditMoneyInput {
	return usecase.CreditMoneyInput{
		HolderID:  holderID,
		Amount:    r.Amount,
		Narration: r.Narration,
		TrxRef:    r.TrxRef,
	}
}

// ReverseTransferRequest represents a request to reverse a transfer.
// The transfer ID comes from the URL.
type ReverseTransferRequest struct {
	Narration string         `json:"narration" validate:"required,max=500"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Validate checks the request against its field constraints.
func (r *ReverseTransferRequest) Validate() error {
	return validate.Struct(r)
}

// ToUseCaseInput converts to use case input.
func (r *ReverseTransferRequest) ToUseCaseInput(transferID string) usecase.ReverseTransferInput {
	return usecase.ReverseTransferInput{
		TransferID: transferID,
		Narration:  r.Narration,
		Metadata:   r.Metadata,
	}
}

// RequestWithdrawalRequest represents a holder's request to withdraw funds.
type RequestWithdrawalRequest struct {
	HolderID    string          `json:"holder_id" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Narration   string          `json:"narration" validate:"required,max=500"`
	TrxRef      string          `json:"trx_ref"`
	BankAccount string          `json:"bank_account" validate:"required"`
	Metadata    map[string]any  `json:"metadata,omitempty"`
}

// Validate checks the request against its field constraints.
func (r *RequestWithdrawalRequest) Validate() error {
	return validate.Struct(r)
}

// ToUseCaseInput converts to use case input.
func (r *RequestWithdrawalRequest) ToUseCaseInput() usecase.RequestWithdrawalInput {
	return usecase.RequestWithdrawalInput{
		HolderID:    r.HolderID,
		Amount:      r.Amount,
		Narration:   r.Narration,
		TrxRef:      r.TrxRef,
		BankAccount: r.BankAccount,
		Metadata:    r.Metadata,
	}
}

// UpdateEntryStatusRequest represents a request to move a ledger entry to a
// new lifecycle status.
type UpdateEntryStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending successful failed reversed"`
}

// Validate checks the request against its field constraints.
func (r *UpdateEntryStatusRequest) Validate() error {
	return validate.Struct(r)
}
