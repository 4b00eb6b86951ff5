package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fleetpay/walletledger/internal/domain"
	"github.com/fleetpay/walletledger/internal/usecase"
)

// HolderResponse represents a wallet holder in API responses.
type HolderResponse struct {
	ID                   string          `json:"id"`
	Type                 string          `json:"type"`
	Name                 string          `json:"name"`
	Currency             string          `json:"currency"`
	Balance              decimal.Decimal `json:"balance"`
	PendingBalance       decimal.Decimal `json:"pending_balance"`
	AvailableBalance     decimal.Decimal `json:"available_balance"`
	Version              int64           `json:"version"`
	AllowNegativeBalance bool            `json:"allow_negative_balance"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// HolderFromDomain converts a domain holder to a response.
func HolderFromDomain(h *domain.Holder) *HolderResponse {
	return &HolderResponse{
		ID:                   h.ID,
		Type:                 string(h.Type),
		Name:                 h.Name,
		Currency:             h.Currency,
		Balance:              h.Balance,
		PendingBalance:       h.PendingBalance,
		AvailableBalance:     h.AvailableBalance(),
		Version:              h.Version,
		AllowNegativeBalance: h.AllowNegativeBalance,
		CreatedAt:            h.CreatedAt,
		UpdatedAt:            h.UpdatedAt,
	}
}

// HoldersFromDomain converts domain holders to responses.
func HoldersFromDomain(holders []*domain.Holder) []*HolderResponse {
	result := make([]*HolderResponse, len(holders))
	for i, h := range holders {
		result[i] = HolderFromDomain(h)
	}
	return result
}

// ListHoldersResponse wraps a page of holders.
type ListHoldersResponse struct {
	Holders []*HolderResponse `json:"holders"`
	Total   int64             `json:"total"`
}

// TransferResponse represents a transfer in API responses.
type TransferResponse struct {
	ID                 string          `json:"id"`
	SenderID           string          `json:"sender_id"`
	RecipientID        string          `json:"recipient_id"`
	Amount             decimal.Decimal `json:"amount"`
	Narration          string          `json:"narration"`
	TrxRef             string          `json:"trx_ref,omitempty"`
	ReversedTransferID *string         `json:"reversed_transfer_id,omitempty"`
	Metadata           map[string]any  `json:"metadata,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
}

// TransferFromDomain converts a domain transfer to a response.
func TransferFromDomain(t *domain.Transfer) *TransferResponse {
	return &TransferResponse{
		ID:                 t.ID,
		SenderID:           t.SenderID,
		RecipientID:        t.RecipientID,
		Amount:             t.Amount,
		Narration:          t.Narration,
		TrxRef:             t.TrxRef,
		ReversedTransferID: t.ReversedTransferID,
		Metadata:           t.Metadata,
		CreatedAt:          t.CreatedAt,
	}
}

// TransfersFromDomain converts domain transfers to responses.
func TransfersFromDomain(transfers []*domain.Transfer) []*TransferResponse {
	result := make([]*TransferResponse, len(transfers))
	for i, t := range transfers {
		result[i] = TransferFromDomain(t)
	}
	return result
}

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	ID            string          `json:"id"`
	HolderID      string          `json:"holder_id"`
	TransferID    string          `json:"transfer_id,omitempty"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Narration     string          `json:"narration"`
	TrxRef        string          `json:"trx_ref,omitempty"`
	Status        string          `json:"status"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	HolderVersion int64           `json:"holder_version"`
	CreatedAt     time.Time       `json:"created_at"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	return &EntryResponse{
		ID:            e.ID,
		HolderID:      e.HolderID,
		TransferID:    e.TransferID,
		Type:          string(e.Type),
		Amount:        e.Amount,
		Narration:     e.Narration,
		TrxRef:        e.TrxRef,
		Status:        string(e.Status),
		BalanceBefore: e.BalanceBefore,
		BalanceAfter:  e.BalanceAfter,
		HolderVersion: e.HolderVersion,
		CreatedAt:     e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// WithdrawalResponse represents a withdrawal request in API responses.
type WithdrawalResponse struct {
	ID          string          `json:"id"`
	HolderID    string          `json:"holder_id"`
	Amount      decimal.Decimal `json:"amount"`
	Narration   string          `json:"narration"`
	TrxRef      string          `json:"trx_ref,omitempty"`
	Status      string          `json:"status"`
	BankAccount string          `json:"bank_account"`
	Metadata    map[string]any  `json:"metadata,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// WithdrawalFromDomain converts a domain withdrawal to a response.
func WithdrawalFromDomain(w *domain.Withdrawal) *WithdrawalResponse {
	return &WithdrawalResponse{
		ID:          w.ID,
		HolderID:    w.HolderID,
		Amount:      w.Amount,
		Narration:   w.Narration,
		TrxRef:      w.TrxRef,
		Status:      string(w.Status),
		BankAccount: w.BankAccount,
		Metadata:    w.Metadata,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

// WithdrawalsFromDomain converts domain withdrawals to responses.
func WithdrawalsFromDomain(withdrawals []*domain.Withdrawal) []*WithdrawalResponse {
	result := make([]*WithdrawalResponse, len(withdrawals))
	for i, w := range withdrawals {
		result[i] = WithdrawalFromDomain(w)
	}
	return result
}

// ReconciliationResponse represents a holder reconciliation result.
type ReconciliationResponse struct {
	HolderID          string          `json:"holder_id"`
	RecordedBalance   decimal.Decimal `json:"recorded_balance"`
	CalculatedBalance decimal.Decimal `json:"calculated_balance"`
	Difference        decimal.Decimal `json:"difference"`
	IsReconciled      bool            `json:"is_reconciled"`
	CheckedAt         time.Time       `json:"checked_at"`
}

// ReconciliationFromUseCase converts a reconciliation result to a response.
func ReconciliationFromUseCase(r *usecase.HolderReconciliation) *ReconciliationResponse {
	return &ReconciliationResponse{
		HolderID:          r.HolderID,
		RecordedBalance:   r.RecordedBalance,
		CalculatedBalance: r.CalculatedBalance,
		Difference:        r.Difference,
		IsReconciled:      r.IsReconciled,
		CheckedAt:         r.CheckedAt,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
