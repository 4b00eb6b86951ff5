package domain

import "time"

// Event types
const (
	EventTypeTransferCreated     = "transfer.created"
	EventTypeTransferReversed    = "transfer.reversed"
	EventTypeHolderCreated       = "holder.created"
	EventTypeHolderDebited       = "holder.debited"
	EventTypeHolderCredited      = "holder.credited"
	EventTypeWithdrawalRequested = "withdrawal.requested"
	EventTypeWithdrawalApproved  = "withdrawal.approved"
	EventTypeWithdrawalRejected  = "withdrawal.rejected"
)

// Aggregate types
const (
	AggregateTypeTransfer   = "transfer"
	AggregateTypeHolder     = "holder"
	AggregateTypeWithdrawal = "withdrawal"
)

// OutboxEvent represents an event to be published.
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// TransferCreatedEvent payload
type TransferCreatedEvent struct {
	TransferID  string `json:"transfer_id"`
	SenderID    string `json:"sender_id"`
	RecipientID string `json:"recipient_id"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Narration   string `json:"narration"`
}

// TransferReversedEvent payload
type TransferReversedEvent struct {
	ReversalTransferID string `json:"reversal_transfer_id"`
	OriginalTransferID string `json:"original_transfer_id"`
	Amount             string `json:"amount"`
	Currency           string `json:"currency"`
}

// WithdrawalRequestedEvent payload
type WithdrawalRequestedEvent struct {
	WithdrawalID string `json:"withdrawal_id"`
	HolderID     string `json:"holder_id"`
	Amount       string `json:"amount"`
	Currency     string `json:"currency"`
}

// HolderCreatedEvent payload
type HolderCreatedEvent struct {
	HolderID string `json:"holder_id"`
	Type     string `json:"type"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
}
