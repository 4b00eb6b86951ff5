package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer represents a paired debit+credit moving value between two holders.
type Transfer struct {
	CreatedAt          time.Time
	Metadata           map[string]any
	ID                 string
	SenderID           string
	RecipientID        string
	Amount             decimal.Decimal
	Narration          string
	TrxRef             string
	ReversedTransferID *string
}

// Validate validates a transfer request.
func (t *Transfer) Validate() error {
	if t.SenderID == t.RecipientID {
		return ErrSameHolder
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if t.Narration == "" {
		return ErrEmptyNarration
	}

	return nil
}
