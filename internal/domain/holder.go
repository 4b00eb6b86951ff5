package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// HolderType identifies which platform collection a wallet holder belongs to.
type HolderType string

const (
	HolderTypeUser       HolderType = "user"
	HolderTypeRider      HolderType = "rider"
	HolderTypeRestaurant HolderType = "restaurant"
	HolderTypeMerchant   HolderType = "merchant"

	// HolderTypePlatform is the admin-owned wallet that funds admin-initiated
	// credits and receives platform fees.
	HolderTypePlatform HolderType = "platform"
)

var validHolderTypes = map[HolderType]bool{
	HolderTypeUser:       true,
	HolderTypeRider:      true,
	HolderTypeRestaurant: true,
	HolderTypeMerchant:   true,
	HolderTypePlatform:   true,
}

// IsValid checks if the holder type is a known type.
func (t HolderType) IsValid() bool {
	return validHolderTypes[t]
}

// Holder represents any entity that owns a wallet balance.
type Holder struct {
	ID                   string
	Type                 HolderType
	Name                 string
	Currency             string
	Balance              decimal.Decimal
	PendingBalance       decimal.Decimal
	Version              int64
	AllowNegativeBalance bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// AvailableBalance returns the balance net of funds reserved by open
// withdrawal requests.
func (h *Holder) AvailableBalance() decimal.Decimal {
	return h.Balance.Sub(h.PendingBalance)
}

// ValidateDebit checks if the holder can be debited by amount.
func (h *Holder) ValidateDebit(amount decimal.Decimal) error {
	if h.AllowNegativeBalance {
		return nil
	}

	if h.AvailableBalance().Sub(amount).IsNegative() {
		return ErrInsufficientBalance
	}

	return nil
}

// ApplyDebit returns the new balance after a debit.
func (h *Holder) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return h.Balance.Sub(amount)
}

// ApplyCredit returns the new balance after a credit.
func (h *Holder) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return h.Balance.Add(amount)
}
