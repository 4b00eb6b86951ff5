package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		wantErr error
	}{
		{"valid amount", "10000", nil},
		{"minimum amount", "0.01", nil},
		{"zero", "0", ErrInvalidAmount},
		{"negative", "-1", ErrInvalidAmount},
		{"below minimum", "0.001", ErrAmountTooSmall},
		{"above maximum", "100000000001", ErrAmountTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, err := decimal.NewFromString(tt.amount)
			if err != nil {
				t.Fatalf("bad fixture: %v", err)
			}

			if err := ValidateAmount(amount); !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateAmount(%s) = %v, want %v", tt.amount, err, tt.wantErr)
			}
		})
	}
}

func TestValidateCurrency(t *testing.T) {
	for _, code := range []string{"NGN", "GHS", "KES", "USD", "ngn", " NGN "} {
		if err := ValidateCurrency(code); err != nil {
			t.Errorf("ValidateCurrency(%q) = %v, want nil", code, err)
		}
	}

	for _, code := range []string{"", "XYZ", "NAIRA"} {
		if err := ValidateCurrency(code); err == nil {
			t.Errorf("ValidateCurrency(%q) = nil, want error", code)
		}
	}
}

func TestValidateNarration(t *testing.T) {
	if err := ValidateNarration("Requested a rider"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := ValidateNarration("   "); !errors.Is(err, ErrEmptyNarration) {
		t.Errorf("expected ErrEmptyNarration, got %v", err)
	}

	long := make([]byte, MaxNarrationLength+1)
	for i := range long {
		long[i] = 'a'
	}

	if err := ValidateNarration(string(long)); !errors.Is(err, ErrNarrationTooLong) {
		t.Errorf("expected ErrNarrationTooLong, got %v", err)
	}
}

func TestValidateHolderName(t *testing.T) {
	if err := ValidateHolderName("Mama Cass Restaurant"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := ValidateHolderName("  "); err == nil {
		t.Error("expected error for empty name")
	}
}

func TestValidatePagination(t *testing.T) {
	limit, offset, err := ValidatePagination(0, -5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if limit != 50 || offset != 0 {
		t.Errorf("got limit=%d offset=%d, want 50, 0", limit, offset)
	}

	limit, _, _ = ValidatePagination(5000, 0)
	if limit != 1000 {
		t.Errorf("got limit=%d, want clamp to 1000", limit)
	}
}
