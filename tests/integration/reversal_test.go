package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fleetpay/walletledger/internal/adapter/http/dto"
	"github.com/fleetpay/walletledger/internal/domain"
)

func TestReversal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	makeTransfer := func(t *testing.T, senderID, recipientID string, amount int64) dto.TransferResponse {
		t.Helper()

		body, _ := json.Marshal(dto.TransferRequest{
			SenderID:    senderID,
			RecipientID: recipientID,
			Amount:      decimal.NewFromInt(amount),
			Narration:   "order payment",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/transfers/", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		env.Router.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201 creating transfer, got %d: %s", rec.Code, rec.Body.String())
		}

		var transfer dto.TransferResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &transfer); err != nil {
			t.Fatalf("failed to decode transfer: %v", err)
		}
		return transfer
	}

	reverse := func(t *testing.T, transferID string) *httptest.ResponseRecorder {
		t.Helper()

		body, _ := json.Marshal(dto.ReverseTransferRequest{Narration: "order cancelled"})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/transfers/"+transferID+"/reverse", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		env.Router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("restores both balances", func(t *testing.T) {
		env.DB.TruncateAll(ctx)

		customer := env.DB.CreateTestHolderWithBalance(ctx, domain.HolderTypeUser, "Funke", "NGN", decimal.NewFromInt(8000), false)
		restaurant := env.DB.CreateTestHolderWithBalance(ctx, domain.HolderTypeRestaurant, "Mama Put", "NGN", decimal.NewFromInt(1000), false)

		transfer := makeTransfer(t, customer.ID, restaurant.ID, 3000)

		rec := reverse(t, transfer.ID)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201 reversing transfer, got %d: %s", rec.Code, rec.Body.String())
		}

		var reversal dto.TransferResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &reversal); err != nil {
			t.Fatalf("failed to decode reversal: %v", err)
		}
		if reversal.ReversedTransferID == nil || *reversal.ReversedTransferID != transfer.ID {
			t.Fatalf("expected reversal to link original transfer, got %+v", reversal)
		}

		gotCustomer, err := env.HolderUC.GetHolder(ctx, customer.ID)
		if err != nil {
			t.Fatalf("failed to fetch customer: %v", err)
		}
		if !gotCustomer.Balance.Equal(decimal.NewFromInt(8000)) {
			t.Errorf("expected customer balance restored to 8000, got %s", gotCustomer.Balance)
		}

		gotRestaurant, err := env.HolderUC.GetHolder(ctx, restaurant.ID)
		if err != nil {
			t.Fatalf("failed to fetch restaurant: %v", err)
		}
		if !gotRestaurant.Balance.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected restaurant balance restored to 1000, got %s", gotRestaurant.Balance)
		}
	})

	t.Run("rejects double reversal", func(t *testing.T) {
		env.DB.TruncateAll(ctx)

		customer := env.DB.CreateTestHolderWithBalance(ctx, domain.HolderTypeUser, "Funke", "NGN", decimal.NewFromInt(8000), false)
		restaurant := env.DB.CreateTestHolderWithBalance(ctx, domain.HolderTypeRestaurant, "Mama Put", "NGN", decimal.NewFromInt(1000), false)

		transfer := makeTransfer(t, customer.ID, restaurant.ID, 3000)

		if rec := reverse(t, transfer.ID); rec.Code != http.StatusCreated {
			t.Fatalf("expected first reversal to succeed, got %d: %s", rec.Code, rec.Body.String())
		}

		rec := reverse(t, transfer.ID)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409 on second reversal, got %d: %s", rec.Code, rec.Body.String())
		}

		// Balances must not drift past the original amounts
		gotCustomer, _ := env.HolderUC.GetHolder(ctx, customer.ID)
		if !gotCustomer.Balance.Equal(decimal.NewFromInt(8000)) {
			t.Errorf("expected customer balance 8000 after rejected reversal, got %s", gotCustomer.Balance)
		}
	})

	t.Run("rejects reversal when recipient already spent the funds", func(t *testing.T) {
		env.DB.TruncateAll(ctx)

		customer := env.DB.CreateTestHolderWithBalance(ctx, domain.HolderTypeUser, "Funke", "NGN", decimal.NewFromInt(8000), false)
		restaurant := env.DB.CreateTestHolder(ctx, domain.HolderTypeRestaurant, "Mama Put", "NGN", false)
		supplier := env.DB.CreateTestHolder(ctx, domain.HolderTypeMerchant, "Farm Fresh", "NGN", false)

		transfer := makeTransfer(t, customer.ID, restaurant.ID, 3000)
		makeTransfer(t, restaurant.ID, supplier.ID, 2500)

		rec := reverse(t, transfer.ID)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422 when recipient balance is insufficient, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("marks original entries reversed", func(t *testing.T) {
		env.DB.TruncateAll(ctx)

		customer := env.DB.CreateTestHolderWithBalance(ctx, domain.HolderTypeUser, "Funke", "NGN", decimal.NewFromInt(8000), false)
		restaurant := env.DB.CreateTestHolder(ctx, domain.HolderTypeRestaurant, "Mama Put", "NGN", false)

		transfer := makeTransfer(t, customer.ID, restaurant.ID, 3000)
		if rec := reverse(t, transfer.ID); rec.Code != http.StatusCreated {
			t.Fatalf("expected reversal to succeed, got %d", rec.Code)
		}

		req := httptest.NewRequest(http.MethodGet, "/api/v1/transfers/"+transfer.ID+"/entries", nil)
		rec := httptest.NewRecorder()
		env.Router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 listing entries, got %d", rec.Code)
		}

		var entries []*dto.EntryResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
			t.Fatalf("failed to decode entries: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("expected 2 original entries, got %d", len(entries))
		}
		for _, entry := range entries {
			if entry.Status != string(domain.EntryStatusReversed) {
				t.Errorf("expected entry %s to be reversed, got %s", entry.ID, entry.Status)
			}
		}

		// The restaurant's funds only ever moved through the ledger, so its
		// entry history must still account for its balance.
		reconReq := httptest.NewRequest(http.MethodGet, "/api/v1/holders/"+restaurant.ID+"/reconciliation", nil)
		reconRec := httptest.NewRecorder()
		env.Router.ServeHTTP(reconRec, reconReq)
		if reconRec.Code != http.StatusOK {
			t.Fatalf("expected 200 reconciling holder, got %d", reconRec.Code)
		}

		var recon dto.ReconciliationResponse
		if err := json.Unmarshal(reconRec.Body.Bytes(), &recon); err != nil {
			t.Fatalf("failed to decode reconciliation: %v", err)
		}
		if !recon.IsReconciled {
			t.Errorf("expected holder reconciled after reversal, difference %s", recon.Difference)
		}
	})
}
