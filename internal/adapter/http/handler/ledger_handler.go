package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fleetpay/walletledger/internal/adapter/http/dto"
	"github.com/fleetpay/walletledger/internal/usecase"
)

// LedgerHandler handles ledger-wide operations.
type LedgerHandler struct {
	reconciliationUC *usecase.ReconciliationUseCase
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(reconciliationUC *usecase.ReconciliationUseCase) *LedgerHandler {
	return &LedgerHandler{reconciliationUC: reconciliationUC}
}

// CheckConservation checks that holder balances match the entry history.
func (h *LedgerHandler) CheckConservation(w http.ResponseWriter, r *http.Request) {
	err := h.reconciliationUC.CheckConservation(r.Context())
	if err != nil {
		if errors.Is(err, usecase.ErrLedgerNotConserved) {
			writeJSON(w, http.StatusConflict, map[string]any{
				"status":    "not_conserved",
				"conserved": false,
				"message":   err.Error(),
			})
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to check conservation", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "conserved",
		"conserved": true,
	})
}

// ReconcileHolder recomputes one holder's balance from its entries.
func (h *LedgerHandler) ReconcileHolder(w http.ResponseWriter, r *http.Request) {
	holderID := chi.URLParam(r, "id")
	if holderID == "" {
		writeError(w, http.StatusBadRequest, "missing holder ID", "")
		return
	}

	result, err := h.reconciliationUC.ReconcileHolder(r.Context(), holderID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to reconcile holder", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationFromUseCase(result))
}
