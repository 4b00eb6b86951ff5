package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fleetpay/walletledger/internal/adapter/http/dto"
	"github.com/fleetpay/walletledger/internal/adapter/http/middleware"
	"github.com/fleetpay/walletledger/internal/domain"
	"github.com/fleetpay/walletledger/internal/usecase"
)

// WithdrawalService defines the behavior needed by WithdrawalHandler.
type WithdrawalService interface {
	RequestWithdrawal(ctx context.Context, input usecase.RequestWithdrawalInput) (*domain.Withdrawal, error)
	GetWithdrawal(ctx context.Context, id string) (*domain.Withdrawal, error)
	ApproveWithdrawal(ctx context.Context, withdrawalID, actorID string) (*domain.Withdrawal, error)
	RejectWithdrawal(ctx context.Context, withdrawalID, actorID string) (*domain.Withdrawal, error)
	ListWithdrawals(ctx context.Context, input usecase.ListWithdrawalsInput) ([]*domain.Withdrawal, error)
}

// WithdrawalHandler handles withdrawal HTTP requests.
type WithdrawalHandler struct {
	withdrawalUC WithdrawalService
}

// NewWithdrawalHandler creates a new WithdrawalHandler.
func NewWithdrawalHandler(withdrawalUC WithdrawalService) *WithdrawalHandler {
	return &WithdrawalHandler{withdrawalUC: withdrawalUC}
}

// Request reserves funds for a new withdrawal request.
func (h *WithdrawalHandler) Request(w http.ResponseWriter, r *http.Request) {
	var req dto.RequestWithdrawalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	input := req.ToUseCaseInput()
	input.ActorID = middleware.ActorID(r.Context())

	withdrawal, err := h.withdrawalUC.RequestWithdrawal(r.Context(), input)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to request withdrawal", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.WithdrawalFromDomain(withdrawal))
}

// Get retrieves a withdrawal by ID.
func (h *WithdrawalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing withdrawal ID", "")
		return
	}

	withdrawal, err := h.withdrawalUC.GetWithdrawal(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get withdrawal", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.WithdrawalFromDomain(withdrawal))
}

// Approve settles a pending withdrawal and debits the holder.
func (h *WithdrawalHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing withdrawal ID", "")
		return
	}

	withdrawal, err := h.withdrawalUC.ApproveWithdrawal(r.Context(), id, middleware.ActorID(r.Context()))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to approve withdrawal", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.WithdrawalFromDomain(withdrawal))
}

// Reject releases a pending withdrawal's reservation without debiting.
func (h *WithdrawalHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing withdrawal ID", "")
		return
	}

	withdrawal, err := h.withdrawalUC.RejectWithdrawal(r.Context(), id, middleware.ActorID(r.Context()))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to reject withdrawal", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.WithdrawalFromDomain(withdrawal))
}

// ListByHolder lists a holder's withdrawal requests newest-first.
func (h *WithdrawalHandler) ListByHolder(w http.ResponseWriter, r *http.Request) {
	holderID := chi.URLParam(r, "id")
	if holderID == "" {
		writeError(w, http.StatusBadRequest, "missing holder ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	withdrawals, err := h.withdrawalUC.ListWithdrawals(r.Context(), usecase.ListWithdrawalsInput{
		HolderID: holderID,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list withdrawals", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.WithdrawalsFromDomain(withdrawals))
}
