package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fleetpay/walletledger/internal/adapter/http/dto"
	"github.com/fleetpay/walletledger/internal/domain"
	"github.com/fleetpay/walletledger/internal/usecase"
)

// HolderService defines the behavior needed by HolderHandler.
type HolderService interface {
	CreateHolder(ctx context.Context, input usecase.CreateHolderInput) (*domain.Holder, error)
	GetHolder(ctx context.Context, id string) (*domain.Holder, error)
	ListHolders(ctx context.Context, input usecase.ListHoldersInput) ([]*domain.Holder, error)
}

// HolderHandler handles holder-related HTTP requests.
type HolderHandler struct {
	holderUC HolderService
}

// NewHolderHandler creates a new HolderHandler.
func NewHolderHandler(holderUC HolderService) *HolderHandler {
	return &HolderHandler{holderUC: holderUC}
}

// Create creates a new wallet holder.
func (h *HolderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateHolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	holder, err := h.holderUC.CreateHolder(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create holder", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.HolderFromDomain(holder))
}

// Get retrieves a holder by ID.
func (h *HolderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing holder ID", "")
		return
	}

	holder, err := h.holderUC.GetHolder(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get holder", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.HolderFromDomain(holder))
}

// List lists holders, optionally filtered by type.
func (h *HolderHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)
	holderType := r.URL.Query().Get("type")

	holders, err := h.holderUC.ListHolders(r.Context(), usecase.ListHoldersInput{
		Type:   domain.HolderType(holderType),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list holders", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ListHoldersResponse{
		Holders: dto.HoldersFromDomain(holders),
		Total:   int64(len(holders)),
	})
}
