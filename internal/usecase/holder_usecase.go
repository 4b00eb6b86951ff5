package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fleetpay/walletledger/internal/domain"
)

// HolderUseCase handles wallet holder business logic.
type HolderUseCase struct {
	holderRepo HolderRepository
	outboxRepo OutboxRepository
	txManager  TransactionManager
	cache      Cache
	idGen      IDGenerator
}

// NewHolderUseCase creates a new HolderUseCase. Cache may be nil.
func NewHolderUseCase(
	txManager TransactionManager,
	holderRepo HolderRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	cache Cache,
) *HolderUseCase {
	return &HolderUseCase{
		txManager:  txManager,
		holderRepo: holderRepo,
		outboxRepo: outboxRepo,
		idGen:      idGen,
		cache:      cache,
	}
}

// CreateHolderInput represents input for creating a holder.
type CreateHolderInput struct {
	Type                 domain.HolderType
	Name                 string
	Currency             string
	AllowNegativeBalance bool
}

// CreateHolder creates a new wallet holder with a zero balance.
func (uc *HolderUseCase) CreateHolder(ctx context.Context, input CreateHolderInput) (*domain.Holder, error) {
	if !input.Type.IsValid() {
		return nil, domain.ErrInvalidHolderType
	}

	if err := domain.ValidateHolderName(input.Name); err != nil {
		return nil, err
	}

	if err := domain.ValidateCurrency(input.Currency); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	holder := &domain.Holder{
		ID:                   uc.idGen.Generate(),
		Type:                 input.Type,
		Name:                 input.Name,
		Currency:             input.Currency,
		Balance:              decimal.Zero,
		PendingBalance:       decimal.Zero,
		Version:              0,
		AllowNegativeBalance: input.AllowNegativeBalance,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := uc.holderRepo.CreateTx(ctx, tx, holder); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   holder.ID,
		AggregateType: domain.AggregateTypeHolder,
		EventType:     domain.EventTypeHolderCreated,
		Payload: map[string]any{
			"holder_id": holder.ID,
			"type":      string(holder.Type),
			"name":      holder.Name,
			"currency":  holder.Currency,
		},
		CreatedAt: now,
	}

	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return holder, nil
}

// GetHolder retrieves a holder by ID through the read cache.
func (uc *HolderUseCase) GetHolder(ctx context.Context, id string) (*domain.Holder, error) {
	if uc.cache != nil {
		if data, err := uc.cache.Get(ctx, holderCacheKey(id)); err == nil && data != nil {
			var holder domain.Holder
			if err := json.Unmarshal(data, &holder); err == nil {
				return &holder, nil
			}
		}
	}

	holder, err := uc.holderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if data, err := json.Marshal(holder); err == nil {
			_ = uc.cache.Set(ctx, holderCacheKey(id), data, HolderCacheTTL)
		}
	}

	return holder, nil
}

// ListHoldersInput represents input for listing holders.
type ListHoldersInput struct {
	Type   domain.HolderType
	Limit  int
	Offset int
}

// ListHolders lists holders with pagination, optionally filtered by type.
func (uc *HolderUseCase) ListHolders(ctx context.Context, input ListHoldersInput) ([]*domain.Holder, error) {
	if input.Type != "" && !input.Type.IsValid() {
		return nil, domain.ErrInvalidHolderType
	}

	return uc.holderRepo.List(ctx, input.Type, clampPage(input.Limit), input.Offset)
}

func holderCacheKey(id string) string {
	return "holder:" + id
}
