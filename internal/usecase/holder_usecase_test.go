package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fleetpay/walletledger/internal/domain"
	"github.com/fleetpay/walletledger/internal/usecase"
	"github.com/fleetpay/walletledger/internal/usecase/mocks"
)

func TestHolderUseCase_CreateHolder(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.CreateHolderInput
		setupMocks  func(*mocks.MockHolderRepository, *mocks.MockIDGenerator)
		wantErr     error
		expectError bool
	}{
		{
			name: "successful rider holder creation",
			input: usecase.CreateHolderInput{
				Type:     domain.HolderTypeRider,
				Name:     "rider-wallet",
				Currency: "NGN",
			},
			setupMocks: func(repo *mocks.MockHolderRepository, idGen *mocks.MockIDGenerator) {
				idGen.GenerateFunc = func() string { return "holder-123" }
			},
		},
		{
			name: "platform holder with negative balance allowed",
			input: usecase.CreateHolderInput{
				Type:                 domain.HolderTypePlatform,
				Name:                 "platform-float",
				Currency:             "NGN",
				AllowNegativeBalance: true,
			},
			setupMocks: func(repo *mocks.MockHolderRepository, idGen *mocks.MockIDGenerator) {},
		},
		{
			name: "invalid holder type",
			input: usecase.CreateHolderInput{
				Type:     "driver",
				Name:     "wallet",
				Currency: "NGN",
			},
			setupMocks:  func(repo *mocks.MockHolderRepository, idGen *mocks.MockIDGenerator) {},
			wantErr:     domain.ErrInvalidHolderType,
			expectError: true,
		},
		{
			name: "empty name",
			input: usecase.CreateHolderInput{
				Type:     domain.HolderTypeUser,
				Currency: "NGN",
			},
			setupMocks:  func(repo *mocks.MockHolderRepository, idGen *mocks.MockIDGenerator) {},
			expectError: true,
		},
		{
			name: "unsupported currency",
			input: usecase.CreateHolderInput{
				Type:     domain.HolderTypeUser,
				Name:     "wallet",
				Currency: "XYZ",
			},
			setupMocks:  func(repo *mocks.MockHolderRepository, idGen *mocks.MockIDGenerator) {},
			expectError: true,
		},
		{
			name: "repository error",
			input: usecase.CreateHolderInput{
				Type:     domain.HolderTypeUser,
				Name:     "wallet",
				Currency: "NGN",
			},
			setupMocks: func(repo *mocks.MockHolderRepository, idGen *mocks.MockIDGenerator) {
				repo.CreateTxFunc = func(ctx context.Context, tx usecase.Transaction, holder *domain.Holder) error {
					return errors.New("insert failed")
				}
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockHolderRepository()
			outboxRepo := mocks.NewMockOutboxRepository()
			idGen := mocks.NewMockIDGenerator()
			tt.setupMocks(repo, idGen)

			uc := usecase.NewHolderUseCase(mocks.NewMockTransactionManager(), repo, outboxRepo, idGen, nil)
			holder, err := uc.CreateHolder(context.Background(), tt.input)

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if holder == nil {
				t.Fatal("expected holder, got nil")
			}
			if !holder.Balance.IsZero() || !holder.PendingBalance.IsZero() {
				t.Errorf("new holder must start at zero, got %s/%s", holder.Balance, holder.PendingBalance)
			}
			if holder.AllowNegativeBalance != tt.input.AllowNegativeBalance {
				t.Error("negative balance policy not carried")
			}

			events := outboxRepo.Events()
			if len(events) != 1 || events[0].EventType != domain.EventTypeHolderCreated {
				t.Errorf("expected one holder.created event, got %+v", events)
			}
		})
	}
}

func TestHolderUseCase_GetHolder_Cached(t *testing.T) {
	repo := mocks.NewMockHolderRepository()
	cache := mocks.NewMockCache()
	idGen := mocks.NewMockIDGenerator()
	uc := usecase.NewHolderUseCase(mocks.NewMockTransactionManager(), repo, mocks.NewMockOutboxRepository(), idGen, cache)

	repo.Add(&domain.Holder{ID: "h1", Type: domain.HolderTypeUser, Name: "wallet", Currency: "NGN"})

	ctx := context.Background()

	// First read goes to the repository and warms the cache.
	holder, err := uc.GetHolder(ctx, "h1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if holder.ID != "h1" {
		t.Errorf("expected h1, got %s", holder.ID)
	}

	// Second read must be served from the cache.
	calls := 0
	repo.GetByIDFunc = func(ctx context.Context, id string) (*domain.Holder, error) {
		calls++
		return nil, domain.ErrHolderNotFound
	}

	holder, err = uc.GetHolder(ctx, "h1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if holder.Name != "wallet" {
		t.Errorf("cached holder corrupted: %+v", holder)
	}
	if calls != 0 {
		t.Errorf("expected cache hit, repository called %d times", calls)
	}
}

func TestHolderUseCase_GetHolder_NotFound(t *testing.T) {
	repo := mocks.NewMockHolderRepository()
	uc := usecase.NewHolderUseCase(mocks.NewMockTransactionManager(), repo, mocks.NewMockOutboxRepository(), mocks.NewMockIDGenerator(), nil)

	_, err := uc.GetHolder(context.Background(), "missing")
	if !errors.Is(err, domain.ErrHolderNotFound) {
		t.Errorf("expected ErrHolderNotFound, got %v", err)
	}
}

func TestHolderUseCase_ListHolders(t *testing.T) {
	repo := mocks.NewMockHolderRepository()
	uc := usecase.NewHolderUseCase(mocks.NewMockTransactionManager(), repo, mocks.NewMockOutboxRepository(), mocks.NewMockIDGenerator(), nil)

	repo.Add(&domain.Holder{ID: "h1", Type: domain.HolderTypeRider})
	repo.Add(&domain.Holder{ID: "h2", Type: domain.HolderTypeRider})
	repo.Add(&domain.Holder{ID: "h3", Type: domain.HolderTypeRestaurant})

	ctx := context.Background()

	all, err := uc.ListHolders(ctx, usecase.ListHoldersInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 holders, got %d", len(all))
	}

	riders, err := uc.ListHolders(ctx, usecase.ListHoldersInput{Type: domain.HolderTypeRider})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(riders) != 2 {
		t.Errorf("expected 2 riders, got %d", len(riders))
	}

	_, err = uc.ListHolders(ctx, usecase.ListHoldersInput{Type: "driver"})
	if !errors.Is(err, domain.ErrInvalidHolderType) {
		t.Errorf("expected ErrInvalidHolderType, got %v", err)
	}
}
