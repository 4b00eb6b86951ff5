package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fleetpay/walletledger/internal/domain"
)

// HolderRepository defines data access for wallet holders.
type HolderRepository interface {
	Create(ctx context.Context, holder *domain.Holder) error
	CreateTx(ctx context.Context, tx Transaction, holder *domain.Holder) error
	GetByID(ctx context.Context, id string) (*domain.Holder, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Holder, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Holder, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	UpdatePendingBalance(ctx context.Context, tx Transaction, id string, pendingBalance decimal.Decimal, updatedAt time.Time) error
	List(ctx context.Context, holderType domain.HolderType, limit, offset int) ([]*domain.Holder, error)
}

// TransferRepository defines data access for transfers.
type TransferRepository interface {
	Create(ctx context.Context, tx Transaction, transfer *domain.Transfer) error
	GetByID(ctx context.Context, id string) (*domain.Transfer, error)
	ListByHolder(ctx context.Context, holderID string, limit, offset int) ([]*domain.Transfer, error)
}

// EntryRepository defines data access for ledger entries.
type EntryRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.Entry) error
	GetByID(ctx context.Context, id string) (*domain.Entry, error)
	GetByTransfer(ctx context.Context, transferID string) ([]*domain.Entry, error)
	GetByTransferTx(ctx context.Context, tx Transaction, transferID string) ([]*domain.Entry, error)
	GetByHolder(ctx context.Context, holderID string, limit, offset int) ([]*domain.Entry, error)
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.EntryStatus) error
	// SumPostedByHolder nets the holder's successful and reversed entries.
	// A reversed entry's balance effect stays on the books; the reversal's
	// own entries compensate it.
	SumPostedByHolder(ctx context.Context, holderID string) (decimal.Decimal, error)
}

// WithdrawalRepository defines data access for withdrawal requests.
type WithdrawalRepository interface {
	Create(ctx context.Context, tx Transaction, withdrawal *domain.Withdrawal) error
	GetByID(ctx context.Context, id string) (*domain.Withdrawal, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Withdrawal, error)
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.WithdrawalStatus, updatedAt time.Time) error
	ListByHolder(ctx context.Context, holderID string, limit, offset int) ([]*domain.Withdrawal, error)
}

// LedgerRepository defines data access for ledger-wide operations.
type LedgerRepository interface {
	// CheckConservation returns the sum of all holder balances and the net
	// of all posted entries (credits minus debits), read from one snapshot.
	CheckConservation(ctx context.Context) (totalBalance, entryNet decimal.Decimal, err error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	GetByAggregate(ctx context.Context, aggregateType, aggregateID string, limit, offset int) ([]*domain.OutboxEvent, error)
	DeletePublished(ctx context.Context, before time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries an operation on transient database failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyProcessing is the placeholder value stored under an idempotency
// key while its first request is still in flight. Callers seeing it must not
// execute the operation again.
const IdempotencyProcessing = "processing"

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
