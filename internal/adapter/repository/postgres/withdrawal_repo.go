package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fleetpay/walletledger/internal/domain"
	"github.com/fleetpay/walletledger/internal/infrastructure/postgres/generated"
	"github.com/fleetpay/walletledger/internal/usecase"
)

// WithdrawalRepository implements usecase.WithdrawalRepository.
type WithdrawalRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewWithdrawalRepository creates a new WithdrawalRepository.
func NewWithdrawalRepository(pool *pgxpool.Pool) *WithdrawalRepository {
	return &WithdrawalRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create creates a new withdrawal request within a transaction.
func (r *WithdrawalRepository) Create(ctx context.Context, tx usecase.Transaction, withdrawal *domain.Withdrawal) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	metadata, err := json.Marshal(withdrawal.Metadata)
	if err != nil {
		return err
	}

	_, err = queries.CreateWithdrawal(ctx, generated.CreateWithdrawalParams{
		ID:          withdrawal.ID,
		HolderID:    withdrawal.HolderID,
		Amount:      decimalToNumeric(withdrawal.Amount),
		Narration:   withdrawal.Narration,
		TrxRef:      stringToText(withdrawal.TrxRef),
		BankAccount: stringToText(withdrawal.BankAccount),
		Status:      string(withdrawal.Status),
		Metadata:    metadata,
		CreatedAt:   timeToPgTimestamptz(withdrawal.CreatedAt),
		UpdatedAt:   timeToPgTimestamptz(withdrawal.UpdatedAt),
	})

	return err
}

// GetByID retrieves a withdrawal by ID.
func (r *WithdrawalRepository) GetByID(ctx context.Context, id string) (*domain.Withdrawal, error) {
	row, err := r.queries.GetWithdrawalByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWithdrawalNotFound
		}

		return nil, err
	}

	return rowToWithdrawal(row), nil
}

// GetByIDForUpdate retrieves a withdrawal by ID with a FOR UPDATE lock.
func (r *WithdrawalRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Withdrawal, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	row, err := queries.GetWithdrawalByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWithdrawalNotFound
		}

		return nil, err
	}

	return rowToWithdrawal(row), nil
}

// UpdateStatus updates the status of a withdrawal within a transaction.
func (r *WithdrawalRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.WithdrawalStatus, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.UpdateWithdrawalStatus(ctx, generated.UpdateWithdrawalStatusParams{
		ID:        id,
		Status:    string(status),
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})
}

// ListByHolder lists a holder's withdrawals newest-first.
func (r *WithdrawalRepository) ListByHolder(ctx context.Context, holderID string, limit, offset int) ([]*domain.Withdrawal, error) {
	rows, err := r.queries.ListWithdrawalsByHolder(ctx, generated.ListWithdrawalsByHolderParams{
		HolderID: holderID,
		Limit:    int32(limit),
		Offset:   int32(offset),
	})
	if err != nil {
		return nil, err
	}

	withdrawals := make([]*domain.Withdrawal, 0, len(rows))
	for _, row := range rows {
		withdrawals = append(withdrawals, rowToWithdrawal(row))
	}

	return withdrawals, nil
}

func rowToWithdrawal(row generated.Withdrawal) *domain.Withdrawal {
	var metadata map[string]any
	if row.Metadata != nil {
		_ = json.Unmarshal(row.Metadata, &metadata)
	}

	return &domain.Withdrawal{
		ID:          row.ID,
		HolderID:    row.HolderID,
		Amount:      numericToDecimal(row.Amount),
		Narration:   row.Narration,
		TrxRef:      textToString(row.TrxRef),
		BankAccount: textToString(row.BankAccount),
		Status:      domain.WithdrawalStatus(row.Status),
		Metadata:    metadata,
		CreatedAt:   row.CreatedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
	}
}
