package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fleetpay/walletledger/internal/domain"
	"github.com/fleetpay/walletledger/internal/infrastructure/postgres/generated"
	"github.com/fleetpay/walletledger/internal/usecase"
)

// TransferRepository implements usecase.TransferRepository.
type TransferRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewTransferRepository creates a new TransferRepository.
func NewTransferRepository(pool *pgxpool.Pool) *TransferRepository {
	return &TransferRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create creates a new transfer within a transaction.
func (r *TransferRepository) Create(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	metadata, err := json.Marshal(transfer.Metadata)
	if err != nil {
		return err
	}

	var reversedID string
	if transfer.ReversedTransferID != nil {
		reversedID = *transfer.ReversedTransferID
	}

	_, err = queries.CreateTransfer(ctx, generated.CreateTransferParams{
		ID:                 transfer.ID,
		SenderID:           transfer.SenderID,
		RecipientID:        transfer.RecipientID,
		Amount:             decimalToNumeric(transfer.Amount),
		Narration:          transfer.Narration,
		TrxRef:             stringToText(transfer.TrxRef),
		Metadata:           metadata,
		ReversedTransferID: stringToText(reversedID),
		CreatedAt:          timeToPgTimestamptz(transfer.CreatedAt),
	})

	return err
}

// GetByID retrieves a transfer by ID.
func (r *TransferRepository) GetByID(ctx context.Context, id string) (*domain.Transfer, error) {
	row, err := r.queries.GetTransferByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransferNotFound
		}

		return nil, err
	}

	return rowToTransfer(row), nil
}

// ListByHolder lists transfers a holder took part in, newest first.
func (r *TransferRepository) ListByHolder(ctx context.Context, holderID string, limit, offset int) ([]*domain.Transfer, error) {
	rows, err := r.queries.ListTransfersByHolder(ctx, generated.ListTransfersByHolderParams{
		HolderID: holderID,
		Limit:    int32(limit),
		Offset:   int32(offset),
	})
	if err != nil {
		return nil, err
	}

	transfers := make([]*domain.Transfer, 0, len(rows))
	for _, row := range rows {
		transfers = append(transfers, rowToTransfer(row))
	}

	return transfers, nil
}

func rowToTransfer(row generated.Transfer) *domain.Transfer {
	var metadata map[string]any
	if row.Metadata != nil {
		_ = json.Unmarshal(row.Metadata, &metadata)
	}

	var reversedID *string
	if row.ReversedTransferID.Valid {
		id := row.ReversedTransferID.String
		reversedID = &id
	}

	return &domain.Transfer{
		ID:                 row.ID,
		SenderID:           row.SenderID,
		RecipientID:        row.RecipientID,
		Amount:             numericToDecimal(row.Amount),
		Narration:          row.Narration,
		TrxRef:             textToString(row.TrxRef),
		Metadata:           metadata,
		ReversedTransferID: reversedID,
		CreatedAt:          row.CreatedAt.Time,
	}
}
