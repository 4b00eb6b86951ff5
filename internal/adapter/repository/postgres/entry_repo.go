package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/fleetpay/walletledger/internal/domain"
	"github.com/fleetpay/walletledger/internal/infrastructure/postgres/generated"
	"github.com/fleetpay/walletledger/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create creates a new ledger entry within a transaction.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	_, err := queries.CreateEntry(ctx, generated.CreateEntryParams{
		ID:            entry.ID,
		HolderID:      entry.HolderID,
		TransferID:    stringToText(entry.TransferID),
		Type:          string(entry.Type),
		Amount:        decimalToNumeric(entry.Amount),
		Narration:     entry.Narration,
		TrxRef:        stringToText(entry.TrxRef),
		Status:        string(entry.Status),
		BalanceBefore: decimalToNumeric(entry.BalanceBefore),
		BalanceAfter:  decimalToNumeric(entry.BalanceAfter),
		HolderVersion: entry.HolderVersion,
		CreatedAt:     timeToPgTimestamptz(entry.CreatedAt),
	})

	return err
}

// GetByID retrieves an entry by ID.
func (r *EntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	row, err := r.queries.GetEntryByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	return rowToEntry(row), nil
}

// GetByTransfer retrieves the entries of a transfer.
func (r *EntryRepository) GetByTransfer(ctx context.Context, transferID string) ([]*domain.Entry, error) {
	rows, err := r.queries.GetEntriesByTransfer(ctx, stringToText(transferID))
	if err != nil {
		return nil, err
	}

	return rowsToEntries(rows), nil
}

// GetByTransferTx retrieves the entries of a transfer inside a transaction,
// so the read sees rows written by the same transaction.
func (r *EntryRepository) GetByTransferTx(ctx context.Context, tx usecase.Transaction, transferID string) ([]*domain.Entry, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	rows, err := queries.GetEntriesByTransfer(ctx, stringToText(transferID))
	if err != nil {
		return nil, err
	}

	return rowsToEntries(rows), nil
}

// GetByHolder retrieves a holder's entries newest-first with pagination.
func (r *EntryRepository) GetByHolder(ctx context.Context, holderID string, limit, offset int) ([]*domain.Entry, error) {
	rows, err := r.queries.GetEntriesByHolder(ctx, generated.GetEntriesByHolderParams{
		HolderID: holderID,
		Limit:    int32(limit),
		Offset:   int32(offset),
	})
	if err != nil {
		return nil, err
	}

	return rowsToEntries(rows), nil
}

// UpdateStatus updates the status of an entry within a transaction.
func (r *EntryRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.EntryStatus) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.UpdateEntryStatus(ctx, generated.UpdateEntryStatusParams{
		ID:     id,
		Status: string(status),
	})
}

// SumPostedByHolder returns the net of a holder's posted entries, credits
// minus debits. Reversed entries count: their balance effect was real and
// stays until the compensating entries of the reversal cancel it.
func (r *EntryRepository) SumPostedByHolder(ctx context.Context, holderID string) (decimal.Decimal, error) {
	net, err := r.queries.SumPostedEntriesByHolder(ctx, holderID)
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(net), nil
}

func rowToEntry(row generated.LedgerEntry) *domain.Entry {
	return &domain.Entry{
		ID:            row.ID,
		HolderID:      row.HolderID,
		TransferID:    textToString(row.TransferID),
		Type:          domain.EntryType(row.Type),
		Amount:        numericToDecimal(row.Amount),
		Narration:     row.Narration,
		TrxRef:        textToString(row.TrxRef),
		Status:        domain.EntryStatus(row.Status),
		BalanceBefore: numericToDecimal(row.BalanceBefore),
		BalanceAfter:  numericToDecimal(row.BalanceAfter),
		HolderVersion: row.HolderVersion,
		CreatedAt:     row.CreatedAt.Time,
	}
}

func rowsToEntries(rows []generated.LedgerEntry) []*domain.Entry {
	entries := make([]*domain.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, rowToEntry(row))
	}

	return entries
}
