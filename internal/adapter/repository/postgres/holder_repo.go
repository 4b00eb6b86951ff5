package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/fleetpay/walletledger/internal/domain"
	"github.com/fleetpay/walletledger/internal/infrastructure/postgres/generated"
	"github.com/fleetpay/walletledger/internal/usecase"
)

// HolderRepository implements usecase.HolderRepository.
type HolderRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewHolderRepository creates a new HolderRepository.
func NewHolderRepository(pool *pgxpool.Pool) *HolderRepository {
	return &HolderRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create creates a new holder.
func (r *HolderRepository) Create(ctx context.Context, holder *domain.Holder) error {
	_, err := r.queries.CreateHolder(ctx, createHolderParams(holder))

	return err
}

// CreateTx creates a new holder within a transaction.
func (r *HolderRepository) CreateTx(ctx context.Context, tx usecase.Transaction, holder *domain.Holder) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	_, err := queries.CreateHolder(ctx, createHolderParams(holder))

	return err
}

// GetByID retrieves a holder by ID.
func (r *HolderRepository) GetByID(ctx context.Context, id string) (*domain.Holder, error) {
	row, err := r.queries.GetHolderByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrHolderNotFound
		}

		return nil, err
	}

	return rowToHolder(row), nil
}

// GetByIDForUpdate retrieves a holder by ID with a FOR UPDATE lock.
func (r *HolderRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Holder, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	row, err := queries.GetHolderByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrHolderNotFound
		}

		return nil, err
	}

	return rowToHolder(row), nil
}

// GetByIDsForUpdate retrieves multiple holders with FOR UPDATE locks. Rows
// are locked in ID order regardless of input order.
func (r *HolderRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Holder, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	rows, err := queries.GetHoldersByIDsForUpdate(ctx, ids)
	if err != nil {
		return nil, err
	}

	holders := make([]*domain.Holder, 0, len(rows))
	for _, row := range rows {
		holders = append(holders, rowToHolder(row))
	}

	return holders, nil
}

// UpdateBalance updates the balance of a holder and bumps its version.
func (r *HolderRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.UpdateHolderBalance(ctx, generated.UpdateHolderBalanceParams{
		ID:        id,
		Balance:   decimalToNumeric(balance),
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})
}

// UpdatePendingBalance updates the pending balance of a holder.
func (r *HolderRepository) UpdatePendingBalance(ctx context.Context, tx usecase.Transaction, id string, pendingBalance decimal.Decimal, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.UpdateHolderPendingBalance(ctx, generated.UpdateHolderPendingBalanceParams{
		ID:             id,
		PendingBalance: decimalToNumeric(pendingBalance),
		UpdatedAt:      timeToPgTimestamptz(updatedAt),
	})
}

// List lists holders with pagination, optionally filtered by type.
func (r *HolderRepository) List(ctx context.Context, holderType domain.HolderType, limit, offset int) ([]*domain.Holder, error) {
	var (
		rows []generated.Holder
		err  error
	)

	if holderType == "" {
		rows, err = r.queries.ListHolders(ctx, generated.ListHoldersParams{
			Limit:  int32(limit),
			Offset: int32(offset),
		})
	} else {
		rows, err = r.queries.ListHoldersByType(ctx, generated.ListHoldersByTypeParams{
			Type:   string(holderType),
			Limit:  int32(limit),
			Offset: int32(offset),
		})
	}
	if err != nil {
		return nil, err
	}

	holders := make([]*domain.Holder, 0, len(rows))
	for _, row := range rows {
		holders = append(holders, rowToHolder(row))
	}

	return holders, nil
}

func createHolderParams(holder *domain.Holder) generated.CreateHolderParams {
	return generated.CreateHolderParams{
		ID:                   holder.ID,
		Type:                 string(holder.Type),
		Name:                 holder.Name,
		Currency:             holder.Currency,
		Balance:              decimalToNumeric(holder.Balance),
		PendingBalance:       decimalToNumeric(holder.PendingBalance),
		Version:              holder.Version,
		AllowNegativeBalance: holder.AllowNegativeBalance,
		CreatedAt:            timeToPgTimestamptz(holder.CreatedAt),
		UpdatedAt:            timeToPgTimestamptz(holder.UpdatedAt),
	}
}

func rowToHolder(row generated.Holder) *domain.Holder {
	return &domain.Holder{
		ID:                   row.ID,
		Type:                 domain.HolderType(row.Type),
		Name:                 row.Name,
		Currency:             row.Currency,
		Balance:              numericToDecimal(row.Balance),
		PendingBalance:       numericToDecimal(row.PendingBalance),
		Version:              row.Version,
		AllowNegativeBalance: row.AllowNegativeBalance,
		CreatedAt:            row.CreatedAt.Time,
		UpdatedAt:            row.UpdatedAt.Time,
	}
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func textToString(t pgtype.Text) string {
	if !t.Valid {
		return ""
	}

	return t.String
}

func stringToText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}
