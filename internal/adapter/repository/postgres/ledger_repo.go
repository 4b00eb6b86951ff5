package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/fleetpay/walletledger/internal/infrastructure/postgres/generated"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// CheckConservation returns the sum of all holder balances and the net of
// all posted ledger entries. Both sums come from one statement so they see
// the same snapshot; a transfer committing mid-check cannot skew one side.
func (r *LedgerRepository) CheckConservation(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	row, err := generated.New(r.pool).CheckLedgerConservation(ctx)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return numericToDecimal(row.TotalBalance), numericToDecimal(row.EntryNet), nil
}
