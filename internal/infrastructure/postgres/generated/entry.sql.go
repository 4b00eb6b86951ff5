package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const countEntriesByHolder = `-- name: CountEntriesByHolder :one
SELECT COUNT(*) FROM ledger_entries WHERE holder_id = $1
`

func (q *Queries) CountEntriesByHolder(ctx context.Context, holderID string) (int64, error) {
	row := q.db.QueryRow(ctx, countEntriesByHolder, holderID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createEntry = `-- name: CreateEntry :one
INSERT INTO ledger_entries (id, holder_id, transfer_id, type, amount, narration, trx_ref, status, balance_before, balance_after, holder_version, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING id, holder_id, transfer_id, type, amount, narration, trx_ref, status, balance_before, balance_after, holder_version, created_at
`

type CreateEntryParams struct {
	ID            string             `json:"id"`
	HolderID      string             `json:"holder_id"`
	TransferID    pgtype.Text        `json:"transfer_id"`
	Type          string             `json:"type"`
	Amount        pgtype.Numeric     `json:"amount"`
	Narration     string             `json:"narration"`
	TrxRef        pgtype.Text        `json:"trx_ref"`
	Status        string             `json:"status"`
	BalanceBefore pgtype.Numeric     `json:"balance_before"`
	BalanceAfter  pgtype.Numeric     `json:"balance_after"`
	HolderVersion int64              `json:"holder_version"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateEntry(ctx context.Context, arg CreateEntryParams) (LedgerEntry, error) {
	row := q.db.QueryRow(ctx, createEntry,
		arg.ID,
		arg.HolderID,
		arg.TransferID,
		arg.Type,
		arg.Amount,
		arg.Narration,
		arg.TrxRef,
		arg.Status,
		arg.BalanceBefore,
		arg.BalanceAfter,
		arg.HolderVersion,
		arg.CreatedAt,
	)
	var i LedgerEntry
	err := row.Scan(
		&i.ID,
		&i.HolderID,
		&i.TransferID,
		&i.Type,
		&i.Amount,
		&i.Narration,
		&i.TrxRef,
		&i.Status,
		&i.BalanceBefore,
		&i.BalanceAfter,
		&i.HolderVersion,
		&i.CreatedAt,
	)
	return i, err
}

const getEntryByID = `-- name: GetEntryByID :one
SELECT id, holder_id, transfer_id, type, amount, narration, trx_ref, status, balance_before, balance_after, holder_version, created_at FROM ledger_entries WHERE id = $1
`

func (q *Queries) GetEntryByID(ctx context.Context, id string) (LedgerEntry, error) {
	row := q.db.QueryRow(ctx, getEntryByID, id)
	var i LedgerEntry
	err := row.Scan(
		&i.ID,
		&i.HolderID,
		&i.TransferID,
		&i.Type,
		&i.Amount,
		&i.Narration,
		&i.TrxRef,
		&i.Status,
		&i.BalanceBefore,
		&i.BalanceAfter,
		&i.HolderVersion,
		&i.CreatedAt,
	)
	return i, err
}

const getEntriesByHolder = `-- name: GetEntriesByHolder :many
SELECT id, holder_id, transfer_id, type, amount, narration, trx_ref, status, balance_before, balance_after, holder_version, created_at FROM ledger_entries
WHERE holder_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3
`

type GetEntriesByHolderParams struct {
	HolderID string `json:"holder_id"`
	Limit    int32  `json:"limit"`
	Offset   int32  `json:"offset"`
}

func (q *Queries) GetEntriesByHolder(ctx context.Context, arg GetEntriesByHolderParams) ([]LedgerEntry, error) {
	rows, err := q.db.Query(ctx, getEntriesByHolder, arg.HolderID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []LedgerEntry{}
	for rows.Next() {
		var i LedgerEntry
		if err := rows.Scan(
			&i.ID,
			&i.HolderID,
			&i.TransferID,
			&i.Type,
			&i.Amount,
			&i.Narration,
			&i.TrxRef,
			&i.Status,
			&i.BalanceBefore,
			&i.BalanceAfter,
			&i.HolderVersion,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getEntriesByTransfer = `-- name: GetEntriesByTransfer :many
SELECT id, holder_id, transfer_id, type, amount, narration, trx_ref, status, balance_before, balance_after, holder_version, created_at FROM ledger_entries
WHERE transfer_id = $1 ORDER BY created_at, id
`

func (q *Queries) GetEntriesByTransfer(ctx context.Context, transferID pgtype.Text) ([]LedgerEntry, error) {
	rows, err := q.db.Query(ctx, getEntriesByTransfer, transferID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []LedgerEntry{}
	for rows.Next() {
		var i LedgerEntry
		if err := rows.Scan(
			&i.ID,
			&i.HolderID,
			&i.TransferID,
			&i.Type,
			&i.Amount,
			&i.Narration,
			&i.TrxRef,
			&i.Status,
			&i.BalanceBefore,
			&i.BalanceAfter,
			&i.HolderVersion,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const sumPostedEntriesByHolder = `-- name: SumPostedEntriesByHolder :one
SELECT COALESCE(SUM(CASE WHEN type = 'credit' THEN amount ELSE -amount END), 0)::NUMERIC AS net
FROM ledger_entries WHERE holder_id = $1 AND status IN ('successful', 'reversed')
`

func (q *Queries) SumPostedEntriesByHolder(ctx context.Context, holderID string) (pgtype.Numeric, error) {
	row := q.db.QueryRow(ctx, sumPostedEntriesByHolder, holderID)
	var net pgtype.Numeric
	err := row.Scan(&net)
	return net, err
}

const updateEntryStatus = `-- name: UpdateEntryStatus :exec
UPDATE ledger_entries SET status = $2 WHERE id = $1
`

type UpdateEntryStatusParams struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func (q *Queries) UpdateEntryStatus(ctx context.Context, arg UpdateEntryStatusParams) error {
	_, err := q.db.Exec(ctx, updateEntryStatus, arg.ID, arg.Status)
	return err
}
