package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createWithdrawal = `-- name: CreateWithdrawal :one
INSERT INTO withdrawals (id, holder_id, amount, narration, trx_ref, bank_account, status, metadata, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id, holder_id, amount, narration, trx_ref, bank_account, status, metadata, created_at, updated_at
`

type CreateWithdrawalParams struct {
	ID          string             `json:"id"`
	HolderID    string             `json:"holder_id"`
	Amount      pgtype.Numeric     `json:"amount"`
	Narration   string             `json:"narration"`
	TrxRef      pgtype.Text        `json:"trx_ref"`
	BankAccount pgtype.Text        `json:"bank_account"`
	Status      string             `json:"status"`
	Metadata    []byte             `json:"metadata"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
	UpdatedAt   pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) CreateWithdrawal(ctx context.Context, arg CreateWithdrawalParams) (Withdrawal, error) {
	row := q.db.QueryRow(ctx, createWithdrawal,
		arg.ID,
		arg.HolderID,
		arg.Amount,
		arg.Narration,
		arg.TrxRef,
		arg.BankAccount,
		arg.Status,
		arg.Metadata,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	var i Withdrawal
	err := row.Scan(
		&i.ID,
		&i.HolderID,
		&i.Amount,
		&i.Narration,
		&i.TrxRef,
		&i.BankAccount,
		&i.Status,
		&i.Metadata,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getWithdrawalByID = `-- name: GetWithdrawalByID :one
SELECT id, holder_id, amount, narration, trx_ref, bank_account, status, metadata, created_at, updated_at FROM withdrawals WHERE id = $1
`

func (q *Queries) GetWithdrawalByID(ctx context.Context, id string) (Withdrawal, error) {
	row := q.db.QueryRow(ctx, getWithdrawalByID, id)
	var i Withdrawal
	err := row.Scan(
		&i.ID,
		&i.HolderID,
		&i.Amount,
		&i.Narration,
		&i.TrxRef,
		&i.BankAccount,
		&i.Status,
		&i.Metadata,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getWithdrawalByIDForUpdate = `-- name: GetWithdrawalByIDForUpdate :one
SELECT id, holder_id, amount, narration, trx_ref, bank_account, status, metadata, created_at, updated_at FROM withdrawals WHERE id = $1 FOR UPDATE
`

func (q *Queries) GetWithdrawalByIDForUpdate(ctx context.Context, id string) (Withdrawal, error) {
	row := q.db.QueryRow(ctx, getWithdrawalByIDForUpdate, id)
	var i Withdrawal
	err := row.Scan(
		&i.ID,
		&i.HolderID,
		&i.Amount,
		&i.Narration,
		&i.TrxRef,
		&i.BankAccount,
		&i.Status,
		&i.Metadata,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listWithdrawalsByHolder = `-- name: ListWithdrawalsByHolder :many
SELECT id, holder_id, amount, narration, trx_ref, bank_account, status, metadata, created_at, updated_at FROM withdrawals
WHERE holder_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3
`

type ListWithdrawalsByHolderParams struct {
	HolderID string `json:"holder_id"`
	Limit    int32  `json:"limit"`
	Offset   int32  `json:"offset"`
}

func (q *Queries) ListWithdrawalsByHolder(ctx context.Context, arg ListWithdrawalsByHolderParams) ([]Withdrawal, error) {
	rows, err := q.db.Query(ctx, listWithdrawalsByHolder, arg.HolderID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Withdrawal{}
	for rows.Next() {
		var i Withdrawal
		if err := rows.Scan(
			&i.ID,
			&i.HolderID,
			&i.Amount,
			&i.Narration,
			&i.TrxRef,
			&i.BankAccount,
			&i.Status,
			&i.Metadata,
			&i.CreatedAt,
			&i.UpdatedAt,
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

const updateWithdrawalStatus = `-- name: UpdateWithdrawalStatus :exec
UPDATE withdrawals SET status = $2, updated_at = $3 WHERE id = $1
`

type UpdateWithdrawalStatusParams struct {
	ID        string             `json:"id"`
	Status    string             `json:"status"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateWithdrawalStatus(ctx context.Context, arg UpdateWithdrawalStatusParams) error {
	_, err := q.db.Exec(ctx, updateWithdrawalStatus, arg.ID, arg.Status, arg.UpdatedAt)
	return err
}
