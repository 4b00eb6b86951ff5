package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const countHolders = `-- name: CountHolders :one
SELECT COUNT(*) FROM holders
`

func (q *Queries) CountHolders(ctx context.Context) (int64, error) {
	row := q.db.QueryRow(ctx, countHolders)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createHolder = `-- name: CreateHolder :one
INSERT INTO holders (id, type, name, currency, balance, pending_balance, version, allow_negative_balance, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id, type, name, currency, balance, pending_balance, version, allow_negative_balance, created_at, updated_at
`

type CreateHolderParams struct {
	ID                   string             `json:"id"`
	Type                 string             `json:"type"`
	Name                 string             `json:"name"`
	Currency             string             `json:"currency"`
	Balance              pgtype.Numeric     `json:"balance"`
	PendingBalance       pgtype.Numeric     `json:"pending_balance"`
	Version              int64              `json:"version"`
	AllowNegativeBalance bool               `json:"allow_negative_balance"`
	CreatedAt            pgtype.Timestamptz `json:"created_at"`
	UpdatedAt            pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) CreateHolder(ctx context.Context, arg CreateHolderParams) (Holder, error) {
	row := q.db.QueryRow(ctx, createHolder,
		arg.ID,
		arg.Type,
		arg.Name,
		arg.Currency,
		arg.Balance,
		arg.PendingBalance,
		arg.Version,
		arg.AllowNegativeBalance,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	var i Holder
	err := row.Scan(
		&i.ID,
		&i.Type,
		&i.Name,
		&i.Currency,
		&i.Balance,
		&i.PendingBalance,
		&i.Version,
		&i.AllowNegativeBalance,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getHolderByID = `-- name: GetHolderByID :one
SELECT id, type, name, currency, balance, pending_balance, version, allow_negative_balance, created_at, updated_at FROM holders WHERE id = $1
`

func (q *Queries) GetHolderByID(ctx context.Context, id string) (Holder, error) {
	row := q.db.QueryRow(ctx, getHolderByID, id)
	var i Holder
	err := row.Scan(
		&i.ID,
		&i.Type,
		&i.Name,
		&i.Currency,
		&i.Balance,
		&i.PendingBalance,
		&i.Version,
		&i.AllowNegativeBalance,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getHolderByIDForUpdate = `-- name: GetHolderByIDForUpdate :one
SELECT id, type, name, currency, balance, pending_balance, version, allow_negative_balance, created_at, updated_at FROM holders WHERE id = $1 FOR UPDATE
`

func (q *Queries) GetHolderByIDForUpdate(ctx context.Context, id string) (Holder, error) {
	row := q.db.QueryRow(ctx, getHolderByIDForUpdate, id)
	var i Holder
	err := row.Scan(
		&i.ID,
		&i.Type,
		&i.Name,
		&i.Currency,
		&i.Balance,
		&i.PendingBalance,
		&i.Version,
		&i.AllowNegativeBalance,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getHoldersByIDsForUpdate = `-- name: GetHoldersByIDsForUpdate :many
SELECT id, type, name, currency, balance, pending_balance, version, allow_negative_balance, created_at, updated_at FROM holders WHERE id = ANY($1::text[]) ORDER BY id FOR UPDATE
`

func (q *Queries) GetHoldersByIDsForUpdate(ctx context.Context, dollar_1 []string) ([]Holder, error) {
	rows, err := q.db.Query(ctx, getHoldersByIDsForUpdate, dollar_1)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Holder{}
	for rows.Next() {
		var i Holder
		if err := rows.Scan(
			&i.ID,
			&i.Type,
			&i.Name,
			&i.Currency,
			&i.Balance,
			&i.PendingBalance,
			&i.Version,
			&i.AllowNegativeBalance,
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

const listHolders = `-- name: ListHolders :many
SELECT id, type, name, currency, balance, pending_balance, version, allow_negative_balance, created_at, updated_at FROM holders ORDER BY created_at DESC LIMIT $1 OFFSET $2
`

type ListHoldersParams struct {
	Limit  int32 `json:"limit"`
	Offset int32 `json:"offset"`
}

func (q *Queries) ListHolders(ctx context.Context, arg ListHoldersParams) ([]Holder, error) {
	rows, err := q.db.Query(ctx, listHolders, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Holder{}
	for rows.Next() {
		var i Holder
		if err := rows.Scan(
			&i.ID,
			&i.Type,
			&i.Name,
			&i.Currency,
			&i.Balance,
			&i.PendingBalance,
			&i.Version,
			&i.AllowNegativeBalance,
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

const listHoldersByType = `-- name: ListHoldersByType :many
SELECT id, type, name, currency, balance, pending_balance, version, allow_negative_balance, created_at, updated_at FROM holders WHERE type = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3
`

type ListHoldersByTypeParams struct {
	Type   string `json:"type"`
	Limit  int32  `json:"limit"`
	Offset int32  `json:"offset"`
}

func (q *Queries) ListHoldersByType(ctx context.Context, arg ListHoldersByTypeParams) ([]Holder, error) {
	rows, err := q.db.Query(ctx, listHoldersByType, arg.Type, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Holder{}
	for rows.Next() {
		var i Holder
		if err := rows.Scan(
			&i.ID,
			&i.Type,
			&i.Name,
			&i.Currency,
			&i.Balance,
			&i.PendingBalance,
			&i.Version,
			&i.AllowNegativeBalance,
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

const checkLedgerConservation = `-- name: CheckLedgerConservation :one
SELECT
    (SELECT COALESCE(SUM(balance), 0) FROM holders)::NUMERIC AS total_balance,
    (SELECT COALESCE(SUM(CASE WHEN type = 'credit' THEN amount ELSE -amount END), 0)
     FROM ledger_entries WHERE status IN ('successful', 'reversed'))::NUMERIC AS entry_net
`

type CheckLedgerConservationRow struct {
	TotalBalance pgtype.Numeric
	EntryNet     pgtype.Numeric
}

func (q *Queries) CheckLedgerConservation(ctx context.Context) (CheckLedgerConservationRow, error) {
	row := q.db.QueryRow(ctx, checkLedgerConservation)
	var i CheckLedgerConservationRow
	err := row.Scan(&i.TotalBalance, &i.EntryNet)
	return i, err
}

const updateHolderBalance = `-- name: UpdateHolderBalance :exec
UPDATE holders SET balance = $2, version = version + 1, updated_at = $3 WHERE id = $1
`

type UpdateHolderBalanceParams struct {
	ID        string             `json:"id"`
	Balance   pgtype.Numeric     `json:"balance"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateHolderBalance(ctx context.Context, arg UpdateHolderBalanceParams) error {
	_, err := q.db.Exec(ctx, updateHolderBalance, arg.ID, arg.Balance, arg.UpdatedAt)
	return err
}

const updateHolderPendingBalance = `-- name: UpdateHolderPendingBalance :exec
UPDATE holders SET pending_balance = $2, updated_at = $3 WHERE id = $1
`

type UpdateHolderPendingBalanceParams struct {
	ID             string             `json:"id"`
	PendingBalance pgtype.Numeric     `json:"pending_balance"`
	UpdatedAt      pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateHolderPendingBalance(ctx context.Context, arg UpdateHolderPendingBalanceParams) error {
	_, err := q.db.Exec(ctx, updateHolderPendingBalance, arg.ID, arg.PendingBalance, arg.UpdatedAt)
	return err
}
