package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createTransfer = `-- name: CreateTransfer :one
INSERT INTO transfers (id, sender_id, recipient_id, amount, narration, trx_ref, metadata, reversed_transfer_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, sender_id, recipient_id, amount, narration, trx_ref, metadata, reversed_transfer_id, created_at
`

type CreateTransferParams struct {
	ID                 string             `json:"id"`
	SenderID           string             `json:"sender_id"`
	RecipientID        string             `json:"recipient_id"`
	Amount             pgtype.Numeric     `json:"amount"`
	Narration          string             `json:"narration"`
	TrxRef             pgtype.Text        `json:"trx_ref"`
	Metadata           []byte             `json:"metadata"`
	ReversedTransferID pgtype.Text        `json:"reversed_transfer_id"`
	CreatedAt          pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateTransfer(ctx context.Context, arg CreateTransferParams) (Transfer, error) {
	row := q.db.QueryRow(ctx, createTransfer,
		arg.ID,
		arg.SenderID,
		arg.RecipientID,
		arg.Amount,
		arg.Narration,
		arg.TrxRef,
		arg.Metadata,
		arg.ReversedTransferID,
		arg.CreatedAt,
	)
	var i Transfer
	err := row.Scan(
		&i.ID,
		&i.SenderID,
		&i.RecipientID,
		&i.Amount,
		&i.Narration,
		&i.TrxRef,
		&i.Metadata,
		&i.ReversedTransferID,
		&i.CreatedAt,
	)
	return i, err
}

const getTransferByID = `-- name: GetTransferByID :one
SELECT id, sender_id, recipient_id, amount, narration, trx_ref, metadata, reversed_transfer_id, created_at FROM transfers WHERE id = $1
`

func (q *Queries) GetTransferByID(ctx context.Context, id string) (Transfer, error) {
	row := q.db.QueryRow(ctx, getTransferByID, id)
	var i Transfer
	err := row.Scan(
		&i.ID,
		&i.SenderID,
		&i.RecipientID,
		&i.Amount,
		&i.Narration,
		&i.TrxRef,
		&i.Metadata,
		&i.ReversedTransferID,
		&i.CreatedAt,
	)
	return i, err
}

const listTransfersByHolder = `-- name: ListTransfersByHolder :many
SELECT id, sender_id, recipient_id, amount, narration, trx_ref, metadata, reversed_transfer_id, created_at FROM transfers
WHERE sender_id = $1 OR recipient_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3
`

type ListTransfersByHolderParams struct {
	HolderID string `json:"holder_id"`
	Limit    int32  `json:"limit"`
	Offset   int32  `json:"offset"`
}

func (q *Queries) ListTransfersByHolder(ctx context.Context, arg ListTransfersByHolderParams) ([]Transfer, error) {
	rows, err := q.db.Query(ctx, listTransfersByHolder, arg.HolderID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Transfer{}
	for rows.Next() {
		var i Transfer
		if err := rows.Scan(
			&i.ID,
			&i.SenderID,
			&i.RecipientID,
			&i.Amount,
			&i.Narration,
			&i.TrxRef,
			&i.Metadata,
			&i.ReversedTransferID,
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
