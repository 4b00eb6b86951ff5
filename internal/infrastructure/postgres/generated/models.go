package generated

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Holder struct {
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

type LedgerEntry struct {
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

type Transfer struct {
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

type Withdrawal struct {
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

type OutboxEvent struct {
	ID            string             `json:"id"`
	AggregateID   string             `json:"aggregate_id"`
	AggregateType string             `json:"aggregate_type"`
	EventType     string             `json:"event_type"`
	Payload       []byte             `json:"payload"`
	Published     bool               `json:"published"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
	PublishedAt   pgtype.Timestamptz `json:"published_at"`
}
