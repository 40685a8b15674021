package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a row of the transactions table (the ledger).
type Transaction struct {
	TransactionID     string          `db:"transaction_id"`
	SenderAccountID   string          `db:"sender_account_id"`
	ReceiverAccountID *string         `db:"receiver_account_id"` // Nullable
	Amount            decimal.Decimal `db:"amount"`
	TransactionType   string          `db:"transaction_type"`
	Description       *string         `db:"description"` // Nullable
	Timestamp         time.Time       `db:"timestamp"`
	Status            string          `db:"status"`
	Hash              string          `db:"hash"`
	PreviousBlockHash string          `db:"previous_block_hash"`
	HashVersion       int             `db:"hash_version"`
	Metadata          map[string]any  `db:"metadata"` // JSONB, nullable
	CreatedAt         time.Time       `db:"created_at"`
}

// LedgerTip is the single row of the ledger_tip table.
type LedgerTip struct {
	LastHash      string     `db:"last_hash"`
	EntryCount    int64      `db:"entry_count"`
	LastTimestamp *time.Time `db:"last_timestamp"` // NULL until the first entry
	UpdatedAt     time.Time  `db:"updated_at"`
}
