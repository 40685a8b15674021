package domain

import (
	"time"

	"github.com/SscSPs/quantum_bank/internal/utils/chainhash"
	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	Transfer    TransactionType = "Transfer"
	Deposit     TransactionType = "Deposit"
	Withdrawal  TransactionType = "Withdrawal"
	Purchase    TransactionType = "Purchase"
	BillPayment TransactionType = "Bill Payment"
	Salary      TransactionType = "Salary"
)

// TransactionStatus is the lifecycle state of a ledger entry.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "Pending"
	StatusCompleted TransactionStatus = "Completed"
	StatusFailed    TransactionStatus = "Failed"
	StatusReversed  TransactionStatus = "Reversed"
)

// Transaction is one entry of the hash-chained ledger.
// Everything except Metadata and CreatedAt is covered by Hash and must not change once stored.
type Transaction struct {
	TransactionID     string            `json:"transactionID"`
	SenderAccountID   string            `json:"senderAccountID"`
	ReceiverAccountID *string           `json:"receiverAccountID,omitempty"`
	Amount            decimal.Decimal   `json:"amount"`
	TransactionType   TransactionType   `json:"transactionType"`
	Description       *string           `json:"description,omitempty"`
	Timestamp         time.Time         `json:"timestamp"`
	Status            TransactionStatus `json:"status"`
	Hash              string            `json:"hash"`
	PreviousBlockHash string            `json:"previousBlockHash"`
	HashVersion       int               `json:"hashVersion"`
	Metadata          map[string]any    `json:"metadata,omitempty"`
	CreatedAt         time.Time         `json:"createdAt"`
}

// HashFields returns the hashed content of the entry.
func (t Transaction) HashFields() chainhash.Fields {
	return chainhash.Fields{
		TransactionID:     t.TransactionID,
		SenderAccountID:   t.SenderAccountID,
		ReceiverAccountID: t.ReceiverAccountID,
		Amount:            t.Amount,
		TransactionType:   string(t.TransactionType),
		Description:       t.Description,
		Timestamp:         t.Timestamp,
		PreviousBlockHash: t.PreviousBlockHash,
		Status:            string(t.Status),
	}
}

// ComputeHash recomputes the digest using the entry's own encoding version.
func (t Transaction) ComputeHash() (string, error) {
	return chainhash.SumVersion(t.HashVersion, t.HashFields())
}

// Seal links the entry to previousHash and computes its hash with the current encoding.
func (t *Transaction) Seal(previousHash string) {
	t.PreviousBlockHash = previousHash
	t.HashVersion = chainhash.CurrentVersion
	t.Hash = chainhash.Sum(t.HashFields())
}

// Involves reports whether accountID is the sender or the receiver of the entry.
func (t Transaction) Involves(accountID string) bool {
	if t.SenderAccountID == accountID {
		return true
	}
	return t.ReceiverAccountID != nil && *t.ReceiverAccountID == accountID
}
