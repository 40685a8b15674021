package dto

import (
	"time"

	"github.com/SscSPs/quantum_bank/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransferRequest moves money from one of the caller's accounts to a recipient,
// identified by account number, email or username.
type TransferRequest struct {
	FromAccountNumber string          `json:"fromAccountNumber" binding:"required,len=10,numeric"`
	Recipient         string          `json:"recipient" binding:"required,max=254"`
	Amount            decimal.Decimal `json:"amount" binding:"required,money"`
	Note              string          `json:"note" binding:"max=255"`
}

// ListTransactionsParams defines query parameters for listing account transactions.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// TransactionResponse defines the data returned for a ledger entry.
type TransactionResponse struct {
	TransactionID     string                   `json:"transactionID"`
	SenderAccountID   string                   `json:"senderAccountID"`
	ReceiverAccountID *string                  `json:"receiverAccountID,omitempty"`
	Amount            string                   `json:"amount"`
	TransactionType   domain.TransactionType   `json:"transactionType"`
	Description       *string                  `json:"description,omitempty"`
	Timestamp         time.Time                `json:"timestamp"`
	Status            domain.TransactionStatus `json:"status"`
	Hash              string                   `json:"hash"`
	PreviousBlockHash string                   `json:"previousBlockHash"`
	HashVersion       int                      `json:"hashVersion"`
	Metadata          map[string]any           `json:"metadata,omitempty"`
}

// ListTransactionsResponse wraps a page of ledger entries.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:     t.TransactionID,
		SenderAccountID:   t.SenderAccountID,
		ReceiverAccountID: t.ReceiverAccountID,
		Amount:            t.Amount.StringFixed(domain.AmountScale),
		TransactionType:   t.TransactionType,
		Description:       t.Description,
		Timestamp:         t.Timestamp,
		Status:            t.Status,
		Hash:              t.Hash,
		PreviousBlockHash: t.PreviousBlockHash,
		HashVersion:       t.HashVersion,
		Metadata:          t.Metadata,
	}
}

// ToListTransactionsResponse converts a page of entries to ListTransactionsResponse
func ToListTransactionsResponse(txns []domain.Transaction, nextToken *string) ListTransactionsResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return ListTransactionsResponse{Transactions: res, NextToken: nextToken}
}

// LedgerTipResponse is the committed head of the chain.
type LedgerTipResponse struct {
	LastHash      string     `json:"lastHash"`
	EntryCount    int64      `json:"entryCount"`
	LastTimestamp *time.Time `json:"lastTimestamp,omitempty"`
}

// ToLedgerTipResponse converts a domain.LedgerTip to LedgerTipResponse DTO
func ToLedgerTipResponse(tip *domain.LedgerTip) LedgerTipResponse {
	res := LedgerTipResponse{LastHash: tip.LastHash, EntryCount: tip.EntryCount}
	if !tip.LastTimestamp.IsZero() {
		ts := tip.LastTimestamp
		res.LastTimestamp = &ts
	}
	return res
}
