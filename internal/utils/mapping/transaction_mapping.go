package mapping

import (
	"time"

	"github.com/SscSPs/quantum_bank/internal/core/domain"
	"github.com/SscSPs/quantum_bank/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:     d.TransactionID,
		SenderAccountID:   d.SenderAccountID,
		ReceiverAccountID: d.ReceiverAccountID,
		Amount:            d.Amount,
		TransactionType:   string(d.TransactionType),
		Description:       d.Description,
		Timestamp:         d.Timestamp,
		Status:            string(d.Status),
		Hash:              d.Hash,
		PreviousBlockHash: d.PreviousBlockHash,
		HashVersion:       d.HashVersion,
		Metadata:          d.Metadata,
		CreatedAt:         d.CreatedAt,
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction.
// Timestamps are normalized to UTC so they hash the same way they did when written.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:     m.TransactionID,
		SenderAccountID:   m.SenderAccountID,
		ReceiverAccountID: m.ReceiverAccountID,
		Amount:            m.Amount,
		TransactionType:   domain.TransactionType(m.TransactionType),
		Description:       m.Description,
		Timestamp:         m.Timestamp.UTC(),
		Status:            domain.TransactionStatus(m.Status),
		Hash:              m.Hash,
		PreviousBlockHash: m.PreviousBlockHash,
		HashVersion:       m.HashVersion,
		Metadata:          m.Metadata,
		CreatedAt:         m.CreatedAt,
	}
}

// ToModelLedgerTip converts a domain LedgerTip to a model LedgerTip
func ToModelLedgerTip(d domain.LedgerTip) models.LedgerTip {
	return models.LedgerTip{
		LastHash:      d.LastHash,
		EntryCount:    d.EntryCount,
		LastTimestamp: ZeroTimeToNil(d.LastTimestamp),
		UpdatedAt:     d.UpdatedAt,
	}
}

// ToDomainLedgerTip converts a model LedgerTip to a domain LedgerTip
func ToDomainLedgerTip(m models.LedgerTip) domain.LedgerTip {
	d := domain.LedgerTip{
		LastHash:   m.LastHash,
		EntryCount: m.EntryCount,
		UpdatedAt:  m.UpdatedAt,
	}
	if m.LastTimestamp != nil {
		d.LastTimestamp = m.LastTimestamp.UTC()
	}
	return d
}

// ZeroTimeToNil maps the zero time to nil.
func ZeroTimeToNil(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
