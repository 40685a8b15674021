package repositories

import (
	"context"

	"github.com/SscSPs/quantum_bank/internal/core/domain"
)

// LedgerReader defines read operations on the transaction ledger.
type LedgerReader interface {
	// FindTransactionByID retrieves a single ledger entry.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByAccountID lists entries where the account is sender or receiver,
	// newest first, using an opaque continuation token.
	ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// StreamCompletedTransactions calls fn for every Completed entry in chain order
	// (timestamp ascending). Iteration stops at the first error returned by fn.
	StreamCompletedTransactions(ctx context.Context, fn func(domain.Transaction) error) error

	// GetLedgerTip returns the committed head of the chain without locking it.
	GetLedgerTip(ctx context.Context) (*domain.LedgerTip, error)
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
}
