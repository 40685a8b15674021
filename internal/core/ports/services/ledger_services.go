package services

import (
	"context"

	"github.com/SscSPs/quantum_bank/internal/core/domain"
)

// LedgerVerifierSvc checks the integrity of the hash chain.
type LedgerVerifierSvc interface {
	// VerifyLedger walks every Completed entry in chain order. An error is
	// returned only when the ledger cannot be read.
	VerifyLedger(ctx context.Context) (*domain.LedgerVerification, error)
}

// LedgerReaderSvc defines read operations on the ledger.
type LedgerReaderSvc interface {
	// GetTransaction retrieves an entry that involves one of userID's accounts.
	GetTransaction(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error)

	// ListAccountTransactions lists the entries of an account, newest first.
	ListAccountTransactions(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// GetLedgerTip returns the committed chain head.
	GetLedgerTip(ctx context.Context) (*domain.LedgerTip, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerVerifierSvc
	LedgerReaderSvc
}
