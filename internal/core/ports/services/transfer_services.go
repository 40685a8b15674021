package services

import (
	"context"

	"github.com/SscSPs/quantum_bank/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransferSvc moves money between two accounts and appends the ledger entry in one atomic unit.
type TransferSvc interface {
	// Transfer debits fromAccountID and credits the account resolved from
	// recipientIdentifier (account number, email or username).
	Transfer(ctx context.Context, fromAccountID string, recipientIdentifier string, amount decimal.Decimal, note string) (*domain.Transaction, error)
}
