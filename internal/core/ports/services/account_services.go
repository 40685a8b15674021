package services

import (
	"context"

	"github.com/SscSPs/quantum_bank/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByNumber retrieves an account by its account number.
	GetAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// GetOwnedAccount retrieves an account by number, failing with ErrForbidden when userID does not own it.
	GetOwnedAccount(ctx context.Context, userID string, accountNumber string) (*domain.Account, error)

	// ListAccountsForUser retrieves every account owned by userID.
	ListAccountsForUser(ctx context.Context, userID string) ([]domain.Account, error)

	// GetPayee returns the public details of an account for "pay me" links.
	GetPayee(ctx context.Context, accountNumber string) (*domain.Payee, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount opens a new zero-balance account of the given type for userID.
	CreateAccount(ctx context.Context, userID string, accountType domain.AccountType) (*domain.Account, error)
}

// AccountCashSvc moves money between the bank and the outside world.
type AccountCashSvc interface {
	// Deposit credits an owned account and records a Deposit entry.
	Deposit(ctx context.Context, userID string, accountNumber string, amount decimal.Decimal, description string) (*domain.Transaction, error)

	// Withdraw debits an owned account and records a Withdrawal entry.
	Withdraw(ctx context.Context, userID string, accountNumber string, amount decimal.Decimal, description string) (*domain.Transaction, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountCashSvc
}
